// Package arena provides TMX pitch parsing shared between host and observers.
// It has no dependencies on donburi or resolv.
package arena

import (
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netconfig"
)

// Layout holds everything the match needs to know about a pitch.
type Layout struct {
	Width       float64
	Depth       float64
	Goals       []GoalVolume
	HostSpawn   gamemath.Vec3
	ClientSpawn gamemath.Vec3
	BallOrigin  gamemath.Vec3
}

// GoalVolume is a trigger rectangle on the pitch plane. Team is the side the
// goal belongs to; a ball entering it scores for the opponent.
type GoalVolume struct {
	Team       netconfig.Team
	X, Z, W, D float64
}

// SpawnFor returns the fixed spawn point of a player.
func (l *Layout) SpawnFor(id netconfig.PeerID) gamemath.Vec3 {
	if id == netconfig.HostPeerID {
		return l.HostSpawn
	}
	return l.ClientSpawn
}
