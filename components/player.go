package components

import (
	"image/color"

	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	ID        netconfig.PeerID
	Authority netconfig.PeerID // Peer allowed to drive this player's input
	IsHost    bool             // Spawned at the host spawn point
	Color     color.RGBA
	Aim       AimData

	// Generation counts the player's teleports to a spawn point. Body state
	// reports sampled under an older generation are stale.
	Generation uint32
}

// AimData is the local-only charge state of a player's launch.
type AimData struct {
	Holding          bool
	Force            float64
	LastDirection    gamemath.Vec2
	IndicatorVisible bool
	IndicatorAngle   float64
}

var Player = donburi.NewComponentType[PlayerData]()
