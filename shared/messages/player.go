package messages

import (
	"image/color"

	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netconfig"
)

// PlayerStartGame unfreezes a player.
type PlayerStartGame struct {
	PlayerID netconfig.PeerID
}

// PlayerRoundReset freezes a player and zeroes its velocities.
type PlayerRoundReset struct {
	PlayerID netconfig.PeerID
}

// PlayerRespawn teleports a player to Position with velocities zeroed.
// Generation is the player's new spawn generation.
type PlayerRespawn struct {
	PlayerID   netconfig.PeerID
	Position   gamemath.Vec3
	Generation uint32
}

// PlayerSetIdentity assigns the network authority of a player.
type PlayerSetIdentity struct {
	PlayerID netconfig.PeerID
	PeerID   netconfig.PeerID
}

// PlayerSetColor sets a player's colour.
type PlayerSetColor struct {
	PlayerID netconfig.PeerID
	Color    color.RGBA
}

// BodyState is sent by an observer for the player body it owns. Generation
// is the spawn generation the observer had applied when it sampled the body.
type BodyState struct {
	PlayerID   netconfig.PeerID
	Position   gamemath.Vec3
	Linear     gamemath.Vec3
	Angular    gamemath.Vec3
	Generation uint32
}
