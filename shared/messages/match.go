package messages

import (
	"image/color"

	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netconfig"
)

// SpawnHUD asks every peer to instantiate its HUD.
type SpawnHUD struct{}

// PrepareMatch is directed at the authority only.
type PrepareMatch struct{}

// SpawnPlayer creates a player entity on every peer.
type SpawnPlayer struct {
	PlayerID netconfig.PeerID
	Color    color.RGBA
	IsHost   bool
}

// UpdateCountdown carries the current countdown value.
type UpdateCountdown struct {
	Value int
}

// CountdownFinished is broadcast once the countdown reaches zero.
type CountdownFinished struct{}

// ShowCountdown makes the countdown display visible on every peer.
type ShowCountdown struct{}

// UpdateScores carries both team scores.
type UpdateScores struct {
	Left  int
	Right int
}

// PlayerSpawn pairs a player with its fixed spawn position and new spawn
// generation.
type PlayerSpawn struct {
	PlayerID   netconfig.PeerID
	Position   gamemath.Vec3
	Generation uint32
}

// RoundOutcome bundles a score change with the round reset so observers
// never see a stale score next to a reset ball.
type RoundOutcome struct {
	Left       int
	Right      int
	Scorer     netconfig.Team // TeamNone when the reset was not caused by a goal
	BallOrigin gamemath.Vec3
	Spawns     []PlayerSpawn
}

// MatchOver is broadcast when a team reaches the winning score.
type MatchOver struct {
	Winner netconfig.Team
	Left   int
	Right  int
}
