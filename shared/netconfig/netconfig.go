// Package netconfig defines lightweight types shared between host and
// observers for network serialization. It must stay free of ECS and physics
// dependencies so the wire protocol can be decoded anywhere.
package netconfig

import "fmt"

// PeerID identifies a connected peer. The host is always HostPeerID.
type PeerID int32

// HostPeerID is the connection id of the hosting peer.
const HostPeerID PeerID = 1

// Role is the authority level of the local peer.
type Role int

const (
	RoleObserver Role = iota
	RoleAuthority
)

func (r Role) String() string {
	switch r {
	case RoleAuthority:
		return "authority"
	case RoleObserver:
		return "observer"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// MatchStateID represents the current state of a match.
type MatchStateID int

const (
	MatchStateIdle      MatchStateID = iota // Waiting for the second peer
	MatchStatePreparing                     // Recording origin, spawning HUD
	MatchStateCountdown                     // Pre-round countdown (5, 4, ... 0)
	MatchStatePlaying                       // Active gameplay
	MatchStateFinished                      // Winning score reached
)

var matchStateNames = map[MatchStateID]string{
	MatchStateIdle:      "idle",
	MatchStatePreparing: "preparing",
	MatchStateCountdown: "countdown",
	MatchStatePlaying:   "playing",
	MatchStateFinished:  "finished",
}

func (s MatchStateID) String() string {
	if name, ok := matchStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Team identifies a side of the pitch.
type Team int

const (
	TeamNone Team = iota - 1
	TeamLeft
	TeamRight
)

func (t Team) String() string {
	switch t {
	case TeamLeft:
		return "left"
	case TeamRight:
		return "right"
	}
	return "none"
}

// Opponent returns the team scoring when the ball enters t's goal.
func (t Team) Opponent() Team {
	switch t {
	case TeamLeft:
		return TeamRight
	case TeamRight:
		return TeamLeft
	}
	return TeamNone
}

// Collision layers used by ray queries.
const (
	LayerBodies   uint32 = 1 << 0
	LayerInteract uint32 = 1 << 1
)
