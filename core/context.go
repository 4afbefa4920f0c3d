// Package core holds the context handed to every match component at
// construction: who the local peer is, which role it plays, the shared
// world and the call-local broadcast path.
package core

import (
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/automoto/pitchclash/timer"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

// Broadcaster delivers a message to every peer, the local one included.
// Local application happens synchronously before Broadcast returns.
type Broadcaster interface {
	Broadcast(msg any)
}

// BroadcasterFunc adapts a function to Broadcaster.
type BroadcasterFunc func(msg any)

func (f BroadcasterFunc) Broadcast(msg any) { f(msg) }

// Collider is the result of a ray query.
type Collider struct {
	Name  string
	Owner netconfig.PeerID // Peer owning the collider's node, 0 if none
}

// Scene is the spatial collaborator: ray picking and screen projection.
type Scene interface {
	IntersectRay(screen gamemath.Vec2, mask uint32) (Collider, bool)
	Unproject(world gamemath.Vec3) gamemath.Vec2
	Pointer() gamemath.Vec2
}

// Context is passed to components instead of a process-wide singleton.
type Context struct {
	Role      netconfig.Role
	LocalPeer netconfig.PeerID
	World     donburi.World
	Net       Broadcaster
	Scene     Scene
	Timers    *timer.Arena // nil on observers
	Log       zerolog.Logger
}

// IsAuthority reports whether the local peer may mutate match state.
func (c *Context) IsAuthority() bool {
	return c.Role == netconfig.RoleAuthority
}

// Logger returns a sub-logger tagged with component.
func (c *Context) Logger(component string) zerolog.Logger {
	return c.Log.With().Str("component", component).Logger()
}
