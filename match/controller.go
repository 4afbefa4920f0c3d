// Package match owns the round state machine of a pitch: score, countdown,
// respawn scheduling and round resets. Every peer runs a Controller; only the
// authority's Controller issues commands, and every peer applies the
// resulting broadcasts through Apply.
package match

import (
	"time"

	"github.com/automoto/pitchclash/components"
	"github.com/automoto/pitchclash/core"
	"github.com/automoto/pitchclash/physics"
	"github.com/automoto/pitchclash/player"
	"github.com/automoto/pitchclash/shared/arena"
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/automoto/pitchclash/systems/factory"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

// Result is the record of a finished match.
type Result struct {
	Left       int
	Right      int
	Winner     netconfig.Team
	Rounds     int
	FinishedAt time.Time
}

// ResultStore persists finished matches.
type ResultStore interface {
	SaveResult(Result) error
}

type Option func(*Controller)

// WithHUD sets the factory used when SpawnHUD is applied.
func WithHUD(f HUDFactory) Option {
	return func(c *Controller) { c.newHUD = f }
}

// WithResults records finished matches on the authority.
func WithResults(store ResultStore) Option {
	return func(c *Controller) { c.results = store }
}

// Controller is the per-peer match state machine.
type Controller struct {
	ctx    *core.Context
	layout *arena.Layout
	space  *physics.World

	matchEntry *donburi.Entry
	ballEntry  *donburi.Entry

	agents map[netconfig.PeerID]*player.Agent
	order  []netconfig.PeerID

	hud     HUD
	newHUD  HUDFactory
	results ResultStore
	log     zerolog.Logger
}

// NewController populates the world with the match singleton, the goals and
// the ball, and returns the controller that owns them.
func NewController(ctx *core.Context, layout *arena.Layout, space *physics.World, opts ...Option) *Controller {
	c := &Controller{
		ctx:    ctx,
		layout: layout,
		space:  space,
		agents: make(map[netconfig.PeerID]*player.Agent),
		hud:    nopHUD{},
		log:    ctx.Logger("match"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.matchEntry = factory.CreateMatch(ctx.World)
	factory.CreateGoals(ctx.World, space, layout)
	c.ballEntry = factory.CreateBall(ctx.World, space, layout.BallOrigin)
	return c
}

func (c *Controller) data() *components.MatchData {
	return components.Match.Get(c.matchEntry)
}

// Snapshot returns a copy of the match state.
func (c *Controller) Snapshot() components.MatchData {
	return *c.data()
}

func (c *Controller) State() netconfig.MatchStateID {
	return c.data().State
}

func (c *Controller) Score() components.Score {
	return c.data().Score
}

// Ball returns the ball's body.
func (c *Controller) Ball() *components.BodyData {
	return components.Body.Get(c.ballEntry)
}

// Agent returns the agent of a spawned player.
func (c *Controller) Agent(id netconfig.PeerID) (*player.Agent, bool) {
	a, ok := c.agents[id]
	return a, ok
}

// Agents returns every spawned agent in spawn order.
func (c *Controller) Agents() []*player.Agent {
	out := make([]*player.Agent, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.agents[id])
	}
	return out
}

// LocalAgent returns the agent whose input is read on this peer.
func (c *Controller) LocalAgent() (*player.Agent, bool) {
	for _, id := range c.order {
		if a := c.agents[id]; a.IsLocal() {
			return a, true
		}
	}
	return nil, false
}

// IntersectRay queries the scene for the collider under a screen point.
func (c *Controller) IntersectRay(screen gamemath.Vec2, mask uint32) (core.Collider, bool) {
	if c.ctx.Scene == nil {
		return core.Collider{}, false
	}
	return c.ctx.Scene.IntersectRay(screen, mask)
}

// PointerDirection returns the screen-space unit vector from a world
// position to the pointer.
func (c *Controller) PointerDirection(from gamemath.Vec3) gamemath.Vec2 {
	if c.ctx.Scene == nil {
		return gamemath.Vec2{}
	}
	onScreen := c.ctx.Scene.Unproject(from)
	return gamemath.DirectionTo(onScreen, c.ctx.Scene.Pointer())
}

// HandleTrigger routes a goal entry reported by the physics step. Observers
// get ErrNotAuthority.
func (c *Controller) HandleTrigger(ev physics.TriggerEvent) error {
	auth, err := c.Authority()
	if err != nil {
		return err
	}
	if ev.Ball {
		return auth.BallEnteredGoal(ev.Goal)
	}
	return auth.PlayerEnteredGoal(ev.PlayerID)
}

func (c *Controller) rpc(msg any) {
	c.ctx.Net.Broadcast(msg)
}

// LocalPeer returns the id of the peer running this controller.
func (c *Controller) LocalPeer() netconfig.PeerID {
	return c.ctx.LocalPeer
}
