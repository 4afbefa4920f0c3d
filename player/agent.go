// Package player drives one player entity: the remote operations broadcast
// by the authority and the local aim-and-launch input of its owning peer.
package player

import (
	"image/color"

	"github.com/automoto/pitchclash/components"
	cfg "github.com/automoto/pitchclash/config"
	"github.com/automoto/pitchclash/core"
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/automoto/pitchclash/tags"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

// Aimer answers the spatial queries an agent needs for input.
type Aimer interface {
	IntersectRay(screen gamemath.Vec2, mask uint32) (core.Collider, bool)
	PointerDirection(from gamemath.Vec3) gamemath.Vec2
}

// Agent wraps a player entity.
type Agent struct {
	ctx   *core.Context
	entry *donburi.Entry
	aimer Aimer
	log   zerolog.Logger
}

func NewAgent(ctx *core.Context, entry *donburi.Entry, aimer Aimer) *Agent {
	id := components.Player.Get(entry).ID
	return &Agent{
		ctx:   ctx,
		entry: entry,
		aimer: aimer,
		log:   ctx.Logger("player").With().Int32("player", int32(id)).Logger(),
	}
}

func (a *Agent) ID() netconfig.PeerID {
	return a.data().ID
}

func (a *Agent) Entry() *donburi.Entry {
	return a.entry
}

func (a *Agent) data() *components.PlayerData {
	return components.Player.Get(a.entry)
}

func (a *Agent) body() *components.BodyData {
	return components.Body.Get(a.entry)
}

// Body returns the player's physics body.
func (a *Agent) Body() *components.BodyData {
	return a.body()
}

// Aim returns the local charge state.
func (a *Agent) Aim() components.AimData {
	return a.data().Aim
}

// Authority returns the peer allowed to drive this player.
func (a *Agent) Authority() netconfig.PeerID {
	return a.data().Authority
}

// IsLocal reports whether input for this player is read on this peer.
func (a *Agent) IsLocal() bool {
	return a.ctx.LocalPeer == a.data().Authority
}

// StartGame unfreezes the body.
func (a *Agent) StartGame() {
	a.body().Frozen = false
}

// ResetRound freezes the body and zeroes its velocities.
func (a *Agent) ResetRound() {
	body := a.body()
	body.Frozen = true
	body.ZeroVelocities()
	a.cancelAim()
}

// Respawn teleports the body to pos with velocities zeroed and moves the
// player to spawn generation gen.
func (a *Agent) Respawn(pos gamemath.Vec3, gen uint32) {
	a.body().Teleport(pos)
	a.data().Generation = gen
	a.log.Debug().
		Float64("x", pos.X).
		Float64("z", pos.Z).
		Uint32("generation", gen).
		Msg("respawned")
}

// Generation returns the player's current spawn generation.
func (a *Agent) Generation() uint32 {
	return a.data().Generation
}

// SetNetworkIdentity hands the player and its interact handle to peer.
func (a *Agent) SetNetworkIdentity(peer netconfig.PeerID) {
	a.data().Authority = peer
	if a.entry.HasComponent(components.Trigger) {
		components.Trigger.Get(a.entry).Owner = peer
	}
	if !a.IsLocal() {
		a.cancelAim()
	}
}

func (a *Agent) SetColor(c color.RGBA) {
	a.data().Color = c
}

// PointerPressed starts charging when the pointer hits this peer's own
// interact handle. It reports whether charging started.
func (a *Agent) PointerPressed(screen gamemath.Vec2) bool {
	if !a.IsLocal() {
		return false
	}
	hit, ok := a.aimer.IntersectRay(screen, cfg.Player.InteractMask)
	if !ok {
		return false
	}
	if hit.Name != tags.ResolvInteract || hit.Owner != a.ctx.LocalPeer {
		return false
	}

	aim := &a.data().Aim
	aim.Holding = true
	aim.IndicatorVisible = true
	return true
}

// PointerReleased launches the body away from the pointer with the charged
// force. It returns the applied impulse.
func (a *Agent) PointerReleased() (gamemath.Vec3, bool) {
	if !a.IsLocal() {
		return gamemath.Vec3{}, false
	}
	aim := &a.data().Aim
	if !aim.Holding {
		return gamemath.Vec3{}, false
	}

	impulse := gamemath.LaunchImpulse(aim.LastDirection, aim.Force)
	a.body().ApplyCentralImpulse(impulse)
	a.log.Debug().Float64("force", aim.Force).Msg("launched")

	aim.Holding = false
	aim.Force = 0
	aim.IndicatorVisible = false
	return impulse, true
}

// Step charges the launch while the pointer is held.
func (a *Agent) Step(dt float64) {
	if !a.IsLocal() {
		return
	}
	aim := &a.data().Aim
	if !aim.Holding {
		return
	}

	aim.Force += cfg.Player.ForceIncreaseFactor * dt
	dir := a.aimer.PointerDirection(a.body().Position)
	aim.LastDirection = dir
	aim.IndicatorAngle = gamemath.AimAngle(dir)
}

func (a *Agent) cancelAim() {
	aim := &a.data().Aim
	aim.Holding = false
	aim.Force = 0
	aim.IndicatorVisible = false
}
