// Package session runs one peer of a match: a single goroutine that drains
// the transport, applies messages, steps physics and advances timers.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	cfg "github.com/automoto/pitchclash/config"
	"github.com/automoto/pitchclash/core"
	"github.com/automoto/pitchclash/match"
	"github.com/automoto/pitchclash/network"
	"github.com/automoto/pitchclash/physics"
	"github.com/automoto/pitchclash/shared/arena"
	"github.com/automoto/pitchclash/shared/messages"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/automoto/pitchclash/timer"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ErrPeerLeft ends a session when the other peer disconnects.
var ErrPeerLeft = errors.New("peer left the match")

// Options configures a session.
type Options struct {
	Layout     *arena.Layout
	TickRate   int
	HUD        match.HUDFactory
	Results    match.ResultStore
	Replicator Replicator // Defaults by role
}

// Session owns all match state of one peer.
type Session struct {
	ctx       *core.Context
	transport network.Transport
	ctrl      *match.Controller
	space     *physics.World
	scene     *physics.TopDown
	ecs       *ecs.ECS
	repl      Replicator

	input    chan PointerEvent
	tickRate int
	dt       time.Duration
	started  bool
	log      zerolog.Logger
}

func New(transport network.Transport, opts Options, log zerolog.Logger) *Session {
	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = cfg.Match.TickRate
	}

	world := donburi.NewWorld()
	space := physics.NewWorld(world, opts.Layout)
	scene := physics.NewTopDown(space)

	s := &Session{
		transport: transport,
		space:     space,
		scene:     scene,
		input:     make(chan PointerEvent, 64),
		tickRate:  tickRate,
		dt:        time.Second / time.Duration(tickRate),
		log:       log.With().Str("component", "session").Stringer("role", transport.Role()).Logger(),
	}

	s.ctx = &core.Context{
		Role:      transport.Role(),
		LocalPeer: transport.LocalPeer(),
		World:     world,
		Net:       core.BroadcasterFunc(s.rpc),
		Scene:     scene,
		Log:       log,
	}
	if s.ctx.IsAuthority() {
		s.ctx.Timers = timer.NewArena()
	}

	var matchOpts []match.Option
	if opts.HUD != nil {
		matchOpts = append(matchOpts, match.WithHUD(opts.HUD))
	}
	if opts.Results != nil {
		matchOpts = append(matchOpts, match.WithResults(opts.Results))
	}
	s.ctrl = match.NewController(s.ctx, opts.Layout, space, matchOpts...)

	s.repl = opts.Replicator
	if s.repl == nil {
		if s.ctx.IsAuthority() {
			s.repl = newHostReplicator(world, s.log)
		} else {
			s.repl = &observerReplicator{log: s.log}
		}
	}

	s.ecs = ecs.NewECS(world)
	s.ecs.AddSystem(s.updateInput)
	s.ecs.AddSystem(s.updatePhysics)
	s.ecs.AddSystem(s.updateAgents)
	s.ecs.AddSystem(s.updateTimers)
	s.ecs.AddSystem(s.updateReplication)
	return s
}

// Controller returns the match controller of this peer.
func (s *Session) Controller() *match.Controller {
	return s.ctrl
}

// Scene returns the headless top-down scene used for picking.
func (s *Session) Scene() *physics.TopDown {
	return s.scene
}

// Run ticks the session until ctx is cancelled or the match ends with an
// error. A cancelled context returns nil.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.dt)
	defer ticker.Stop()

	s.log.Info().Int("tickRate", s.tickRate).Msg("game loop started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("game loop stopped")
			return nil
		case <-ticker.C:
			if err := s.tick(); err != nil {
				return err
			}
		}
	}
}

func (s *Session) tick() error {
	if !s.ctx.IsAuthority() {
		s.ctx.LocalPeer = s.transport.LocalPeer()
	}
	for _, ev := range s.transport.DrainEvents() {
		if err := s.handleEvent(ev); err != nil {
			return err
		}
	}
	for _, env := range s.transport.DrainInbox() {
		s.dispatch(env)
	}
	s.ecs.Update()
	return nil
}

func (s *Session) handleEvent(ev network.Event) error {
	switch e := ev.(type) {
	case network.PeerJoined:
		s.onPeerJoined(e)
	case network.PeerLeft:
		s.log.Warn().Err(e.Err).Int32("peer", int32(e.Peer)).Msg("peer left, ending match")
		return fmt.Errorf("peer %d: %w", e.Peer, ErrPeerLeft)
	case network.Connected:
		s.ctx.LocalPeer = e.Peer
		s.log.Info().Int32("peer", int32(e.Peer)).Msg("connected")
	case network.ConnectionFailed:
		return e.Err
	}
	return nil
}

// onPeerJoined starts the match once exactly one remote peer is connected.
func (s *Session) onPeerJoined(e network.PeerJoined) {
	if !s.ctx.IsAuthority() {
		return
	}
	if s.started || e.Peers != 1 {
		s.log.Warn().Int32("peer", int32(e.Peer)).Int("peers", e.Peers).Msg("match already running, ignoring peer")
		return
	}
	s.started = true

	s.rpc(messages.SpawnPlayer{PlayerID: netconfig.HostPeerID, Color: cfg.Player.HostColor, IsHost: true})
	s.rpc(messages.SpawnPlayer{PlayerID: e.Peer, Color: cfg.Player.ClientColor, IsHost: false})

	auth, err := s.ctrl.Authority()
	if err != nil {
		s.log.Error().Err(err).Msg("cannot prepare match")
		return
	}
	if err := auth.PrepareMatch(); err != nil {
		s.log.Error().Err(err).Msg("cannot prepare match")
	}
}

// dispatch applies a remote message. The host only accepts body state from
// observers; observers only accept messages from the host.
func (s *Session) dispatch(env network.Envelope) {
	if s.ctx.IsAuthority() {
		if _, ok := env.Msg.(messages.BodyState); !ok {
			s.log.Warn().Int32("peer", int32(env.From)).Msgf("dropping %T from observer", env.Msg)
			return
		}
	} else if env.From != netconfig.HostPeerID {
		s.log.Warn().Int32("peer", int32(env.From)).Msgf("dropping %T from non-host peer", env.Msg)
		return
	}

	if err := s.ctrl.Apply(env.From, env.Msg); err != nil {
		s.log.Warn().Err(err).Msgf("failed to apply %T", env.Msg)
	}
}

// rpc is the call-local broadcast: remote peers first, then this peer, so
// that nested broadcasts keep the same order everywhere.
func (s *Session) rpc(msg any) {
	if err := s.transport.Broadcast(msg); err != nil {
		s.log.Warn().Err(err).Msgf("failed to broadcast %T", msg)
	}
	if err := s.ctrl.Apply(s.ctx.LocalPeer, msg); err != nil {
		s.log.Warn().Err(err).Msgf("failed to apply %T", msg)
	}
}

func (s *Session) seconds() float64 {
	return s.dt.Seconds()
}

func (s *Session) updatePhysics(_ *ecs.ECS) {
	s.space.Step(s.seconds(), func(ev physics.TriggerEvent) {
		err := s.ctrl.HandleTrigger(ev)
		switch {
		case err == nil:
		case errors.Is(err, match.ErrNotAuthority):
			s.log.Trace().Stringer("goal", ev.Goal).Msg("trigger ignored on observer")
		default:
			s.log.Warn().Err(err).Msg("trigger failed")
		}
	})
}

func (s *Session) updateAgents(_ *ecs.ECS) {
	for _, a := range s.ctrl.Agents() {
		a.Step(s.seconds())
	}
}

func (s *Session) updateTimers(_ *ecs.ECS) {
	if s.ctx.Timers == nil {
		return
	}
	s.ctx.Timers.Advance(s.dt)
}

func (s *Session) updateReplication(_ *ecs.ECS) {
	s.repl.Replicate(s)
}
