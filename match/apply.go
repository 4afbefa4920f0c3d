package match

import (
	"fmt"
	"time"

	"github.com/automoto/pitchclash/player"
	"github.com/automoto/pitchclash/shared/messages"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/automoto/pitchclash/systems/factory"
)

// Apply executes one broadcast message on this peer. from is the sending
// peer; locally applied broadcasts carry the local peer id.
func (c *Controller) Apply(from netconfig.PeerID, msg any) error {
	switch m := msg.(type) {
	case messages.PrepareMatch:
		auth, err := c.Authority()
		if err != nil {
			return err
		}
		return auth.PrepareMatch()
	case messages.SpawnHUD:
		c.applySpawnHUD()
	case messages.SpawnPlayer:
		c.applySpawnPlayer(m)
	case messages.UpdateCountdown:
		c.applyUpdateCountdown(m.Value)
	case messages.CountdownFinished:
		c.applyCountdownFinished()
	case messages.ShowCountdown:
		c.setCountdownVisible(true)
	case messages.UpdateScores:
		c.applyScores(m.Left, m.Right)
	case messages.RoundOutcome:
		c.applyRoundOutcome(m)
	case messages.MatchOver:
		c.applyMatchOver(m)
	case messages.PlayerStartGame:
		return c.withAgent(m.PlayerID, (*player.Agent).StartGame)
	case messages.PlayerRoundReset:
		return c.withAgent(m.PlayerID, (*player.Agent).ResetRound)
	case messages.PlayerRespawn:
		return c.withAgent(m.PlayerID, func(a *player.Agent) {
			a.Respawn(m.Position, m.Generation)
			c.space.Forget(a.Body().Object)
		})
	case messages.PlayerSetIdentity:
		return c.withAgent(m.PlayerID, func(a *player.Agent) { a.SetNetworkIdentity(m.PeerID) })
	case messages.PlayerSetColor:
		return c.withAgent(m.PlayerID, func(a *player.Agent) { a.SetColor(m.Color) })
	case messages.BodyState:
		return c.applyBodyState(from, m)
	default:
		return fmt.Errorf("match: unhandled message %T", msg)
	}
	return nil
}

func (c *Controller) withAgent(id netconfig.PeerID, fn func(*player.Agent)) error {
	a, ok := c.agents[id]
	if !ok {
		return fmt.Errorf("player %d: %w", id, ErrUnknownPlayer)
	}
	fn(a)
	return nil
}

func (c *Controller) applySpawnHUD() {
	if c.newHUD == nil {
		return
	}
	c.hud = c.newHUD()
	m := c.data()
	c.hud.UpdateScores(m.Score.Left, m.Score.Right)
	c.hud.SetCountdownVisible(true)
	m.CountdownVisible = true
}

func (c *Controller) applySpawnPlayer(msg messages.SpawnPlayer) {
	if _, ok := c.agents[msg.PlayerID]; ok {
		c.log.Warn().Int32("player", int32(msg.PlayerID)).Msg("player already spawned")
		return
	}
	pos := c.layout.ClientSpawn
	if msg.IsHost {
		pos = c.layout.HostSpawn
	}
	entry := factory.CreatePlayer(c.ctx.World, c.space, msg.PlayerID, msg.IsHost, pos)
	agent := player.NewAgent(c.ctx, entry, c)
	agent.SetNetworkIdentity(msg.PlayerID)
	agent.SetColor(msg.Color)

	c.agents[msg.PlayerID] = agent
	c.order = append(c.order, msg.PlayerID)
	c.log.Info().
		Int32("player", int32(msg.PlayerID)).
		Bool("host", msg.IsHost).
		Bool("local", agent.IsLocal()).
		Msg("player spawned")
}

func (c *Controller) applyUpdateCountdown(value int) {
	m := c.data()
	m.Remaining = value
	c.hud.UpdateCountdown(value)
}

func (c *Controller) applyCountdownFinished() {
	m := c.data()
	m.CountdownRunning = false
	c.setCountdownVisible(false)
	if m.State == netconfig.MatchStateFinished {
		return
	}
	m.State = netconfig.MatchStatePlaying

	if !c.ctx.IsAuthority() {
		return
	}
	c.log.Info().Msg("round started")
	for _, id := range c.order {
		c.rpc(messages.PlayerStartGame{PlayerID: id})
	}
}

func (c *Controller) setCountdownVisible(visible bool) {
	c.data().CountdownVisible = visible
	c.hud.SetCountdownVisible(visible)
}

func (c *Controller) applyScores(left, right int) {
	m := c.data()
	m.Score.Left = left
	m.Score.Right = right
	c.hud.UpdateScores(left, right)
}

// applyRoundOutcome sets the score and resets ball and players in one step.
func (c *Controller) applyRoundOutcome(msg messages.RoundOutcome) {
	c.applyScores(msg.Left, msg.Right)

	m := c.data()
	if msg.Scorer != netconfig.TeamNone {
		m.Rounds++
	}
	m.BallOrigin = msg.BallOrigin

	ball := c.Ball()
	ball.Teleport(msg.BallOrigin)
	c.space.Forget(ball.Object)

	for _, spawn := range msg.Spawns {
		a, ok := c.agents[spawn.PlayerID]
		if !ok {
			c.log.Warn().Int32("player", int32(spawn.PlayerID)).Msg("round reset for unknown player")
			continue
		}
		a.ResetRound()
		a.Respawn(spawn.Position, spawn.Generation)
		c.space.Forget(a.Body().Object)
	}

	m.State = netconfig.MatchStateCountdown
	c.setCountdownVisible(true)
}

func (c *Controller) applyMatchOver(msg messages.MatchOver) {
	c.applyScores(msg.Left, msg.Right)

	m := c.data()
	m.State = netconfig.MatchStateFinished
	m.Winner = msg.Winner
	m.CountdownRunning = false
	c.setCountdownVisible(false)
	for _, a := range c.Agents() {
		a.ResetRound()
	}
	c.log.Info().
		Stringer("winner", msg.Winner).
		Int("left", msg.Left).
		Int("right", msg.Right).
		Msg("match over")

	if c.ctx.IsAuthority() && c.results != nil {
		result := Result{
			Left:       msg.Left,
			Right:      msg.Right,
			Winner:     msg.Winner,
			Rounds:     m.Rounds,
			FinishedAt: time.Now(),
		}
		if err := c.results.SaveResult(result); err != nil {
			c.log.Error().Err(err).Msg("failed to save match result")
		}
	}
}

// applyBodyState accepts an observer's own body state on the authority.
func (c *Controller) applyBodyState(from netconfig.PeerID, msg messages.BodyState) error {
	if !c.ctx.IsAuthority() {
		return &PermissionError{Op: "body state"}
	}
	a, ok := c.agents[msg.PlayerID]
	if !ok {
		return fmt.Errorf("body state for player %d: %w", msg.PlayerID, ErrUnknownPlayer)
	}
	if a.Authority() != from {
		return fmt.Errorf("peer %d sent body state for player %d: %w", from, msg.PlayerID, ErrNotAuthority)
	}
	if msg.Generation != a.Generation() {
		c.log.Debug().
			Int32("player", int32(msg.PlayerID)).
			Uint32("got", msg.Generation).
			Uint32("want", a.Generation()).
			Msg("dropping stale body state")
		return nil
	}
	body := a.Body()
	if body.Frozen {
		return nil
	}
	body.Position = msg.Position
	body.Linear = msg.Linear
	body.Angular = msg.Angular
	body.SyncObject()
	return nil
}
