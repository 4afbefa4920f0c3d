package match

import (
	"fmt"

	"github.com/automoto/pitchclash/components"
	cfg "github.com/automoto/pitchclash/config"
	"github.com/automoto/pitchclash/shared/messages"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/automoto/pitchclash/timer"
)

// Authority is the command surface that mutates shared match state. It is
// only handed out on the authority peer.
type Authority interface {
	PrepareMatch() error
	StartCountdown()
	BallEnteredGoal(goal netconfig.Team) error
	PlayerEnteredGoal(id netconfig.PeerID) error
	ScheduleRespawn(id netconfig.PeerID) error
	ResetRound()
}

type authority struct {
	c      *Controller
	timers *timer.Arena
}

var _ Authority = (*authority)(nil)

// Authority returns the command interface, or a PermissionError on observers.
func (c *Controller) Authority() (Authority, error) {
	if !c.ctx.IsAuthority() || c.ctx.Timers == nil {
		return nil, &PermissionError{Op: "match command"}
	}
	return &authority{c: c, timers: c.ctx.Timers}, nil
}

// PrepareMatch records the ball origin, spawns the HUD on every peer and
// starts the first countdown. It only succeeds once.
func (a *authority) PrepareMatch() error {
	m := a.c.data()
	if m.State != netconfig.MatchStateIdle {
		return fmt.Errorf("prepare match in state %s: %w", m.State, ErrAlreadyPrepared)
	}
	m.State = netconfig.MatchStatePreparing
	m.BallOrigin = a.c.Ball().Position
	a.c.log.Info().
		Float64("x", m.BallOrigin.X).
		Float64("z", m.BallOrigin.Z).
		Msg("preparing match")

	a.c.rpc(messages.SpawnHUD{})
	a.StartCountdown()
	return nil
}

// StartCountdown replaces any running countdown with a fresh one from the
// configured start value.
func (a *authority) StartCountdown() {
	m := a.c.data()
	a.timers.Cancel(timer.CountdownKey)

	m.State = netconfig.MatchStateCountdown
	m.CountdownRunning = true
	m.Remaining = cfg.Match.CountdownSeconds
	if m.Remaining < 0 {
		m.Remaining = 0
	}
	a.c.rpc(messages.UpdateCountdown{Value: m.Remaining})

	if m.Remaining == 0 {
		a.finishCountdown()
		return
	}
	a.timers.Every(timer.CountdownKey, cfg.Match.CountdownTick, a.countdownTick)
}

func (a *authority) countdownTick() {
	m := a.c.data()
	if m.Remaining > 0 {
		m.Remaining--
	}
	a.c.rpc(messages.UpdateCountdown{Value: m.Remaining})
	if m.Remaining <= 0 {
		a.finishCountdown()
	}
}

func (a *authority) finishCountdown() {
	a.timers.Cancel(timer.CountdownKey)
	a.c.data().CountdownRunning = false
	a.c.rpc(messages.CountdownFinished{})
}

// BallEnteredGoal scores for the team opposing goal and resets the round.
func (a *authority) BallEnteredGoal(goal netconfig.Team) error {
	m := a.c.data()
	if m.State != netconfig.MatchStateCountdown && m.State != netconfig.MatchStatePlaying {
		a.c.log.Debug().Stringer("state", m.State).Msg("goal ignored")
		return nil
	}
	scorer := goal.Opponent()
	if scorer == netconfig.TeamNone {
		return fmt.Errorf("ball entered goal of team %s", goal)
	}

	score := m.Score
	switch scorer {
	case netconfig.TeamLeft:
		score.Left++
	case netconfig.TeamRight:
		score.Right++
	}
	a.c.log.Info().
		Stringer("scorer", scorer).
		Int("left", score.Left).
		Int("right", score.Right).
		Msg("goal")

	a.broadcastOutcome(score, scorer)

	if target := cfg.Match.WinningScore; target > 0 && score.For(scorer) >= target {
		a.timers.Cancel(timer.CountdownKey)
		a.c.rpc(messages.MatchOver{Winner: scorer, Left: score.Left, Right: score.Right})
		return nil
	}
	a.StartCountdown()
	return nil
}

// PlayerEnteredGoal schedules a respawn for a player standing in a goal.
func (a *authority) PlayerEnteredGoal(id netconfig.PeerID) error {
	if a.c.State() == netconfig.MatchStateFinished {
		return nil
	}
	return a.ScheduleRespawn(id)
}

// ScheduleRespawn starts the respawn delay of a player, replacing any
// pending respawn for the same id.
func (a *authority) ScheduleRespawn(id netconfig.PeerID) error {
	if _, ok := a.c.agents[id]; !ok {
		return fmt.Errorf("schedule respawn for player %d: %w", id, ErrUnknownPlayer)
	}
	spawn := a.c.layout.SpawnFor(id)
	a.timers.After(timer.RespawnKey(id), cfg.Match.RespawnDelay, func() {
		agent, ok := a.c.agents[id]
		if !ok {
			return
		}
		a.c.rpc(messages.PlayerRespawn{
			PlayerID:   id,
			Position:   spawn,
			Generation: agent.Generation() + 1,
		})
	})
	a.c.log.Debug().Int32("player", int32(id)).Dur("delay", cfg.Match.RespawnDelay).Msg("respawn scheduled")
	return nil
}

// ResetRound resets ball and players without changing the score and starts
// a new countdown.
func (a *authority) ResetRound() {
	if a.c.State() == netconfig.MatchStateFinished {
		return
	}
	a.broadcastOutcome(a.c.data().Score, netconfig.TeamNone)
	a.StartCountdown()
}

// broadcastOutcome sends the score and the reset in one message, after
// dropping every pending respawn.
func (a *authority) broadcastOutcome(score components.Score, scorer netconfig.Team) {
	a.timers.CancelPrefix(timer.RespawnPrefix)

	outcome := messages.RoundOutcome{
		Left:       score.Left,
		Right:      score.Right,
		Scorer:     scorer,
		BallOrigin: a.c.data().BallOrigin,
	}
	for _, id := range a.c.order {
		outcome.Spawns = append(outcome.Spawns, messages.PlayerSpawn{
			PlayerID:   id,
			Position:   a.c.layout.SpawnFor(id),
			Generation: a.c.agents[id].Generation() + 1,
		})
	}
	a.c.rpc(outcome)
}
