// Package hud provides a headless HUD that reports countdown and score
// changes through the logger.
package hud

import (
	"github.com/automoto/pitchclash/match"
	"github.com/rs/zerolog"
)

// Console logs what a graphical HUD would draw.
type Console struct {
	log       zerolog.Logger
	countdown int
	left      int
	right     int
	visible   bool
}

var _ match.HUD = (*Console)(nil)

func NewConsole(log zerolog.Logger) *Console {
	return &Console{
		log:       log.With().Str("component", "hud").Logger(),
		countdown: -1,
	}
}

// Factory returns a match.HUDFactory creating a console HUD.
func Factory(log zerolog.Logger) match.HUDFactory {
	return func() match.HUD {
		return NewConsole(log)
	}
}

func (c *Console) UpdateCountdown(value int) {
	c.countdown = value
	if !c.visible {
		return
	}
	if value == 0 {
		c.log.Info().Msg("GO")
		return
	}
	c.log.Info().Int("countdown", value).Msg("round starting")
}

func (c *Console) UpdateScores(left, right int) {
	if left == c.left && right == c.right {
		return
	}
	c.left, c.right = left, right
	c.log.Info().Int("left", left).Int("right", right).Msg("score")
}

func (c *Console) SetCountdownVisible(visible bool) {
	c.visible = visible
}

// Countdown returns the last countdown value shown, -1 before the first.
func (c *Console) Countdown() int {
	return c.countdown
}

// Scores returns the displayed scores.
func (c *Console) Scores() (left, right int) {
	return c.left, c.right
}

// CountdownVisible reports whether the countdown label is shown.
func (c *Console) CountdownVisible() bool {
	return c.visible
}
