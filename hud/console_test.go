package hud

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestConsoleLogsVisibleCountdown(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(zerolog.New(&buf))

	c.UpdateCountdown(5)
	assert.Empty(t, buf.String(), "hidden countdown is not reported")

	c.SetCountdownVisible(true)
	c.UpdateCountdown(4)
	assert.Contains(t, buf.String(), `"countdown":4`)

	c.UpdateCountdown(0)
	assert.Contains(t, buf.String(), "GO")
	assert.Equal(t, 0, c.Countdown())
}

func TestConsoleReportsScoreChangesOnly(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(zerolog.New(&buf))

	c.UpdateScores(0, 0)
	assert.Empty(t, buf.String())

	c.UpdateScores(0, 1)
	assert.Contains(t, buf.String(), `"right":1`)
	left, right := c.Scores()
	assert.Equal(t, 0, left)
	assert.Equal(t, 1, right)
}
