package main

import (
	"strings"
	"testing"

	"github.com/automoto/pitchclash/session"
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []session.PointerEvent
}

func (s *recordingSink) PushPointer(ev session.PointerEvent) bool {
	s.events = append(s.events, ev)
	return true
}

func TestParsePointer(t *testing.T) {
	ev, err := parsePointer("press 160 192.5")
	require.NoError(t, err)
	assert.Equal(t, session.PointerEvent{Kind: session.PointerPressed, Position: gamemath.Vec2{X: 160, Y: 192.5}}, ev)

	_, err = parsePointer("kick 1 2")
	assert.Error(t, err)
	_, err = parsePointer("move 1")
	assert.Error(t, err)
	_, err = parsePointer("move x 1")
	assert.Error(t, err)
}

func TestReadPointerSkipsBadLines(t *testing.T) {
	sink := &recordingSink{}
	input := "press 1 2\n\nnonsense\nMOVE 3 4\nrelease 3 4\n"

	readPointer(strings.NewReader(input), sink, zerolog.Nop())

	require.Len(t, sink.events, 3)
	assert.Equal(t, session.PointerPressed, sink.events[0].Kind)
	assert.Equal(t, session.PointerMoved, sink.events[1].Kind)
	assert.Equal(t, gamemath.Vec2{X: 3, Y: 4}, sink.events[2].Position)
}
