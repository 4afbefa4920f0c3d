package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/automoto/pitchclash/session"
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/rs/zerolog"
)

type pointerSink interface {
	PushPointer(ev session.PointerEvent) bool
}

var pointerKinds = map[string]session.PointerKind{
	"press":   session.PointerPressed,
	"move":    session.PointerMoved,
	"release": session.PointerReleased,
}

// parsePointer reads one "<kind> <x> <y>" line.
func parsePointer(line string) (session.PointerEvent, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return session.PointerEvent{}, fmt.Errorf("want \"<press|move|release> X Y\", got %q", line)
	}
	kind, ok := pointerKinds[strings.ToLower(fields[0])]
	if !ok {
		return session.PointerEvent{}, fmt.Errorf("unknown pointer command %q", fields[0])
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return session.PointerEvent{}, fmt.Errorf("parse x: %w", err)
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return session.PointerEvent{}, fmt.Errorf("parse y: %w", err)
	}
	return session.PointerEvent{Kind: kind, Position: gamemath.Vec2{X: x, Y: y}}, nil
}

// readPointer feeds pointer commands from r into the session until EOF.
func readPointer(r io.Reader, sink pointerSink, log zerolog.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ev, err := parsePointer(line)
		if err != nil {
			log.Warn().Err(err).Msg("bad pointer command")
			continue
		}
		if !sink.PushPointer(ev) {
			log.Warn().Msg("pointer queue full, dropping command")
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Msg("pointer input closed")
	}
}
