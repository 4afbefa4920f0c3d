package session

import (
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/yohamta/donburi/ecs"
)

type PointerKind int

const (
	PointerMoved PointerKind = iota
	PointerPressed
	PointerReleased
)

// PointerEvent is a pointer update in screen coordinates.
type PointerEvent struct {
	Kind     PointerKind
	Position gamemath.Vec2
}

// PushPointer queues a pointer event for the next tick. It is safe to call
// from any goroutine and drops the event when the queue is full.
func (s *Session) PushPointer(ev PointerEvent) bool {
	select {
	case s.input <- ev:
		return true
	default:
		return false
	}
}

func (s *Session) updateInput(_ *ecs.ECS) {
	for {
		select {
		case ev := <-s.input:
			s.handlePointer(ev)
		default:
			return
		}
	}
}

func (s *Session) handlePointer(ev PointerEvent) {
	s.scene.SetPointer(ev.Position)

	agent, ok := s.ctrl.LocalAgent()
	if !ok {
		return
	}
	switch ev.Kind {
	case PointerPressed:
		if agent.PointerPressed(ev.Position) {
			s.log.Debug().Msg("charging")
		}
	case PointerReleased:
		agent.PointerReleased()
	}
}
