package physics

import (
	"github.com/automoto/pitchclash/core"
	"github.com/automoto/pitchclash/shared/gamemath"
	"github.com/automoto/pitchclash/shared/netconfig"
	"github.com/automoto/pitchclash/tags"
)

// TopDown is an orthographic camera looking straight down on the pitch.
// Screen X maps to pitch X and screen Y maps to pitch Z.
type TopDown struct {
	world   *World
	Scale   float64 // Screen pixels per pitch unit
	OffsetX float64
	OffsetY float64
	pointer gamemath.Vec2
}

var _ core.Scene = (*TopDown)(nil)

func NewTopDown(w *World) *TopDown {
	return &TopDown{world: w, Scale: 1}
}

// SetPointer records the latest pointer position in screen coordinates.
func (s *TopDown) SetPointer(p gamemath.Vec2) {
	s.pointer = p
}

func (s *TopDown) Pointer() gamemath.Vec2 {
	return s.pointer
}

// Unproject maps a pitch position to screen coordinates.
func (s *TopDown) Unproject(p gamemath.Vec3) gamemath.Vec2 {
	flat := p.Flat()
	return gamemath.Vec2{
		X: flat.X*s.Scale + s.OffsetX,
		Y: flat.Y*s.Scale + s.OffsetY,
	}
}

func (s *TopDown) project(screen gamemath.Vec2) (x, z float64) {
	scale := s.Scale
	if scale == 0 {
		scale = 1
	}
	return (screen.X - s.OffsetX) / scale, (screen.Y - s.OffsetY) / scale
}

// IntersectRay casts a ray from the camera through a screen point and returns
// the first collider on one of the layers in mask.
func (s *TopDown) IntersectRay(screen gamemath.Vec2, mask uint32) (core.Collider, bool) {
	x, z := s.project(screen)

	if mask&netconfig.LayerInteract != 0 {
		if obj, ok := s.world.PickPoint(x, z, tags.ResolvInteract); ok {
			owner, _ := s.world.Owner(obj)
			return core.Collider{Name: tags.ResolvInteract, Owner: owner}, true
		}
	}
	if mask&netconfig.LayerBodies != 0 {
		for _, tag := range []string{tags.ResolvBall, tags.ResolvPlayer} {
			if _, ok := s.world.PickPoint(x, z, tag); ok {
				return core.Collider{Name: tag}, true
			}
		}
	}
	return core.Collider{}, false
}
