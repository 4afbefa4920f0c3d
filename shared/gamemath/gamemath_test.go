package gamemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalized(t *testing.T) {
	n := Vec2{X: 3, Y: 4}.Normalized()
	assert.InDelta(t, 0.6, n.X, 1e-9)
	assert.InDelta(t, 0.8, n.Y, 1e-9)

	assert.Equal(t, Vec2{}, Vec2{}.Normalized())
}

func TestLaunchImpulseOpposesPointer(t *testing.T) {
	imp := LaunchImpulse(Vec2{X: 1, Y: 0}, 10)
	assert.Equal(t, Vec3{X: -10, Y: 0, Z: 0}, imp)

	imp = LaunchImpulse(Vec2{X: 0, Y: -1}, 4)
	assert.Equal(t, 4.0, imp.Z)
}

func TestAimAngle(t *testing.T) {
	assert.InDelta(t, 0, AimAngle(Vec2{X: 0, Y: 1}), 1e-9)
	assert.InDelta(t, math.Pi/2, AimAngle(Vec2{X: 1, Y: 0}), 1e-9)
}

func TestApplyDampingNeverReverses(t *testing.T) {
	v := ApplyDamping(Vec3{X: 10}, 5, 1)
	assert.Equal(t, 0.0, v.X)

	v = ApplyDamping(Vec3{X: 10}, 0.5, 1)
	assert.InDelta(t, 5, v.X, 1e-9)
}

func TestOverlapsRect(t *testing.T) {
	assert.True(t, OverlapsRect(0, 0, 10, 10, 5, 5, 10, 10))
	assert.False(t, OverlapsRect(0, 0, 10, 10, 10, 0, 5, 5))
}
