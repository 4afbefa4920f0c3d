package gamemath

import "math"

// AimAngle returns the yaw of an aim indicator pointing along dir.
func AimAngle(dir Vec2) float64 {
	return math.Atan2(dir.X, dir.Y)
}

// LaunchImpulse returns the impulse that launches a body away from the
// pointer: opposite to dir on the pitch plane, scaled by force.
func LaunchImpulse(dir Vec2, force float64) Vec3 {
	return Vec3{X: dir.X * -force, Y: 0, Z: dir.Y * -force}
}

// DirectionTo returns the unit vector from from to to.
func DirectionTo(from, to Vec2) Vec2 {
	return to.Sub(from).Normalized()
}
