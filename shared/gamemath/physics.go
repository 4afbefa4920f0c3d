package gamemath

import "math"

// ApplyDamping reduces velocity by damp per second, never reversing it.
func ApplyDamping(vel Vec3, damp, dt float64) Vec3 {
	factor := 1.0 - damp*dt
	if factor < 0 {
		factor = 0
	}
	return vel.Scale(factor)
}

// Integrate advances pos by vel over dt.
func Integrate(pos, vel Vec3, dt float64) Vec3 {
	return pos.Add(vel.Scale(dt))
}

// OverlapsRect reports whether two axis-aligned rectangles intersect.
func OverlapsRect(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && bx < ax+aw && ay < by+bh && by < ay+ah
}

// SnapZero clears components whose magnitude is below eps.
func SnapZero(v Vec3, eps float64) Vec3 {
	if math.Abs(v.X) < eps {
		v.X = 0
	}
	if math.Abs(v.Y) < eps {
		v.Y = 0
	}
	if math.Abs(v.Z) < eps {
		v.Z = 0
	}
	return v
}
