package gamemath

import "github.com/kvartborg/vector"

// Vec2 is a screen-space or pitch-plane vector.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a world-space vector. The pitch lies on the XZ plane.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalized returns the unit vector in v's direction, or the zero vector
// when v has no length.
func (v Vec2) Normalized() Vec2 {
	vec := vector.Vector{v.X, v.Y}
	if vec.Magnitude() == 0 {
		return Vec2{}
	}
	unit := vec.Unit()
	return Vec2{X: unit[0], Y: unit[1]}
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

func (v Vec3) Scale(f float64) Vec3 { return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f} }

func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Flat projects v onto the pitch plane.
func (v Vec3) Flat() Vec2 { return Vec2{X: v.X, Y: v.Z} }
