package geom

import "math"

// Vec2 is a planar vector. X maps to world X, Y maps to world Z.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a world-space vector (Y up).
type Vec3 struct {
	X, Y, Z float64
}

// Zero2 is the zero planar vector.
var Zero2 = Vec2{}

// One3 is the identity scale.
var One3 = Vec3{X: 1, Y: 1, Z: 1}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Planar() Vec2 {
	return Vec2{v.X, v.Z}
}

func (v Vec3) WithPlanar(p Vec2) Vec3 {
	return Vec3{p.X, v.Y, p.Y}
}

// Angle returns the angle of v relative to the positive X axis, in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotated returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotated(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// MoveToward moves v toward target by at most delta. Never overshoots.
func (v Vec2) MoveToward(target Vec2, delta float64) Vec2 {
	diff := target.Sub(v)
	dist := diff.Length()
	if dist <= delta || dist < 1e-9 {
		return target
	}
	return v.Add(diff.Scale(delta / dist))
}

// AngleDifference returns the signed shortest rotation from `from` to `to`,
// normalized to [-π, π).
func AngleDifference(from, to float64) float64 {
	diff := math.Mod(to-from, 2*math.Pi)
	return math.Mod(2*diff, 2*math.Pi) - diff
}

// MoveTowardAngle rotates from toward to by at most step radians along the
// shortest arc.
func MoveTowardAngle(from, to, step float64) float64 {
	diff := AngleDifference(from, to)
	if math.Abs(diff) <= step {
		return to
	}
	if diff < 0 {
		return from - step
	}
	return from + step
}
