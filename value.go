package tween

import "math"

// Value is the storage shared by every animated property kind. Scalars use X,
// vectors use X..W in order, colors map R, G, B, A to X, Y, Z, W and
// quaternions map x, y, z, w the same way.
type Value struct {
	X, Y, Z, W float64
}

// Float wraps a scalar.
func Float(v float64) Value { return Value{X: v} }

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Value converts v for use with Scheduler.Animate.
func (v Vec2) Value() Value { return Value{X: v.X, Y: v.Y} }

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Value converts v for use with Scheduler.Animate.
func (v Vec3) Value() Value { return Value{X: v.X, Y: v.Y, Z: v.Z} }

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Value converts c for use with Scheduler.Animate.
func (c Color) Value() Value { return Value{X: c.R, Y: c.G, Z: c.B, W: c.A} }

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the zero rotation.
var QuatIdentity = Quat{W: 1}

// Value converts q for use with Scheduler.Animate.
func (q Quat) Value() Value { return Value{X: q.X, Y: q.Y, Z: q.Z, W: q.W} }

// QuatFromEuler builds a rotation from angles in radians applied in Z, X, Y
// order (roll, then pitch, then yaw).
func QuatFromEuler(x, y, z float64) Quat {
	sx, cx := math.Sincos(x / 2)
	sy, cy := math.Sincos(y / 2)
	sz, cz := math.Sincos(z / 2)
	return Quat{
		X: sx*cy*cz + cx*sy*sz,
		Y: cx*sy*cz - sx*cy*sz,
		Z: cx*cy*sz - sx*sy*cz,
		W: cx*cy*cz + sx*sy*sz,
	}
}

// PropKind is the shape of an animated value.
type PropKind uint8

const (
	PropFloat PropKind = iota
	PropVec2
	PropVec3
	PropVec4
	PropColor
	PropQuat
)

var propKindNames = [...]string{"Float", "Vec2", "Vec3", "Vec4", "Color", "Quat"}

func (k PropKind) String() string {
	if int(k) < len(propKindNames) {
		return propKindNames[k]
	}
	return "PropKind(?)"
}

func (v Value) sub(o Value) Value {
	return Value{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W}
}

func (v Value) dot(o Value) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z + v.W*o.W
}

func (v Value) scale(f float64) Value {
	return Value{v.X * f, v.Y * f, v.Z * f, v.W * f}
}

func (v Value) add(o Value) Value {
	return Value{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W}
}

func (v Value) normalized() Value {
	l := math.Sqrt(v.dot(v))
	if l == 0 {
		return QuatIdentity.Value()
	}
	return v.scale(1 / l)
}

// lerpValue blends start towards start+diff by f. Quaternions slerp from start
// to end along the shortest arc instead; f outside [0, 1] extrapolates.
func lerpValue(kind PropKind, start, end, diff Value, f float64) Value {
	if kind == PropQuat {
		return slerp(start, end, f)
	}
	return start.add(diff.scale(f))
}

func slerp(a, b Value, f float64) Value {
	d := a.dot(b)
	if d < 0 {
		b = b.scale(-1)
		d = -d
	}
	if d > 0.9995 {
		return a.add(b.sub(a).scale(f)).normalized()
	}
	theta := math.Acos(d)
	sin := math.Sin(theta)
	wa := math.Sin((1-f)*theta) / sin
	wb := math.Sin(f*theta) / sin
	return a.scale(wa).add(b.scale(wb))
}

// quatMul returns the rotation b applied after a, both as quaternions.
func quatMul(a, b Value) Value {
	return Value{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}
