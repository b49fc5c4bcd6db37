package tween

// Property describes one animatable value on a target: its shape and how to
// write and read it. Apply receives the interpolated value every update. Read
// is only needed when the tween starts from the current value.
type Property struct {
	Kind  PropKind
	Name  string
	Apply func(target any, v Value)
	Read  func(target any) Value
}

// Disposable is implemented by targets whose lifetime is managed by the host.
// A tween whose target reports IsDisposed stops before writing to it again.
type Disposable interface {
	IsDisposed() bool
}

// FloatField animates *p.
func FloatField(p *float64) Property {
	return Property{
		Kind:  PropFloat,
		Name:  "Float",
		Apply: func(_ any, v Value) { *p = v.X },
		Read:  func(any) Value { return Float(*p) },
	}
}

// Vec2Field animates *p.
func Vec2Field(p *Vec2) Property {
	return Property{
		Kind:  PropVec2,
		Name:  "Vec2",
		Apply: func(_ any, v Value) { *p = Vec2{v.X, v.Y} },
		Read:  func(any) Value { return p.Value() },
	}
}

// Vec3Field animates *p.
func Vec3Field(p *Vec3) Property {
	return Property{
		Kind:  PropVec3,
		Name:  "Vec3",
		Apply: func(_ any, v Value) { *p = Vec3{v.X, v.Y, v.Z} },
		Read:  func(any) Value { return p.Value() },
	}
}

// Vec4Field animates all four components of *p.
func Vec4Field(p *Value) Property {
	return Property{
		Kind:  PropVec4,
		Name:  "Vec4",
		Apply: func(_ any, v Value) { *p = v },
		Read:  func(any) Value { return *p },
	}
}

// ColorField animates *p.
func ColorField(p *Color) Property {
	return Property{
		Kind:  PropColor,
		Name:  "Color",
		Apply: func(_ any, v Value) { *p = Color{v.X, v.Y, v.Z, v.W} },
		Read:  func(any) Value { return p.Value() },
	}
}

// QuatField animates the rotation *p.
func QuatField(p *Quat) Property {
	return Property{
		Kind:  PropQuat,
		Name:  "Rotation",
		Apply: func(_ any, v Value) { *p = Quat{v.X, v.Y, v.Z, v.W} },
		Read:  func(any) Value { return p.Value() },
	}
}

// AlphaField animates only the alpha channel of *p.
func AlphaField(p *Color) Property {
	return Property{
		Kind:  PropFloat,
		Name:  "Alpha",
		Apply: func(_ any, v Value) { p.A = v.X },
		Read:  func(any) Value { return Float(p.A) },
	}
}

func targetDisposed(target any) bool {
	d, ok := target.(Disposable)
	return ok && d.IsDisposed()
}
