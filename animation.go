package tween

import (
	"math"

	"github.com/tanema/gween/ease"
)

// TweenPosition animates *pos from its current value to the given
// coordinates. target is used for disposal checks and per-target bulk
// operations and may be nil.
func (s *Scheduler) TweenPosition(target any, pos *Vec2, to Vec2, duration float64, e Ease) Tween {
	p := Vec2Field(pos)
	p.Name = "Position"
	return s.AnimateTo(target, p, to.Value(), NewSettings(duration, e))
}

// TweenScale animates *scale from its current value to the given factors.
func (s *Scheduler) TweenScale(target any, scale *Vec2, to Vec2, duration float64, e Ease) Tween {
	p := Vec2Field(scale)
	p.Name = "Scale"
	return s.AnimateTo(target, p, to.Value(), NewSettings(duration, e))
}

// TweenColor animates all four components of *c to the given color.
func (s *Scheduler) TweenColor(target any, c *Color, to Color, duration float64, e Ease) Tween {
	return s.AnimateTo(target, ColorField(c), to.Value(), NewSettings(duration, e))
}

// TweenAlpha animates only c.A to the given value.
func (s *Scheduler) TweenAlpha(target any, c *Color, to float64, duration float64, e Ease) Tween {
	return s.AnimateTo(target, AlphaField(c), Float(to), NewSettings(duration, e))
}

// TweenRotation animates *rot along the shortest arc to the given rotation.
func (s *Scheduler) TweenRotation(target any, rot *Quat, to Quat, duration float64, e Ease) Tween {
	return s.AnimateTo(target, QuatField(rot), to.Value(), NewSettings(duration, e))
}

// CurveFromFunc samples a gween easing function into a Curve with the given
// number of segments (at least 1), so any ease.TweenFunc can drive a tween:
//
//	st := tween.NewSettings(1, tween.EaseCustom).
//		WithEasing(tween.CustomCurve(tween.CurveFromFunc(ease.OutBounce, 32)))
//
// Tangents come from central differences, so steep or discontinuous
// functions need more segments.
func CurveFromFunc(fn ease.TweenFunc, segments int) *Curve {
	segments = max(segments, 1)
	sample := func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
	const h = 1e-3
	keys := make([]Keyframe, segments+1)
	for i := range keys {
		t := float64(i) / float64(segments)
		lo, hi := math.Max(t-h, 0), math.Min(t+h, 1)
		slope := (sample(hi) - sample(lo)) / (hi - lo)
		keys[i] = Keyframe{Time: t, Value: sample(t), InTangent: slope, OutTangent: slope}
	}
	keys[0].Value, keys[segments].Value = 0, 1
	return NewCurve(keys...)
}
