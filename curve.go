package tween

import (
	"errors"
	"fmt"
	"math"
)

// curveEndpointTolerance is how far the first and last keys may sit from
// (0, 0) and (1, 1) and still count as spanning the unit domain.
const curveEndpointTolerance = 1e-4

// Keyframe is one control point of a Curve. Tangents are slopes (dValue/dTime)
// on either side of the key. An infinite tangent holds the previous value
// until the next key (a step).
type Keyframe struct {
	Time       float64 `yaml:"time"`
	Value      float64 `yaml:"value"`
	InTangent  float64 `yaml:"in_tangent,omitempty"`
	OutTangent float64 `yaml:"out_tangent,omitempty"`
}

// Curve is a user supplied easing shape sampled with cubic Hermite
// interpolation between keys. Keys must be sorted by Time.
type Curve struct {
	Keys []Keyframe `yaml:"keys"`
}

// NewCurve builds a Curve from keys, which are used as given.
func NewCurve(keys ...Keyframe) *Curve {
	return &Curve{Keys: keys}
}

// NewLinearCurve returns the straight line from (0, 0) to (1, 1).
func NewLinearCurve() *Curve {
	return NewCurve(
		Keyframe{Time: 0, Value: 0, InTangent: 1, OutTangent: 1},
		Keyframe{Time: 1, Value: 1, InTangent: 1, OutTangent: 1},
	)
}

var (
	errCurveTooShort = errors.New("custom curve needs at least 2 keyframes")
	errCurveUnsorted = errors.New("custom curve keyframes must be sorted by time")
)

// Validate reports whether c can drive a tween: at least two keys, sorted,
// starting at (0, 0) and ending at (1, 1).
func (c *Curve) Validate() error {
	if c == nil || len(c.Keys) < 2 {
		return errCurveTooShort
	}
	for i := 1; i < len(c.Keys); i++ {
		if c.Keys[i].Time < c.Keys[i-1].Time {
			return errCurveUnsorted
		}
	}
	first, last := c.Keys[0], c.Keys[len(c.Keys)-1]
	if !near(first.Time, 0) || !near(first.Value, 0) {
		return fmt.Errorf("custom curve must start at (0, 0), starts at (%g, %g)", first.Time, first.Value)
	}
	if !near(last.Time, 1) || !near(last.Value, 1) {
		return fmt.Errorf("custom curve must end at (1, 1), ends at (%g, %g)", last.Time, last.Value)
	}
	return nil
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= curveEndpointTolerance
}

// Evaluate samples the curve at t. Outside the key range the nearest
// endpoint value is returned.
func (c *Curve) Evaluate(t float64) float64 {
	keys := c.Keys
	n := len(keys)
	switch {
	case n == 0:
		return t
	case n == 1 || t <= keys[0].Time:
		return keys[0].Value
	case t >= keys[n-1].Time:
		return keys[n-1].Value
	}
	i := 1
	for i < n-1 && keys[i].Time < t {
		i++
	}
	a, b := keys[i-1], keys[i]
	span := b.Time - a.Time
	if span <= 0 {
		return b.Value
	}
	if math.IsInf(a.OutTangent, 0) || math.IsInf(b.InTangent, 0) {
		return a.Value
	}
	u := (t - a.Time) / span
	u2 := u * u
	u3 := u2 * u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2
	return h00*a.Value + h10*span*a.OutTangent + h01*b.Value + h11*span*b.InTangent
}
