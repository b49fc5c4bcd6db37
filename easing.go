package tween

import (
	"fmt"
	"math"
)

// ParametricEase selects a tunable easing shape.
type ParametricEase uint8

const (
	ParametricNone      ParametricEase = iota
	ParametricOvershoot                // OutBack with adjustable overshoot
	ParametricElastic                  // OutElastic with adjustable decay and period
	ParametricBounce                   // OutBounce with adjustable rebound height
)

var parametricNames = [...]string{"None", "Overshoot", "Elastic", "Bounce"}

func (p ParametricEase) String() string {
	if int(p) < len(parametricNames) {
		return parametricNames[p]
	}
	return fmt.Sprintf("ParametricEase(%d)", uint8(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p ParametricEase) MarshalText() ([]byte, error) {
	if int(p) >= len(parametricNames) {
		return nil, fmt.Errorf("tween: invalid parametric ease %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ParametricEase) UnmarshalText(text []byte) error {
	for i, name := range parametricNames {
		if name == string(text) {
			*p = ParametricEase(i)
			return nil
		}
	}
	return fmt.Errorf("tween: unknown parametric ease %q", text)
}

const (
	backOvershoot  = 1.70158
	elasticPeriod  = 0.3
	bounceBoundary = 1 / 2.75
)

// Easing describes how a tween shapes its progress. The zero value is
// EaseDefault.
type Easing struct {
	Ease       Ease           `yaml:"ease"`
	Curve      *Curve         `yaml:"curve,omitempty"`
	Parametric ParametricEase `yaml:"parametric,omitempty"`
	Strength   float64        `yaml:"strength,omitempty"`
	Period     float64        `yaml:"period,omitempty"`
}

// Standard wraps a standard curve.
func Standard(e Ease) Easing {
	return Easing{Ease: e}
}

// CustomCurve eases through c.
func CustomCurve(c *Curve) Easing {
	return Easing{Ease: EaseCustom, Curve: c}
}

// Overshoot eases out past the end value and settles back. Strength 1 matches
// EaseOutBack.
func Overshoot(strength float64) Easing {
	return Easing{Ease: EaseCustom, Parametric: ParametricOvershoot, Strength: strength}
}

// Elastic oscillates around the end value. Larger strength decays slower;
// period is the oscillation length in normalized time (0.3 matches
// EaseOutElastic).
func Elastic(strength, period float64) Easing {
	return Easing{Ease: EaseCustom, Parametric: ParametricElastic, Strength: strength, Period: period}
}

// Bounce rebounds off the end value. Strength scales rebound height; 1 matches
// EaseOutBounce.
func Bounce(strength float64) Easing {
	return Easing{Ease: EaseCustom, Parametric: ParametricBounce, Strength: strength}
}

func (e Easing) String() string {
	switch {
	case e.Parametric != ParametricNone:
		return e.Parametric.String()
	case e.Ease == EaseCustom:
		return "Curve"
	}
	return e.Ease.String()
}

// Evaluate maps t through the described shape. Placeholders must already be
// resolved; see Evaluate.
func (e Easing) Evaluate(t float64) float64 {
	switch e.Parametric {
	case ParametricOvershoot:
		s := backOvershoot * e.Strength
		t--
		return t*t*((s+1)*t+s) + 1
	case ParametricElastic:
		if t > 0.9999 {
			return 1
		}
		return 1 + math.Pow(2, -10*t/e.Strength)*math.Sin((t-e.Period/4)*(2*math.Pi)/e.Period)
	case ParametricBounce:
		b := Evaluate(t, EaseOutBounce)
		if t < bounceBoundary {
			return b
		}
		return 1 - e.Strength*(1-b)
	}
	if e.Ease == EaseCustom {
		return e.Curve.Evaluate(t)
	}
	return Evaluate(t, e.Ease)
}

// resolve replaces placeholders and invalid parameters with usable values.
// It returns a warning when something had to be substituted and an error when
// the easing cannot be used at all.
func (e Easing) resolve(def Ease, validateCurve bool) (Easing, string, error) {
	if e.Parametric != ParametricNone {
		if int(e.Parametric) >= len(parametricNames) {
			return e, "", fmt.Errorf("invalid parametric ease %d", uint8(e.Parametric))
		}
		var warn string
		if !(e.Strength > 0) {
			warn = fmt.Sprintf("%v strength must be positive, was %g; using 1", e.Parametric, e.Strength)
			e.Strength = 1
		}
		if e.Parametric == ParametricElastic && !(e.Period > 0) {
			e.Period = elasticPeriod
		}
		e.Ease, e.Curve = EaseCustom, nil
		return e, warn, nil
	}
	switch {
	case !e.Ease.valid():
		return e, "", fmt.Errorf("invalid ease %d", int8(e.Ease))
	case e.Ease == EaseDefault:
		return Easing{Ease: def}, "", nil
	case e.Ease == EaseCustom:
		if e.Curve == nil {
			return e, "", fmt.Errorf("ease is Custom but no curve was supplied")
		}
		if validateCurve {
			if err := e.Curve.Validate(); err != nil {
				return Easing{Ease: def}, fmt.Sprintf("%v; using %v instead", err, def), nil
			}
		}
		return e, "", nil
	}
	return Easing{Ease: e.Ease}, "", nil
}
