package tween

import (
	"math"
	"math/rand/v2"
)

// DefaultShakeFrequency is the number of shake points per second used when
// ShakeSettings.Frequency is zero.
const DefaultShakeFrequency = 10

// ShakeSettings configures Scheduler.Shake and Scheduler.Punch.
type ShakeSettings struct {
	// Strength is the largest offset per component. Rotation shakes read it
	// as Euler angles in radians.
	Strength Value `yaml:"strength"`

	Duration float64 `yaml:"duration"`

	// Frequency is the number of shake points per second.
	Frequency float64 `yaml:"frequency,omitempty"`

	// Falloff fades the strength over the duration, following FalloffEase
	// inverted (1 at the start, 0 at the end).
	Falloff     bool `yaml:"falloff,omitempty"`
	FalloffEase Ease `yaml:"falloff_ease,omitempty"`

	// Asymmetry in [0, 1]. 0 shakes evenly around the start value, 1 only
	// towards Strength. For punches it is the resistance to recoil.
	Asymmetry float64 `yaml:"asymmetry,omitempty"`

	// EaseBetweenShakes shapes the move from one shake point to the next.
	// EaseDefault uses EaseOutQuad.
	EaseBetweenShakes Ease `yaml:"ease_between_shakes,omitempty"`

	Cycles       int     `yaml:"cycles,omitempty"`
	StartDelay   float64 `yaml:"start_delay,omitempty"`
	EndDelay     float64 `yaml:"end_delay,omitempty"`
	UnscaledTime bool    `yaml:"unscaled_time,omitempty"`
	FixedUpdate  bool    `yaml:"fixed_update,omitempty"`

	// Rand picks shake points. Nil uses the global source.
	Rand *rand.Rand `yaml:"-"`
}

// NewShakeSettings returns a falloff shake with the default frequency.
func NewShakeSettings(strength Value, duration float64) ShakeSettings {
	return ShakeSettings{
		Strength:  strength,
		Duration:  duration,
		Frequency: DefaultShakeFrequency,
		Falloff:   true,
		Cycles:    1,
	}
}

func (st ShakeSettings) tweenSettings() Settings {
	return Settings{
		Duration:     st.Duration,
		Easing:       Standard(EaseLinear),
		Cycles:       st.Cycles,
		CycleMode:    CycleRestart,
		StartDelay:   st.StartDelay,
		EndDelay:     st.EndDelay,
		UnscaledTime: st.UnscaledTime,
		FixedUpdate:  st.FixedUpdate,
	}
}

// shaker holds the state of one shake between updates.
type shaker struct {
	st       ShakeSettings
	punch    bool
	mainAxis int
	sign     bool
	index    int
	from, to Value
	base     Value
	hasBase  bool
	last     float64
}

func newShaker(st ShakeSettings, punch bool) *shaker {
	sh := &shaker{st: st, punch: punch, index: -1}
	strongest := -1.0
	for i := range 4 {
		if a := math.Abs(axis(st.Strength, i)); a > strongest {
			strongest, sh.mainAxis = a, i
		}
	}
	return sh
}

// offset returns the displacement at progress t in [0, 1] of the current
// cycle. The offset is zero at t = 1 so a shake always ends where it started.
func (sh *shaker) offset(t float64) Value {
	if t < sh.last {
		// new cycle
		sh.index, sh.from, sh.to = -1, Value{}, Value{}
	}
	sh.last = t
	if t >= 1 {
		return Value{}
	}
	pos := t * sh.st.Duration * sh.st.Frequency
	idx := int(pos)
	for sh.index < idx {
		sh.index++
		sh.from, sh.to = sh.to, sh.nextPoint()
	}
	f := Evaluate(pos-float64(idx), sh.st.EaseBetweenShakes)
	v := sh.from.add(sh.to.sub(sh.from).scale(f))
	if sh.st.Falloff {
		v = v.scale(1 - Evaluate(t, sh.st.FalloffEase))
	}
	return v
}

func (sh *shaker) random() float64 {
	if sh.st.Rand != nil {
		return sh.st.Rand.Float64()
	}
	return rand.Float64()
}

// nextPoint alternates direction along the main axis. Punches move exactly
// along Strength; shakes pick a random magnitude and randomize the other axes.
func (sh *shaker) nextPoint() Value {
	sh.sign = !sh.sign
	symmetry := 1 - sh.st.Asymmetry
	var p Value
	for i := range 4 {
		s := axis(sh.st.Strength, i)
		if s == 0 {
			continue
		}
		var k float64
		switch {
		case sh.punch:
			k = 1
			if !sh.sign {
				k = -symmetry
			}
		case i == sh.mainAxis:
			k = 0.5 + sh.random()/2
			if !sh.sign {
				k = -k * symmetry
			}
		default:
			k = sh.random()*2 - 1
			if k < 0 {
				k *= symmetry
			}
		}
		setAxis(&p, i, s*k)
	}
	return p
}

func axis(v Value, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	return v.W
}

func setAxis(v *Value, i int, f float64) {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	case 2:
		v.Z = f
	default:
		v.W = f
	}
}

// Shake displaces the property p of target around its current value with
// decaying random offsets and returns it to that value at the end of every
// cycle. Rotation properties are shaken by Euler angles.
func (s *Scheduler) Shake(target any, p Property, st ShakeSettings) Tween {
	return s.shake(target, p, st, false)
}

// Punch is a Shake that oscillates back and forth along Strength, like the
// recoil of a hit.
func (s *Scheduler) Punch(target any, p Property, st ShakeSettings) Tween {
	return s.shake(target, p, st, true)
}

func (s *Scheduler) shake(target any, p Property, st ShakeSettings, punch bool) Tween {
	if p.Apply == nil || p.Read == nil {
		s.log.Error().Msg("shakes need a property with Apply and Read")
		return Tween{}
	}
	if st.Frequency == 0 {
		st.Frequency = DefaultShakeFrequency
	} else if st.Frequency < 0 || math.IsNaN(st.Frequency) || math.IsInf(st.Frequency, 0) {
		s.log.Warn().Float64("frequency", st.Frequency).Msg("invalid shake frequency, using default")
		st.Frequency = DefaultShakeFrequency
	}
	if st.Asymmetry < 0 || st.Asymmetry > 1 {
		s.log.Warn().Float64("asymmetry", st.Asymmetry).Msg("shake asymmetry must be within [0, 1], clamping")
		st.Asymmetry = clamp01(st.Asymmetry)
	}
	// shakes only take standard curves
	if st.EaseBetweenShakes <= EaseDefault || !st.EaseBetweenShakes.valid() {
		st.EaseBetweenShakes = EaseOutQuad
	}
	if st.FalloffEase <= EaseDefault || !st.FalloffEase.valid() {
		st.FalloffEase = EaseLinear
	}
	if st.Cycles == 0 {
		st.Cycles = 1
	}
	sh := newShaker(st, punch)
	name := "Shake"
	if punch {
		name = "Punch"
	}
	if p.Name != "" {
		name += " " + p.Name
	}
	wrapped := Property{
		Kind: PropFloat,
		Name: name,
		Apply: func(target any, v Value) {
			if !sh.hasBase {
				sh.base, sh.hasBase = p.Read(target), true
			}
			off := sh.offset(v.X)
			if p.Kind == PropQuat {
				q := QuatFromEuler(off.X, off.Y, off.Z)
				p.Apply(target, quatMul(sh.base, q.Value()))
				return
			}
			p.Apply(target, sh.base.add(off))
		},
	}
	return s.Animate(target, wrapped, Float(0), Float(1), st.tweenSettings())
}
