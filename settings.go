package tween

import (
	"errors"
	"fmt"
	"math"
)

// minDuration is the shortest non-zero duration a tween may have.
const minDuration = 0.001

// Settings holds the timing and easing of a tween. The zero value is an
// instant, single-cycle tween with the default ease.
type Settings struct {
	Duration     float64   `yaml:"duration"`
	Easing       Easing    `yaml:",inline"`
	Cycles       int       `yaml:"cycles,omitempty"`
	CycleMode    CycleMode `yaml:"cycle_mode,omitempty"`
	StartDelay   float64   `yaml:"start_delay,omitempty"`
	EndDelay     float64   `yaml:"end_delay,omitempty"`
	UnscaledTime bool      `yaml:"unscaled_time,omitempty"`
	FixedUpdate  bool      `yaml:"fixed_update,omitempty"`
}

// NewSettings returns single-cycle settings with the given duration in seconds
// and standard curve.
func NewSettings(duration float64, e Ease) Settings {
	return Settings{Duration: duration, Easing: Standard(e), Cycles: 1}
}

// WithEasing returns a copy of s using easing.
func (s Settings) WithEasing(easing Easing) Settings {
	s.Easing = easing
	return s
}

// WithCycles returns a copy of s repeating cycles times (InfiniteCycles for
// forever) in the given mode.
func (s Settings) WithCycles(cycles int, mode CycleMode) Settings {
	s.Cycles = cycles
	s.CycleMode = mode
	return s
}

// WithDelay returns a copy of s waiting start seconds before and end seconds
// after every cycle.
func (s Settings) WithDelay(start, end float64) Settings {
	s.StartDelay = start
	s.EndDelay = end
	return s
}

// WithUnscaledTime returns a copy of s that ignores the scheduler time scale.
func (s Settings) WithUnscaledTime() Settings {
	s.UnscaledTime = true
	return s
}

// WithFixedUpdate returns a copy of s driven by Scheduler.TickFixed.
func (s Settings) WithFixedUpdate() Settings {
	s.FixedUpdate = true
	return s
}

var errInvalidDuration = errors.New("duration is invalid")

// normalize checks s and corrects values that can be fixed. Warnings describe
// every correction made; a non-nil error means s cannot be used.
func (s *Settings) normalize() (warnings []string, err error) {
	for _, f := range [...]float64{s.Duration, s.StartDelay, s.EndDelay} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %g", errInvalidDuration, f)
		}
	}
	if s.Cycles < InfiniteCycles {
		return nil, fmt.Errorf("cycles must be >= -1, was %d", s.Cycles)
	}
	if int(s.CycleMode) >= len(cycleModeNames) {
		return nil, fmt.Errorf("invalid cycle mode %d", uint8(s.CycleMode))
	}
	if s.Cycles == 0 {
		s.Cycles = 1
	}
	if s.Duration < 0 {
		warnings = append(warnings, fmt.Sprintf("negative duration %g corrected to %g", s.Duration, minDuration))
		s.Duration = minDuration
	} else if s.Duration != 0 && s.Duration < minDuration {
		s.Duration = minDuration
	}
	if s.StartDelay < 0 {
		warnings = append(warnings, fmt.Sprintf("negative start delay %g corrected to 0", s.StartDelay))
		s.StartDelay = 0
	}
	if s.EndDelay < 0 {
		warnings = append(warnings, fmt.Sprintf("negative end delay %g corrected to 0", s.EndDelay))
		s.EndDelay = 0
	}
	if s.Cycles == 1 {
		s.CycleMode = CycleRestart
	}
	return warnings, nil
}

func (s *Settings) cycleDuration() float64 {
	return s.StartDelay + s.Duration + s.EndDelay
}
