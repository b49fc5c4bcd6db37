package tween

import (
	"fmt"
	"math"
)

// CycleMode controls what happens when a tween with more than one cycle
// starts its next cycle.
type CycleMode uint8

const (
	CycleRestart     CycleMode = iota // jump back to the start value
	CycleYoyo                         // play back to the start, mirroring the eased output
	CycleIncremental                  // keep going from the end value, each cycle adding end-start
	CycleRewind                       // play back to the start, mirroring the time axis
)

var cycleModeNames = [...]string{"Restart", "Yoyo", "Incremental", "Rewind"}

func (m CycleMode) String() string {
	if int(m) < len(cycleModeNames) {
		return cycleModeNames[m]
	}
	return fmt.Sprintf("CycleMode(%d)", uint8(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m CycleMode) MarshalText() ([]byte, error) {
	if int(m) >= len(cycleModeNames) {
		return nil, fmt.Errorf("tween: invalid cycle mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *CycleMode) UnmarshalText(text []byte) error {
	for i, name := range cycleModeNames {
		if name == string(text) {
			*m = CycleMode(i)
			return nil
		}
	}
	return fmt.Errorf("tween: unknown cycle mode %q", text)
}

// InfiniteCycles repeats a tween until it is stopped.
const InfiniteCycles = -1

// iniCyclesDone is the cycle counter of a tween that has not started yet.
const iniCyclesDone = -1

// Sentinel elapsed times that drive a unit straight to its end or its start,
// whatever its delays and cycle length.
const (
	forceToEnd   = math.MaxFloat64
	forceToStart = -math.MaxFloat64
)

type cycleState uint8

const (
	stateBefore cycleState = iota
	stateRunning
	stateAfter
)

// EffectiveFactor turns raw progress t within the current cycle into the
// eased factor used to blend start and end values, given how many cycles are
// done and the total (-1 for infinite). Once cyclesDone reaches cyclesTotal
// the terminal value of the mode is returned regardless of t.
func EffectiveFactor(t float64, cyclesDone, cyclesTotal int, mode CycleMode, eval func(float64) float64) float64 {
	if cyclesDone == cyclesTotal {
		switch mode {
		case CycleYoyo, CycleRewind:
			return eval(float64(cyclesTotal % 2))
		case CycleIncremental:
			return float64(cyclesTotal)
		default:
			return eval(1)
		}
	}
	switch mode {
	case CycleRestart:
		return eval(t)
	case CycleIncremental:
		return eval(t) + float64(cyclesDone)
	}
	if cyclesDone%2 == 0 {
		return eval(t)
	}
	if mode == CycleYoyo {
		return 1 - eval(t)
	}
	return eval(1 - t)
}

// cycleTiming is the part of a unit that decides where on its timeline an
// elapsed time falls.
type cycleTiming struct {
	duration      float64
	startDelay    float64
	cycleDuration float64
	cycles        int
	waitDelay     float64
}

// resolveCycle converts elapsed into raw progress t within the current
// cycle, the change to the cycle counter and the resulting state. The timeline
// of one cycle is: startDelay, duration, endDelay.
func (c cycleTiming) resolveCycle(elapsed float64, cyclesDone int) (t float64, cyclesDiff int, state cycleState) {
	if elapsed == forceToEnd {
		return 1, c.cycles - cyclesDone, stateAfter
	}
	elapsed -= c.waitDelay
	if elapsed < 0 {
		return 0, iniCyclesDone - cyclesDone, stateBefore
	}
	if c.duration == 0 {
		if c.cycles == InfiniteCycles {
			if cyclesDone == iniCyclesDone {
				return 1, 2, stateRunning
			}
			return 1, 1, stateRunning
		}
		if elapsed == 0 {
			return 0, iniCyclesDone - cyclesDone, stateBefore
		}
		return 1, c.cycles - cyclesDone, stateAfter
	}
	q := elapsed / c.cycleDuration
	var newCyclesDone int
	switch {
	case c.cycles != InfiniteCycles && q >= float64(c.cycles):
		newCyclesDone = c.cycles
	case q >= math.MaxInt32:
		newCyclesDone = math.MaxInt32
	default:
		newCyclesDone = int(q)
	}
	cyclesDiff = newCyclesDone - cyclesDone
	if c.cycles != InfiniteCycles && newCyclesDone == c.cycles {
		return 1, cyclesDiff, stateAfter
	}
	inCycle := elapsed - c.cycleDuration*float64(newCyclesDone) - c.startDelay
	if inCycle < 0 {
		return 0, cyclesDiff, stateBefore
	}
	t = inCycle / c.duration
	if t > 1 {
		return 1, cyclesDiff, stateAfter
	}
	return t, cyclesDiff, stateRunning
}
