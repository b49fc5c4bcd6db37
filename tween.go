package tween

import "math"

// Animation is a Tween or a Sequence.
type Animation interface {
	IsAlive() bool
	Stop()
	Complete()
	handle() Tween
}

// Tween is a handle to a pooled animation. Handles are small values; copy them
// freely. Once the animation ends its slot is recycled and every handle to it
// reports IsAlive false. The zero Tween is never alive.
type Tween struct {
	s   *Scheduler
	idx int32
	id  uint64
}

var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func (t Tween) handle() Tween { return t }

func (t Tween) unit() *unit {
	if t.s == nil {
		return nil
	}
	return t.s.lookup(t.idx, t.id)
}

func (t Tween) alive() *unit {
	u := t.unit()
	if u == nil || !u.alive {
		return nil
	}
	return u
}

// manipulable returns the unit when it may be controlled directly, logging
// why not otherwise.
func (t Tween) manipulable() *unit {
	u := t.unit()
	if u == nil || !u.alive {
		if t.s != nil {
			t.s.log.Error().Msg(msgNotAlive)
		}
		return nil
	}
	if !u.canManipulate() {
		t.s.log.Error().Str("tween", u.String()).Msg(msgCantManipulate)
		return nil
	}
	return u
}

// IsAlive reports whether the tween is still running or paused.
func (t Tween) IsAlive() bool {
	return t.alive() != nil
}

// ID returns the tween's unique id, or 0 for the zero Tween.
func (t Tween) ID() uint64 { return t.id }

// String describes the tween for logs, e.g. "*game.Sprite / Vec2 / duration 1 / id 7".
func (t Tween) String() string {
	if u := t.unit(); u != nil {
		return u.String()
	}
	return "dead tween"
}

// Target returns what the tween animates.
func (t Tween) Target() any {
	if u := t.alive(); u != nil {
		return u.target
	}
	return nil
}

// Value returns the last value written to the target.
func (t Tween) Value() Value {
	if u := t.alive(); u != nil && u.eased != -math.MaxFloat64 {
		return u.value()
	}
	return Value{}
}

// Stop kills the tween without completing it. Stopping a dead tween does
// nothing.
func (t Tween) Stop() {
	u := t.alive()
	if u == nil {
		return
	}
	if !u.canManipulate() {
		t.s.log.Error().Str("tween", u.String()).Msg(msgCantManipulate)
		return
	}
	t.s.stop(u)
}

// Complete jumps to the end value and fires onComplete. An infinite tween
// finishes its current cycle. Completing a dead tween does nothing.
func (t Tween) Complete() {
	u := t.alive()
	if u == nil {
		return
	}
	if !u.canManipulate() {
		t.s.log.Error().Str("tween", u.String()).Msg(msgCantManipulate)
		return
	}
	t.s.complete(u)
}

// SetPaused pauses or resumes the tween and reports whether that changed
// anything. A paused tween keeps its pool slot and stays alive.
func (t Tween) SetPaused(paused bool) bool {
	u := t.manipulable()
	if u == nil || u.paused == paused {
		return false
	}
	u.paused = paused
	return true
}

// IsPaused reports whether the tween is paused.
func (t Tween) IsPaused() bool {
	u := t.alive()
	return u != nil && u.paused
}

// SetTimeScale sets the speed multiplier of this tween. Negative values play
// it backwards.
func (t Tween) SetTimeScale(scale float64) {
	u := t.manipulable()
	if u == nil {
		return
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		t.s.log.Error().Float64("time_scale", scale).Msg("time scale must be finite")
		return
	}
	u.timeScale = scale
}

// TimeScale returns the tween's own speed multiplier.
func (t Tween) TimeScale() float64 {
	if u := t.alive(); u != nil {
		return u.timeScale
	}
	return 1
}

// OnComplete registers fn to run when the tween completes. Only one callback
// may be registered. When the target is Disposable and disposed at that
// point, fn is skipped with a warning unless warnIfTargetDestroyed is false.
func (t Tween) OnComplete(fn func(), warnIfTargetDestroyed bool) Tween {
	u := t.alive()
	switch {
	case u == nil:
		if t.s != nil {
			t.s.log.Error().Msg(msgNotAlive)
		}
	case fn == nil:
		t.s.log.Error().Str("tween", u.String()).Msg("onComplete callback is nil")
	case u.onComplete != nil:
		t.s.log.Error().Str("tween", u.String()).Msg(msgOnCompleteTwice)
	default:
		u.onComplete = fn
		u.warnIgnoredOnComplete = warnIfTargetDestroyed
	}
	return t
}

// OnUpdate registers fn to run after every value change.
func (t Tween) OnUpdate(fn func(t Tween)) Tween {
	u := t.alive()
	switch {
	case u == nil:
		if t.s != nil {
			t.s.log.Error().Msg(msgNotAlive)
		}
	case fn == nil:
		t.s.log.Error().Str("tween", u.String()).Msg("onUpdate callback is nil")
	case u.onUpdate != nil:
		t.s.log.Error().Str("tween", u.String()).Msg(msgOnUpdateTwice)
	default:
		u.onUpdate = fn
	}
	return t
}

// Done returns a channel closed once the tween is no longer alive, however it
// ended. For a dead tween the channel is already closed.
func (t Tween) Done() <-chan struct{} {
	u := t.alive()
	if u == nil {
		return closedDone
	}
	if u.done == nil {
		u.done = make(chan struct{})
	}
	return u.done
}

// Duration returns the length of one cycle including start and end delays.
func (t Tween) Duration() float64 {
	if u := t.alive(); u != nil {
		return u.cycleDuration
	}
	return 0
}

// DurationTotal returns the length of all cycles, +Inf for infinite tweens.
func (t Tween) DurationTotal() float64 {
	if u := t.alive(); u != nil {
		return u.durationTotal()
	}
	return 0
}

// ElapsedTimeTotal returns the time played across all cycles.
func (t Tween) ElapsedTimeTotal() float64 {
	if u := t.alive(); u != nil {
		return u.elapsedTotalClamped()
	}
	return 0
}

// ElapsedTime returns the time played in the current cycle.
func (t Tween) ElapsedTime() float64 {
	u := t.alive()
	if u == nil {
		return 0
	}
	if u.cyclesDone == u.settings.Cycles {
		return u.cycleDuration
	}
	e := u.elapsedTotalClamped() - u.cycleDuration*float64(u.getCyclesDone())
	return min(max(e, 0), u.cycleDuration)
}

// Progress returns ElapsedTime as a fraction of Duration.
func (t Tween) Progress() float64 {
	u := t.alive()
	if u == nil || u.cycleDuration == 0 {
		return 0
	}
	return clamp01(t.ElapsedTime() / u.cycleDuration)
}

// ProgressTotal returns ElapsedTimeTotal as a fraction of DurationTotal, 0 for
// infinite tweens.
func (t Tween) ProgressTotal() float64 {
	u := t.alive()
	if u == nil {
		return 0
	}
	total := u.durationTotal()
	if total == 0 || total == posInf {
		return 0
	}
	return clamp01(u.elapsedTotalClamped() / total)
}

// CyclesDone returns the number of completed cycles.
func (t Tween) CyclesDone() int {
	if u := t.alive(); u != nil {
		return u.getCyclesDone()
	}
	return 0
}

// CyclesTotal returns the configured number of cycles, -1 for infinite.
func (t Tween) CyclesTotal() int {
	if u := t.alive(); u != nil {
		return u.settings.Cycles
	}
	return 0
}

// SetElapsedTimeTotal jumps to the given time on the tween's timeline, firing
// the same callbacks as playing there would. It works while paused.
func (t Tween) SetElapsedTimeTotal(elapsed float64) {
	u := t.manipulable()
	if u == nil {
		return
	}
	if math.IsNaN(elapsed) {
		t.s.log.Error().Msg("elapsed time is NaN")
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if total := u.durationTotal(); elapsed > total {
		elapsed = total
	}
	t.s.advance(u, elapsed, false)
}

// SetElapsedTime jumps within the current cycle.
func (t Tween) SetElapsedTime(elapsed float64) {
	u := t.manipulable()
	if u == nil {
		return
	}
	elapsed = min(max(elapsed, 0), u.cycleDuration)
	t.SetElapsedTimeTotal(u.cycleDuration*float64(u.getCyclesDone()) + elapsed)
}

// SetProgressTotal jumps to a fraction of DurationTotal.
func (t Tween) SetProgressTotal(progress float64) {
	u := t.manipulable()
	if u == nil {
		return
	}
	if u.settings.Cycles == InfiniteCycles {
		t.s.log.Error().Str("tween", u.String()).Msg("total progress of an infinite tween is undefined")
		return
	}
	t.SetElapsedTimeTotal(clamp01(progress) * u.durationTotal())
}

// SetRemainingCycles makes the tween stop after n more cycles, counting the
// current one, or repeat forever for InfiniteCycles.
func (t Tween) SetRemainingCycles(n int) {
	if u := t.manipulable(); u != nil {
		t.s.setRemainingCycles(u, n)
	}
}

// SetRemainingCyclesAt makes a Yoyo or Rewind tween stop at the nearest cycle
// boundary that leaves it on the end value (stopAtEnd) or the start value.
func (t Tween) SetRemainingCyclesAt(stopAtEnd bool) {
	if u := t.manipulable(); u != nil {
		t.s.setRemainingCyclesAt(u, stopAtEnd)
	}
}

func (s *Scheduler) setRemainingCycles(u *unit, n int) {
	if n < 1 && n != InfiniteCycles {
		s.log.Error().Int("cycles", n).Str("tween", u.String()).Msg("remaining cycles must be >= 1 or -1")
		return
	}
	if u.timeScale < 0 {
		s.log.Warn().Str("tween", u.String()).Msg("setting remaining cycles while playing backwards has no effect on where the tween stops")
	}
	if n == InfiniteCycles {
		u.settings.Cycles = InfiniteCycles
		return
	}
	u.settings.Cycles = u.getCyclesDone() + n
}

func (s *Scheduler) setRemainingCyclesAt(u *unit, stopAtEnd bool) {
	if m := u.settings.CycleMode; m == CycleRestart || m == CycleIncremental {
		s.log.Warn().Stringer("cycle_mode", m).Str("tween", u.String()).
			Msg("every cycle of this mode ends on the end value")
	}
	n := 2
	if stopAtEnd == (u.getCyclesDone()%2 == 0) {
		n = 1
	}
	s.setRemainingCycles(u, n)
}
