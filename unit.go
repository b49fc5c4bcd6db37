package tween

import (
	"fmt"
	"strings"
)

type unitKind uint8

const (
	kindNone unitKind = iota
	kindTween
	kindDelay
	kindTimeScale
	kindMainSequence
	kindNestedSequence
)

// unit is one pooled animation slot. Tween and Sequence handles address it by
// (idx, id); a recycled slot gets a new id so old handles go stale.
//
// Sequence topology: a sequence root owns a doubly linked list of direct
// children (firstChild..lastChild via prevSibling/nextSibling) in insertion
// order. Every child points back at its root through parent. A nested
// sequence root is itself a child of its parent sequence.
type unit struct {
	idx      int32
	id       uint64
	kind     unitKind
	alive    bool
	paused   bool
	updating bool

	stoppedEmergently bool

	target   any
	prop     Property
	tsTarget Tween

	start, end, diff Value
	startFromCurrent bool

	settings      Settings
	cycleDuration float64
	waitDelay     float64
	elapsedTotal  float64
	eased         float64
	cyclesDone    int
	state         cycleState
	timeScale     float64

	onComplete            func()
	warnIgnoredOnComplete bool
	onUpdate              func(Tween)
	done                  chan struct{}

	parent       *unit
	firstChild   *unit
	lastChild    *unit
	lastInserted *unit
	prevSibling  *unit
	nextSibling  *unit
}

func (u *unit) handle(s *Scheduler) Tween {
	return Tween{s: s, idx: u.idx, id: u.id}
}

func (u *unit) isSequenceRoot() bool {
	return u.kind == kindMainSequence || u.kind == kindNestedSequence
}

// mainRoot returns the top-level sequence u belongs to, or nil when u is a
// standalone tween.
func (u *unit) mainRoot() *unit {
	if u.parent == nil && u.kind != kindMainSequence {
		return nil
	}
	r := u
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// canManipulate reports whether u may be controlled directly. Children of a
// sequence are driven by their root only.
func (u *unit) canManipulate() bool {
	return u.parent == nil
}

func (u *unit) timing() cycleTiming {
	return cycleTiming{
		duration:      u.settings.Duration,
		startDelay:    u.settings.StartDelay,
		cycleDuration: u.cycleDuration,
		cycles:        u.settings.Cycles,
		waitDelay:     u.waitDelay,
	}
}

func (u *unit) easedFactor(t float64) float64 {
	return EffectiveFactor(t, u.cyclesDone, u.settings.Cycles, u.settings.CycleMode, u.settings.Easing.Evaluate)
}

func (u *unit) isDone(cyclesDiff int) bool {
	if u.timeScale >= 0 {
		return cyclesDiff > 0 && u.cyclesDone == u.settings.Cycles
	}
	return cyclesDiff < 0 && u.cyclesDone == iniCyclesDone
}

func (u *unit) getCyclesDone() int {
	if u.cyclesDone == iniCyclesDone {
		return 0
	}
	return u.cyclesDone
}

func (u *unit) durationTotal() float64 {
	if u.settings.Cycles == InfiniteCycles {
		return posInf
	}
	return u.cycleDuration * float64(u.settings.Cycles)
}

func (u *unit) durationWithWaitDelay() float64 {
	return u.waitDelay + u.cycleDuration*float64(u.settings.Cycles)
}

func (u *unit) elapsedTotalClamped() float64 {
	total := u.durationTotal()
	switch {
	case u.elapsedTotal == forceToEnd:
		return total
	case u.elapsedTotal < 0:
		return 0
	case u.elapsedTotal > total:
		return total
	}
	return u.elapsedTotal
}

func (u *unit) cacheDiff() {
	if u.prop.Kind == PropQuat {
		u.start = u.start.normalized()
		u.end = u.end.normalized()
		return
	}
	u.diff = u.end.sub(u.start)
}

func (u *unit) value() Value {
	return lerpValue(u.prop.Kind, u.start, u.end, u.diff, u.eased)
}

func (u *unit) String() string {
	var b strings.Builder
	if !u.alive {
		b.WriteString(" - ")
	}
	if u.target != nil {
		fmt.Fprintf(&b, "%T / ", u.target)
	}
	d := u.settings.Duration
	switch u.kind {
	case kindDelay:
		if d == 0 && u.onComplete != nil {
			b.WriteString("Callback")
		} else {
			fmt.Fprintf(&b, "Delay / duration %g", d)
		}
	case kindMainSequence:
		fmt.Fprintf(&b, "Sequence %d / duration %g", u.id, d)
	case kindNestedSequence:
		fmt.Fprintf(&b, "Sequence %d (nested) / duration %g", u.id, d)
	case kindTimeScale:
		fmt.Fprintf(&b, "TimeScale / duration %g", d)
	default:
		name := u.prop.Name
		if name == "" {
			name = u.prop.Kind.String()
		}
		fmt.Fprintf(&b, "%s / duration %g", name, d)
	}
	fmt.Fprintf(&b, " / id %d", u.id)
	if u.parent != nil {
		fmt.Fprintf(&b, " / sequence %d", u.parent.id)
	}
	return b.String()
}

// advance moves a standalone unit or a main sequence to elapsed. Children of
// a sequence are only advanced through their root.
func (s *Scheduler) advance(u *unit, elapsed float64, earlyExitIfPaused bool) {
	if u.updating {
		s.log.Error().Str("tween", u.String()).Msg(msgRecursiveCall)
		return
	}
	u.updating = true
	switch {
	case u.kind == kindMainSequence:
		s.updateSequence(u, elapsed, false, earlyExitIfPaused)
	case u.parent == nil:
		cyclesDiff := s.setElapsed(u, elapsed)
		if !u.stoppedEmergently && u.alive && u.isDone(cyclesDiff) {
			if !u.paused {
				s.kill(u)
			}
			s.reportComplete(u)
		}
	}
	u.updating = false
}

// setElapsed updates u's own timeline and reports the new value when it
// changed. It returns how many cycle boundaries were crossed (negative when
// moving backwards).
func (s *Scheduler) setElapsed(u *unit, elapsed float64) int {
	u.elapsedTotal = elapsed
	t, cyclesDiff, state := u.timing().resolveCycle(elapsed, u.cyclesDone)
	u.cyclesDone += cyclesDiff
	if state == stateRunning || u.state != state {
		if targetDisposed(u.target) {
			s.log.Debug().Str("tween", u.String()).Msg("target disposed, stopping tween")
			s.emergencyStop(u, true)
			return cyclesDiff
		}
		eased := u.easedFactor(t)
		u.state = state
		s.reportValue(u, eased)
	}
	return cyclesDiff
}

// updateSequence drives sequence root u to elapsed and fans the resulting
// position on its timeline out to the children. Every crossed cycle boundary
// first forces all children to the boundary so per-cycle callbacks fire in
// order and no child skips its end value.
func (s *Scheduler) updateSequence(u *unit, elapsed float64, isRestart, earlyExitIfPaused bool) {
	prevEased := u.eased
	cyclesDiff := s.setElapsed(u, elapsed)
	if !u.alive {
		return
	}
	restartToBeginning := isRestart && cyclesDiff < 0
	if cyclesDiff != 0 && !restartToBeginning {
		if isRestart {
			cyclesDiff = 1
		}
		crossed := cyclesDiff
		delta := 1
		boundary := 1.0
		if cyclesDiff < 0 {
			crossed, delta, boundary = -cyclesDiff, -1, 0
		}
		u.cyclesDone -= cyclesDiff
		for range crossed {
			if u.cyclesDone == u.settings.Cycles || u.cyclesDone == iniCyclesDone {
				// nothing to finish when leaving the last cycle backwards or
				// the pre-start state forwards
				u.cyclesDone += delta
				continue
			}
			forward := u.easedFactor(boundary) > 0.5
			if !s.updateChildren(u, boundaryElapsed(forward), forward, isRestart, earlyExitIfPaused) {
				return
			}
			u.cyclesDone += delta
			if u.settings.CycleMode == CycleRestart && u.cyclesDone != u.settings.Cycles && u.cyclesDone != iniCyclesDone {
				restartAt := boundaryElapsed(!forward)
				prevEased = restartAt
				if !s.updateChildren(u, restartAt, !forward, true, earlyExitIfPaused) {
					return
				}
			}
		}
		if u.isDone(cyclesDiff) {
			if u.kind == kindMainSequence && !u.paused {
				s.releaseTree(u, false)
			}
			s.reportComplete(u)
			return
		}
	}
	u.eased = clamp01(u.eased)
	forward := u.eased > prevEased
	s.updateChildren(u, u.eased*u.cycleDuration, forward, isRestart, earlyExitIfPaused)
}

func boundaryElapsed(forward bool) float64 {
	if forward {
		return forceToEnd
	}
	return forceToStart
}

// updateChildren sends elapsed to every direct child of u in insertion order,
// or in reverse when moving backwards. It returns false when the sequence was
// stopped or paused by a callback and the update must not continue.
func (s *Scheduler) updateChildren(u *unit, elapsed float64, forward, isRestart, earlyExitIfPaused bool) bool {
	c := u.firstChild
	if !forward {
		c = u.lastChild
	}
	for c != nil {
		s.updateChild(c, elapsed, isRestart, earlyExitIfPaused)
		if !u.alive {
			return false
		}
		if earlyExitIfPaused {
			if root := u.mainRoot(); root != nil && root.paused {
				return false
			}
		}
		if forward {
			c = c.nextSibling
		} else {
			c = c.prevSibling
		}
	}
	return true
}

func (s *Scheduler) updateChild(c *unit, elapsed float64, isRestart, earlyExitIfPaused bool) {
	if c.isSequenceRoot() {
		s.updateSequence(c, elapsed, isRestart, earlyExitIfPaused)
		return
	}
	cyclesDiff := s.setElapsed(c, elapsed)
	if !c.stoppedEmergently && c.alive && c.isDone(cyclesDiff) {
		s.reportComplete(c)
	}
}

// reportValue stores the new eased factor and writes the interpolated value
// to the target.
func (s *Scheduler) reportValue(u *unit, eased float64) {
	if u.startFromCurrent {
		u.startFromCurrent = false
		var cur Value
		if err := protect("property read", func() { cur = u.prop.Read(u.target) }); err != nil {
			s.callbackFault(u, err)
			return
		}
		u.start = cur
		if u.start == u.end && s.cfg.WarnEndValueEqualsStart {
			s.log.Warn().Str("tween", u.String()).Interface("value", u.end).
				Msg("end value equals the current value; disable with warn_end_value_equals_start: false")
		}
		u.cacheDiff()
	}
	u.eased = eased
	switch u.kind {
	case kindTween:
		v := u.value()
		if err := protect("property apply", func() { u.prop.Apply(u.target, v) }); err != nil {
			s.callbackFault(u, err)
			return
		}
	case kindTimeScale:
		tgt := u.tsTarget.unit()
		if tgt == nil || !tgt.alive {
			s.emergencyStop(u, false)
			return
		}
		tgt.timeScale = u.start.X + u.diff.X*eased
	}
	if u.stoppedEmergently || !u.alive || u.onUpdate == nil {
		return
	}
	if err := protect("OnUpdate", func() { u.onUpdate(u.handle(s)) }); err != nil {
		s.callbackFault(u, err)
	}
}

// reportComplete fires u's completion callback. A panic inside it is logged;
// if u is part of a sequence the sequence carries on.
func (s *Scheduler) reportComplete(u *unit) {
	if fn := u.onComplete; fn != nil {
		if targetDisposed(u.target) {
			s.warnOnCompleteIgnored(u, true)
		} else if err := protect("OnComplete", fn); err != nil {
			s.log.Error().Err(err).Str("tween", u.String()).Msg("onComplete callback panicked")
		}
	}
	if u.parent == nil {
		s.emit(EventCompleted, u)
	}
}

func (s *Scheduler) callbackFault(u *unit, err error) {
	s.log.Error().Err(err).Str("tween", u.String()).Msg("callback panicked, stopping tween")
	s.emergencyStop(u, false)
}

// emergencyStop kills u without completing it. Inside a sequence the whole
// top-level sequence goes down with it.
func (s *Scheduler) emergencyStop(u *unit, targetGone bool) {
	if root := u.mainRoot(); root != nil {
		if root.alive {
			s.releaseTree(root, true)
			s.emit(EventAborted, root)
		}
	} else if u.alive {
		s.kill(u)
		s.emit(EventAborted, u)
	}
	u.stoppedEmergently = true
	s.warnOnCompleteIgnored(u, targetGone)
}

func (s *Scheduler) warnOnCompleteIgnored(u *unit, targetGone bool) {
	if u.onComplete == nil {
		return
	}
	u.onComplete = nil
	if !u.warnIgnoredOnComplete {
		return
	}
	ev := s.log.Warn().Str("tween", u.String()).Bool("target_disposed", targetGone)
	if targetGone {
		ev.Msg(msgOnCompleteIgnored + " Pass warnIfTargetDestroyed=false to OnComplete to silence this for cosmetic callbacks.")
		return
	}
	ev.Msg(msgOnCompleteIgnored)
}

// releaseTree kills sequence root u and everything below it and unlinks the
// topology. With warnIgnored set, pending completion callbacks are dropped
// with a warning.
func (s *Scheduler) releaseTree(u *unit, warnIgnored bool) {
	for c := u.firstChild; c != nil; {
		next := c.nextSibling
		s.releaseTree(c, warnIgnored)
		c = next
	}
	if warnIgnored {
		s.warnOnCompleteIgnored(u, false)
	}
	u.parent, u.prevSibling, u.nextSibling = nil, nil, nil
	u.firstChild, u.lastChild, u.lastInserted = nil, nil, nil
	if u.alive {
		s.kill(u)
	}
}

// forceComplete drives a standalone unit to its end value and fires its
// completion callback. An infinite unit completes the cycle it is in.
func (s *Scheduler) forceComplete(u *unit) {
	s.kill(u)
	if targetDisposed(u.target) {
		s.warnOnCompleteIgnored(u, true)
		return
	}
	if u.settings.Cycles == InfiniteCycles {
		u.settings.Cycles = u.getCyclesDone() + 1
	}
	u.cyclesDone = u.settings.Cycles
	u.state = stateAfter
	s.reportValue(u, u.easedFactor(1))
	if u.stoppedEmergently {
		return
	}
	s.reportComplete(u)
}

func (s *Scheduler) kill(u *unit) {
	u.alive = false
	s.aliveCount--
	if u.done != nil {
		close(u.done)
	}
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
