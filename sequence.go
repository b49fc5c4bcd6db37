package tween

import "math"

// Sequence composes tweens, delays, callbacks and other sequences on one
// timeline that plays as a unit. Build it before the first Tick that moves
// it; once it has started its structure is fixed.
//
//	seq := s.NewSequence(1, tween.CycleRestart, tween.EaseLinear).
//		Chain(s.Animate(sprite, posX, tween.Float(0), tween.Float(100), st)).
//		Group(s.Animate(sprite, alpha, tween.Float(1), tween.Float(0), st)).
//		ChainCallback(func() { sprite.Dispose() })
//
// Children of a sequence can't be controlled directly; pausing, stopping and
// time scaling act on the top-level sequence.
type Sequence struct {
	root Tween
}

// NewSequence creates an empty sequence repeating cycles times in the given
// mode, with ease applied to its whole timeline. CycleIncremental and
// EaseCustom are not supported on sequences and fall back to CycleRestart and
// EaseLinear. EaseDefault means EaseLinear here.
func (s *Scheduler) NewSequence(cycles int, mode CycleMode, ease Ease) Sequence {
	return s.NewSequenceWith(Settings{Cycles: cycles, CycleMode: mode, Easing: Standard(ease)})
}

// NewSequenceWith is NewSequence taking the cycles, cycle mode, ease,
// UnscaledTime and FixedUpdate fields of st. Durations and delays in st are
// ignored; a sequence lasts as long as its children.
func (s *Scheduler) NewSequenceWith(st Settings) Sequence {
	if st.CycleMode == CycleIncremental {
		s.log.Error().Msg("sequences don't support CycleIncremental, using CycleRestart")
		st.CycleMode = CycleRestart
	}
	ease := st.Easing.Ease
	switch {
	case ease == EaseCustom || st.Easing.Curve != nil || st.Easing.Parametric != ParametricNone:
		s.log.Error().Msg("sequences don't support custom easing, using EaseLinear")
		ease = EaseLinear
	case ease == EaseDefault:
		ease = EaseLinear
	}
	u := s.create(kindMainSequence, nil, Settings{
		Easing:       Standard(ease),
		Cycles:       st.Cycles,
		CycleMode:    st.CycleMode,
		UnscaledTime: st.UnscaledTime,
		FixedUpdate:  st.FixedUpdate,
	})
	if u == nil {
		return Sequence{}
	}
	u.prop = Property{Kind: PropFloat, Name: "Sequence"}
	return Sequence{root: u.handle(s)}
}

func (q Sequence) handle() Tween { return q.root }

// buildable returns the root when children may still be added.
func (q Sequence) buildable() *unit {
	r := q.root.manipulable()
	if r == nil {
		return nil
	}
	if r.elapsedTotal != 0 || r.cyclesDone != iniCyclesDone {
		q.root.s.log.Error().Str("tween", r.String()).Msg(msgSequenceStarted)
		return nil
	}
	return r
}

// Group adds a to play alongside the most recently added item, at the same
// start time.
func (q Sequence) Group(a Animation) Sequence {
	r := q.buildable()
	if r == nil {
		return q
	}
	at := 0.0
	if r.lastInserted != nil {
		at = r.lastInserted.waitDelay
	}
	return q.Insert(at, a)
}

// Chain adds a to start when everything added so far has finished.
func (q Sequence) Chain(a Animation) Sequence {
	r := q.buildable()
	if r == nil {
		return q
	}
	return q.Insert(r.cycleDuration, a)
}

// Insert adds a to start at seconds into the sequence. The sequence grows to
// fit it.
func (q Sequence) Insert(at float64, a Animation) Sequence {
	r := q.buildable()
	if r == nil {
		return q
	}
	s := q.root.s
	if math.IsNaN(at) || math.IsInf(at, 0) || at < 0 {
		s.log.Error().Float64("at", at).Str("tween", r.String()).Msg("insert time must be a finite value >= 0")
		return q
	}
	c := s.validateChild(r, a)
	if c == nil {
		return q
	}
	if c.kind == kindMainSequence {
		c.kind = kindNestedSequence
	}
	c.waitDelay = at
	r.settings.Duration = max(r.settings.Duration, c.durationWithWaitDelay())
	r.cycleDuration = r.settings.Duration
	linkChild(r, c)
	return q
}

// ChainCallback adds fn to run once everything added so far has finished.
func (q Sequence) ChainCallback(fn func()) Sequence {
	r := q.buildable()
	if r == nil {
		return q
	}
	return q.InsertCallback(r.cycleDuration, fn)
}

// InsertCallback adds fn to run at seconds into the sequence. When the
// sequence plays backwards, fn runs as playback passes that point again.
func (q Sequence) InsertCallback(at float64, fn func()) Sequence {
	r := q.buildable()
	if r == nil {
		return q
	}
	s := q.root.s
	if fn == nil {
		s.log.Error().Str("tween", r.String()).Msg("sequence callback is nil")
		return q
	}
	if math.IsNaN(at) || math.IsInf(at, 0) || at < 0 {
		s.log.Error().Float64("at", at).Str("tween", r.String()).Msg("callback time must be a finite value >= 0")
		return q
	}
	// a delay lasting until at, starting with the sequence, completes exactly
	// when playback reaches at
	d := s.Delay(at, fn)
	if !d.IsAlive() {
		return q
	}
	return q.Insert(0, d)
}

// ChainDelay appends d seconds of nothing.
func (q Sequence) ChainDelay(d float64) Sequence {
	r := q.buildable()
	if r == nil {
		return q
	}
	return q.Chain(q.root.s.Delay(d, nil))
}

// validateChild checks that a may be nested into root r and returns its unit
// reset to the state a child runs in.
func (s *Scheduler) validateChild(r *unit, a Animation) *unit {
	h := a.handle()
	if h.s != s && h.s != nil {
		s.log.Error().Str("tween", r.String()).Msg("can't add a tween from another scheduler to a sequence")
		return nil
	}
	c := h.unit()
	switch {
	case c == nil || !c.alive:
		s.log.Error().Str("tween", r.String()).Msg(msgAddDead)
		return nil
	case c == r:
		s.log.Error().Str("tween", r.String()).Msg(msgNestSelf)
		return nil
	case c.parent != nil && c.isSequenceRoot():
		s.log.Error().Str("tween", c.String()).Msg(msgNestSequenceTwice)
		return nil
	case c.parent != nil:
		s.log.Error().Str("tween", c.String()).Msg(msgNestTweenTwice)
		return nil
	case c.settings.Cycles == InfiniteCycles:
		s.log.Error().Str("tween", c.String()).Msg(msgInfiniteInSequence)
		return nil
	}
	ignored := func(what string) {
		s.log.Warn().Str("tween", c.String()).Str("setting", what).
			Msg("setting is ignored once added to a sequence; the top-level sequence controls it")
	}
	if c.paused {
		ignored("paused")
		c.paused = false
	}
	if c.timeScale != 1 {
		ignored("time scale")
		c.timeScale = 1
	}
	if c.settings.UnscaledTime {
		ignored("unscaled time")
	}
	if c.settings.FixedUpdate {
		ignored("fixed update")
	}
	return c
}

func linkChild(r, c *unit) {
	c.parent = r
	c.prevSibling = r.lastChild
	if r.lastChild != nil {
		r.lastChild.nextSibling = c
	} else {
		r.firstChild = c
	}
	r.lastChild = c
	r.lastInserted = c
}

// completeSequence plays sequence root r through to the end of its last
// cycle, firing every pending callback on the way.
func (s *Scheduler) completeSequence(r *unit) {
	if r.settings.Cycles == InfiniteCycles || r.settings.CycleMode == CycleRestart {
		s.setRemainingCycles(r, 1)
	} else {
		// Yoyo and Rewind end on the end value after an odd cycle
		left := r.settings.Cycles - r.getCyclesDone()
		n := 2
		if left%2 == 1 {
			n = 1
		}
		s.setRemainingCycles(r, n)
	}
	r.paused = false
	s.updateSequence(r, forceToEnd, false, true)
}

// IsAlive reports whether the sequence is still running or paused.
func (q Sequence) IsAlive() bool { return q.root.IsAlive() }

// ID returns the sequence's unique id.
func (q Sequence) ID() uint64 { return q.root.ID() }

func (q Sequence) String() string { return q.root.String() }

// Stop kills the sequence and everything in it without firing callbacks.
func (q Sequence) Stop() { q.root.Stop() }

// Complete plays the sequence to its end, firing every callback not yet
// fired. An infinite sequence finishes its current cycle.
func (q Sequence) Complete() { q.root.Complete() }

// SetPaused pauses or resumes the whole sequence.
func (q Sequence) SetPaused(paused bool) bool { return q.root.SetPaused(paused) }

// IsPaused reports whether the sequence is paused.
func (q Sequence) IsPaused() bool { return q.root.IsPaused() }

// SetTimeScale sets the speed multiplier of the whole sequence.
func (q Sequence) SetTimeScale(scale float64) { q.root.SetTimeScale(scale) }

// TimeScale returns the sequence's speed multiplier.
func (q Sequence) TimeScale() float64 { return q.root.TimeScale() }

// OnComplete registers fn to run when the sequence completes.
func (q Sequence) OnComplete(fn func()) Sequence {
	q.root.OnComplete(fn, true)
	return q
}

// OnUpdate registers fn to run every time the sequence advances. The Tween
// passed to fn is the sequence's own handle.
func (q Sequence) OnUpdate(fn func(t Tween)) Sequence {
	q.root.OnUpdate(fn)
	return q
}

// Done returns a channel closed once the sequence is no longer alive.
func (q Sequence) Done() <-chan struct{} { return q.root.Done() }

// Duration returns the length of one cycle of the sequence.
func (q Sequence) Duration() float64 { return q.root.Duration() }

// DurationTotal returns the length of all cycles, +Inf for infinite
// sequences.
func (q Sequence) DurationTotal() float64 { return q.root.DurationTotal() }

// ElapsedTimeTotal returns the time played across all cycles.
func (q Sequence) ElapsedTimeTotal() float64 { return q.root.ElapsedTimeTotal() }

// ElapsedTime returns the time played in the current cycle.
func (q Sequence) ElapsedTime() float64 { return q.root.ElapsedTime() }

// Progress returns the position in the current cycle from 0 to 1.
func (q Sequence) Progress() float64 { return q.root.Progress() }

// ProgressTotal returns the position across all cycles from 0 to 1.
func (q Sequence) ProgressTotal() float64 { return q.root.ProgressTotal() }

// CyclesDone returns the number of completed cycles.
func (q Sequence) CyclesDone() int { return q.root.CyclesDone() }

// CyclesTotal returns the configured number of cycles, -1 for infinite.
func (q Sequence) CyclesTotal() int { return q.root.CyclesTotal() }

// SetElapsedTimeTotal jumps to the given time, firing the callbacks passed
// on the way.
func (q Sequence) SetElapsedTimeTotal(elapsed float64) { q.root.SetElapsedTimeTotal(elapsed) }

// SetProgressTotal jumps to a fraction of DurationTotal.
func (q Sequence) SetProgressTotal(progress float64) { q.root.SetProgressTotal(progress) }

// SetRemainingCycles makes the sequence stop after n more cycles.
func (q Sequence) SetRemainingCycles(n int) { q.root.SetRemainingCycles(n) }

// SetRemainingCyclesAt makes a Yoyo or Rewind sequence stop on its end
// (stopAtEnd) or start state.
func (q Sequence) SetRemainingCyclesAt(stopAtEnd bool) { q.root.SetRemainingCyclesAt(stopAtEnd) }
