package tween

import (
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Scheduler owns a pool of tweens and sequences and advances them once per
// Tick. It is not safe for concurrent use: create, control and tick tweens
// from the goroutine that runs the host's frame loop.
type Scheduler struct {
	cfg  Config
	log  zerolog.Logger
	sink EventSink

	units    []*unit
	free     []int32
	live     [2][]int32
	capacity int

	nextID     uint64
	aliveCount int
	maxAlive   int
	depth      int
	cursor     tickCursor
	timeScale  float64
	closed     bool
}

// New creates a Scheduler. Invalid config values are replaced by their
// defaults with a warning.
func New(cfg Config) *Scheduler {
	s := &Scheduler{sink: cfg.Sink}
	if cfg.Logger != nil {
		s.log = *cfg.Logger
	} else {
		s.log = log.Logger
	}
	def := DefaultConfig()
	if cfg.Capacity < 0 {
		s.log.Warn().Int("capacity", cfg.Capacity).Msg("invalid capacity, using default")
		cfg.Capacity = def.Capacity
	}
	if cfg.DefaultEase <= EaseDefault || !cfg.DefaultEase.valid() {
		if cfg.DefaultEase != EaseDefault {
			s.log.Warn().Stringer("ease", cfg.DefaultEase).Msg("default ease must be a standard curve, using OutQuad")
		}
		cfg.DefaultEase = def.DefaultEase
	}
	if !(cfg.TimeScale >= 0) || math.IsInf(cfg.TimeScale, 0) {
		s.log.Warn().Float64("time_scale", cfg.TimeScale).Msg("invalid time scale, using 1")
		cfg.TimeScale = 1
	}
	s.cfg = cfg
	s.timeScale = cfg.TimeScale
	s.grow(cfg.Capacity)
	return s
}

// Close stops every tween without firing callbacks and rejects further use.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	for _, u := range s.units {
		if u.alive {
			s.kill(u)
		}
	}
	s.live[groupUpdate] = nil
	s.live[groupFixed] = nil
	s.closed = true
}

// Tick advances every tween registered for normal updates by dt seconds. A
// NaN or infinite dt is logged and ignored.
func (s *Scheduler) Tick(dt float64) {
	s.tick(groupUpdate, dt)
}

// TickFixed advances every tween created with Settings.FixedUpdate by dt
// seconds. Call it from the host's fixed-timestep loop.
func (s *Scheduler) TickFixed(dt float64) {
	s.tick(groupFixed, dt)
}

func (s *Scheduler) tick(group int, dt float64) {
	if s.closed {
		s.log.Error().Msg(msgClosed)
		return
	}
	if s.depth > 0 {
		s.log.Error().Msg(msgRecursiveTick)
		return
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		s.log.Error().Float64("dt", dt).Msg(msgInvalidDelta)
		return
	}
	s.depth++
	defer func() { s.depth-- }()

	live := s.live[group]
	n := len(live)
	kept := 0
	s.cursor = tickCursor{group: group, active: true}
	defer func() { s.cursor = tickCursor{} }()
	for i := 0; i < n; i++ {
		s.cursor.kept, s.cursor.next = kept, i
		idx := s.live[group][i]
		u := s.units[idx]
		if u.alive && u.parent == nil && !u.paused {
			scale := u.timeScale
			if !u.settings.UnscaledTime {
				scale *= s.timeScale
			}
			s.advance(u, u.elapsedTotal+dt*scale, true)
			if s.closed {
				return
			}
		}
		// callbacks may have moved the list to a new array
		if u.alive {
			s.live[group][kept] = idx
			kept++
		} else {
			s.release(u)
		}
	}
	// units created by callbacks during this tick start moving next tick
	live = s.live[group]
	s.live[group] = append(live[:kept], live[n:]...)
}

// tickCursor marks the part of a live list that tick has already compacted.
// While a tick runs, indices in [kept, next) are stale copies.
type tickCursor struct {
	group      int
	kept, next int
	active     bool
}

// eachLive calls fn for the first n entries of the live list of group,
// skipping the stale range of a running tick. n < 0 means the whole list.
func (s *Scheduler) eachLive(group, n int, fn func(u *unit)) {
	if n < 0 {
		n = len(s.live[group])
	}
	for i := 0; i < n && !s.closed; i++ {
		if c := s.cursor; c.active && c.group == group && i == c.kept && c.next > i {
			i = c.next
			if i >= n {
				return
			}
		}
		fn(s.units[s.live[group][i]])
	}
}

// TimeScale returns the scheduler-wide time scale.
func (s *Scheduler) TimeScale() float64 { return s.timeScale }

// SetTimeScale scales dt for every tween that does not use unscaled time.
func (s *Scheduler) SetTimeScale(scale float64) {
	if !(scale >= 0) || math.IsInf(scale, 0) {
		s.log.Error().Float64("time_scale", scale).Msg("time scale must be a finite value >= 0")
		return
	}
	s.timeScale = scale
}

// Animate tweens the property p of target from one value to another. It
// returns a dead Tween, after logging why, when settings are invalid.
func (s *Scheduler) Animate(target any, p Property, from, to Value, st Settings) Tween {
	if p.Apply == nil {
		s.log.Error().Msg("property has no Apply function")
		return Tween{}
	}
	u := s.create(kindTween, target, st)
	if u == nil {
		return Tween{}
	}
	u.prop = p
	u.start, u.end = from, to
	u.cacheDiff()
	return u.handle(s)
}

// AnimateTo tweens the property p of target from its value at the first
// update to the given end value.
func (s *Scheduler) AnimateTo(target any, p Property, to Value, st Settings) Tween {
	if p.Apply == nil || p.Read == nil {
		s.log.Error().Msg("starting from the current value needs a property with Apply and Read")
		return Tween{}
	}
	u := s.create(kindTween, target, st)
	if u == nil {
		return Tween{}
	}
	u.prop = p
	u.end = to
	u.startFromCurrent = true
	return u.handle(s)
}

// Custom calls fn with a value tweened from one number to another.
func (s *Scheduler) Custom(from, to float64, st Settings, fn func(v float64)) Tween {
	if fn == nil {
		s.log.Error().Msg("custom tween has no callback")
		return Tween{}
	}
	return s.Animate(nil, Property{
		Kind:  PropFloat,
		Name:  "Custom",
		Apply: func(_ any, v Value) { fn(v.X) },
	}, Float(from), Float(to), st)
}

// Delay waits for d seconds and then calls fn, which may be nil.
func (s *Scheduler) Delay(d float64, fn func()) Tween {
	return s.DelayOn(nil, d, fn, true)
}

// DelayOn is Delay bound to target: when target is Disposable and disposed by
// the time the delay ends, fn is skipped (with a warning unless
// warnIfTargetDestroyed is false).
func (s *Scheduler) DelayOn(target any, d float64, fn func(), warnIfTargetDestroyed bool) Tween {
	u := s.create(kindDelay, target, Settings{Duration: d, Easing: Standard(EaseLinear), Cycles: 1})
	if u == nil {
		return Tween{}
	}
	u.onComplete = fn
	u.warnIgnoredOnComplete = warnIfTargetDestroyed
	return u.handle(s)
}

// TweenTimeScale animates the time scale of another tween or sequence. It
// stops by itself when a is no longer alive.
func (s *Scheduler) TweenTimeScale(a Animation, to float64, st Settings) Tween {
	h := a.handle()
	tgt := h.manipulable()
	if tgt == nil {
		return Tween{}
	}
	if to < 0 {
		s.log.Error().Float64("time_scale", to).Msg("time scale must be >= 0, using 0")
		to = 0
	}
	u := s.create(kindTimeScale, nil, st)
	if u == nil {
		return Tween{}
	}
	u.prop = Property{Kind: PropFloat, Name: "TimeScale"}
	u.tsTarget = h
	u.start, u.end = Float(tgt.timeScale), Float(to)
	u.cacheDiff()
	return u.handle(s)
}

// create validates st and sets up a fresh unit of the given kind.
func (s *Scheduler) create(kind unitKind, target any, st Settings) *unit {
	if s.closed {
		s.log.Error().Msg(msgClosed)
		return nil
	}
	warnings, err := st.normalize()
	if err != nil {
		s.log.Error().Err(err).Msg("tween was not created")
		return nil
	}
	for _, w := range warnings {
		s.log.Warn().Msg(w)
	}
	easing, warn, err := st.Easing.resolve(s.cfg.DefaultEase, s.cfg.ValidateCustomCurves)
	if err != nil {
		s.log.Error().Err(err).Msg("tween was not created")
		return nil
	}
	if warn != "" {
		s.log.Warn().Msg(warn)
	}
	st.Easing = easing

	group := groupUpdate
	if st.FixedUpdate {
		group = groupFixed
	}
	u := s.acquire(group)
	u.kind = kind
	u.target = target
	u.settings = st
	u.cycleDuration = st.cycleDuration()
	u.eased = -math.MaxFloat64
	u.cyclesDone = iniCyclesDone
	u.state = stateBefore
	u.timeScale = 1
	u.warnIgnoredOnComplete = true
	return u
}

// lookup resolves a handle, returning nil when it is stale.
func (s *Scheduler) lookup(idx int32, id uint64) *unit {
	if id == 0 || int(idx) >= len(s.units) {
		return nil
	}
	u := s.units[idx]
	if u.id != id {
		return nil
	}
	return u
}

// StopAll stops every tween and top-level sequence, or only those animating
// target when it is non-nil, without firing callbacks. Tweens nested in a
// sequence are left to their sequence. It returns how many were stopped.
func (s *Scheduler) StopAll(target any) int {
	return s.processAll(target, func(u *unit) bool {
		if !u.canManipulate() {
			return false
		}
		s.stop(u)
		return true
	})
}

// CompleteAll completes every tween and top-level sequence, or only those
// animating target when it is non-nil. It returns how many were completed.
func (s *Scheduler) CompleteAll(target any) int {
	return s.processAll(target, func(u *unit) bool {
		if !u.canManipulate() {
			return false
		}
		s.complete(u)
		return true
	})
}

// SetPausedAll pauses or resumes every tween and top-level sequence, or only
// those animating target when it is non-nil. It returns how many changed
// state.
func (s *Scheduler) SetPausedAll(paused bool, target any) int {
	return s.processAll(target, func(u *unit) bool {
		if !u.canManipulate() || u.paused == paused {
			return false
		}
		u.paused = paused
		return true
	})
}

// Count returns the number of alive tweens and sequences, or only those
// animating target when it is non-nil.
func (s *Scheduler) Count(target any) int {
	if target == nil {
		return s.aliveCount
	}
	return s.processAll(target, func(*unit) bool { return true })
}

func (s *Scheduler) processAll(target any, fn func(u *unit) bool) int {
	count := 0
	for g := range s.live {
		s.eachLive(g, len(s.live[g]), func(u *unit) {
			if !u.alive || (target != nil && !sameTarget(u.target, target)) {
				return
			}
			if fn(u) {
				count++
			}
		})
	}
	return count
}

func (s *Scheduler) stop(u *unit) {
	if u.kind == kindMainSequence {
		s.releaseTree(u, false)
	} else {
		s.kill(u)
	}
	s.emit(EventStopped, u)
}

func (s *Scheduler) complete(u *unit) {
	if u.kind == kindMainSequence {
		s.completeSequence(u)
		return
	}
	s.forceComplete(u)
}

// sameTarget compares targets without panicking on uncomparable types.
func sameTarget(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
