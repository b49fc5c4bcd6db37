// Package tween is a headless tweening engine: eased interpolation of values
// over time, repeat cycles, sequences of tweens on a shared timeline, and a
// pooled scheduler that advances them once per frame.
//
// It renders nothing and owns no clock. The host calls [Scheduler.Tick] with
// the frame delta; the ebitenhost package does that for [Ebitengine] games.
//
// # Quick start
//
//	s := tween.New(tween.DefaultConfig())
//	defer s.Close()
//
//	var x float64
//	t := s.Animate(nil, tween.FloatField(&x), tween.Float(0), tween.Float(100),
//		tween.NewSettings(0.5, tween.EaseOutQuad))
//	t.OnComplete(func() { fmt.Println("arrived") }, true)
//
//	for t.IsAlive() {
//		s.Tick(1.0 / 60)
//	}
//
// # Targets and properties
//
// A tween writes to a target through a [Property]: a [PropKind] plus Apply and
// Read functions. Helpers such as [FloatField], [Vec2Field], [ColorField] and
// [QuatField] cover plain fields. Quaternions interpolate along the shortest
// arc.
//
// Targets implementing [Disposable] are checked before every write. A tween
// whose target is disposed stops at once; its completion callback is skipped
// with a warning.
//
// # Easing
//
// [Settings] carries an [Easing]: one of the standard curves (via [gween]), a
// keyframed [Curve], or a parametric [Overshoot], [Elastic] or [Bounce] whose
// strength is adjustable.
//
// # Cycles
//
// A tween repeats [Settings.Cycles] times, or forever with [InfiniteCycles].
// [CycleRestart] jumps back to the start, [CycleYoyo] plays the eased curve
// backwards, [CycleRewind] mirrors time so the curve shape is kept, and
// [CycleIncremental] continues from where the previous cycle ended.
//
// # Shakes
//
// [Scheduler.Shake] and [Scheduler.Punch] oscillate a property around its
// current value, fading out when [ShakeSettings.Falloff] is set, and leave it
// where it started.
//
// # Sequences
//
// A [Sequence] places tweens, delays, callbacks and nested sequences on one
// timeline with [Sequence.Chain], [Sequence.Group] and [Sequence.Insert].
// Children are driven by the top-level sequence only.
//
// # Handles
//
// [Tween] and [Sequence] are small value handles to pooled slots. When an
// animation ends its slot is recycled and old handles report IsAlive false,
// so keeping a handle around is always safe.
//
// # Errors
//
// Misuse (controlling a dead tween, changing a started sequence, adding an
// infinite tween to a sequence) is logged through zerolog and ignored. A
// panic in Apply or OnUpdate is recovered and stops the tween together with
// its top-level sequence.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package tween
