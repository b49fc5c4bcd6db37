package tween

import (
	"fmt"
	"math"
	"testing"
)

func TestSequenceChainPlaysInOrder(t *testing.T) {
	s, _, rec := newTestScheduler(t)
	var a, b float64
	var order []string
	ta := s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1)).
		OnComplete(func() { order = append(order, "a") }, true)
	tb := s.Animate(nil, FloatField(&b), Float(0), Float(1), linearSettings(1)).
		OnComplete(func() { order = append(order, "b") }, true)
	seq := s.NewSequence(1, CycleRestart, EaseLinear).Chain(ta).Chain(tb).
		OnComplete(func() { order = append(order, "seq") })

	assertNear(t, "Duration", seq.Duration(), 2)

	s.Tick(0.5)
	assertNear(t, "a", a, 0.5)
	if b != 0 {
		t.Errorf("b = %v before its start", b)
	}

	s.Tick(1)
	assertNear(t, "a", a, 1)
	assertNear(t, "b", b, 0.5)

	s.Tick(0.5)
	assertNear(t, "b", b, 1)
	if seq.IsAlive() || ta.IsAlive() || tb.IsAlive() {
		t.Error("sequence or children alive after the end")
	}
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "seq" {
		t.Errorf("order = %v", order)
	}
	if rec.count(EventCompleted) != 1 {
		t.Errorf("events = %+v, want one completion for the sequence only", rec.events)
	}
}

func TestSequenceGroupStartsTogether(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var a, b float64
	seq := s.NewSequence(1, CycleRestart, EaseDefault).
		Chain(s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1))).
		Group(s.Animate(nil, FloatField(&b), Float(0), Float(1), linearSettings(0.5)))

	assertNear(t, "Duration", seq.Duration(), 1)
	s.Tick(0.25)
	assertNear(t, "a", a, 0.25)
	assertNear(t, "b", b, 0.5)
}

func TestSequenceInsertAt(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var a float64
	seq := s.NewSequence(1, CycleRestart, EaseLinear).
		Insert(2, s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1)))
	assertNear(t, "Duration", seq.Duration(), 3)
	s.Tick(2.5)
	assertNear(t, "a", a, 0.5)
}

func TestSequenceCallbacks(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var a float64
	var order []string
	s.NewSequence(1, CycleRestart, EaseLinear).
		Chain(s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1)).
			OnComplete(func() { order = append(order, "a") }, true)).
		InsertCallback(0.5, func() { order = append(order, "half") }).
		ChainCallback(func() { order = append(order, "end") })

	s.Tick(0.25)
	if len(order) != 0 {
		t.Fatalf("order = %v", order)
	}
	s.Tick(0.25)
	if len(order) != 1 || order[0] != "half" {
		t.Fatalf("order = %v", order)
	}
	s.Tick(0.5)
	if len(order) != 3 || order[1] != "a" || order[2] != "end" {
		t.Errorf("order = %v", order)
	}
}

func TestSequenceChainDelay(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var a, b float64
	seq := s.NewSequence(1, CycleRestart, EaseLinear).
		Chain(s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1))).
		ChainDelay(1).
		Chain(s.Animate(nil, FloatField(&b), Float(0), Float(1), linearSettings(1)))
	assertNear(t, "Duration", seq.Duration(), 3)

	s.Tick(1.5)
	if b != 0 {
		t.Errorf("b = %v during the delay", b)
	}
	s.Tick(1)
	assertNear(t, "b", b, 0.5)
}

func TestSequenceStopKillsChildren(t *testing.T) {
	s, _, rec := newTestScheduler(t)
	var a float64
	called := false
	ta := s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1)).
		OnComplete(func() { called = true }, true)
	seq := s.NewSequence(1, CycleRestart, EaseLinear).Chain(ta)

	s.Tick(0.25)
	seq.Stop()
	if seq.IsAlive() || ta.IsAlive() {
		t.Error("sequence or child alive after Stop")
	}
	s.Tick(1)
	if called {
		t.Error("child onComplete ran after Stop")
	}
	assertNear(t, "a", a, 0.25)
	if rec.count(EventStopped) != 1 || len(rec.events) != 1 {
		t.Errorf("events = %+v", rec.events)
	}
}

func TestSequenceCompleteFiresRemainingCallbacks(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var a, b float64
	fired := false
	seq := s.NewSequence(1, CycleRestart, EaseLinear).
		Chain(s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1))).
		Chain(s.Animate(nil, FloatField(&b), Float(0), Float(1), linearSettings(1))).
		ChainCallback(func() { fired = true })
	s.Tick(0.5)

	seq.Complete()
	assertNear(t, "a", a, 1)
	assertNear(t, "b", b, 1)
	if !fired {
		t.Error("chained callback skipped by Complete")
	}
	if seq.IsAlive() {
		t.Error("sequence alive after Complete")
	}
}

func TestSequenceInfiniteCompleteStopsAtCycleEnd(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var a float64
	seq := s.NewSequence(InfiniteCycles, CycleRestart, EaseLinear).
		Chain(s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1)))

	s.Tick(1.5)
	assertNear(t, "a", a, 0.5)
	if seq.CyclesDone() != 1 {
		t.Errorf("CyclesDone = %d, want 1", seq.CyclesDone())
	}

	seq.Complete()
	assertNear(t, "a", a, 1)
	if seq.IsAlive() {
		t.Error("infinite sequence alive after Complete")
	}
}

func TestSequenceYoyoPlaysChildrenBackwards(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var a float64
	completions := 0
	seq := s.NewSequence(2, CycleYoyo, EaseLinear).
		Chain(s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1)).
			OnComplete(func() { completions++ }, true))

	s.Tick(0.5)
	assertNear(t, "a", a, 0.5)
	s.Tick(1)
	assertNear(t, "a", a, 0.5)
	if completions != 1 {
		t.Errorf("child completions = %d, want 1 after the first cycle", completions)
	}
	s.Tick(0.5)
	assertNear(t, "a", a, 0)
	if seq.IsAlive() {
		t.Error("sequence alive after both cycles")
	}
}

func TestSequenceScrubbing(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var a, b float64
	seq := s.NewSequence(1, CycleRestart, EaseLinear).
		Chain(s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1))).
		Chain(s.Animate(nil, FloatField(&b), Float(0), Float(1), linearSettings(1)))

	seq.SetElapsedTimeTotal(1.5)
	assertNear(t, "a", a, 1)
	assertNear(t, "b", b, 0.5)

	seq.SetElapsedTimeTotal(0.5)
	assertNear(t, "a", a, 0.5)
	assertNear(t, "b", b, 0)

	seq.SetProgressTotal(1)
	assertNear(t, "b", b, 1)
}

func TestNestedSequence(t *testing.T) {
	s, buf, _ := newTestScheduler(t)
	var a, b float64
	inner := s.NewSequence(1, CycleRestart, EaseLinear).
		Chain(s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1)))
	outer := s.NewSequence(1, CycleRestart, EaseLinear).
		Chain(inner).
		Chain(s.Animate(nil, FloatField(&b), Float(0), Float(1), linearSettings(1)))

	assertNear(t, "Duration", outer.Duration(), 2)
	inner.Stop()
	assertLogged(t, buf, msgCantManipulate)
	if !inner.IsAlive() {
		t.Fatal("nested sequence stopped directly")
	}

	s.Tick(1.5)
	assertNear(t, "a", a, 1)
	assertNear(t, "b", b, 0.5)

	s.Tick(0.5)
	if outer.IsAlive() || inner.IsAlive() {
		t.Error("sequences alive after the end")
	}
}

func TestNestedRestartInsideYoyo(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var a float64
	inner := s.NewSequence(2, CycleRestart, EaseLinear).
		Chain(s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1)))
	s.NewSequence(2, CycleYoyo, EaseLinear).Chain(inner)

	// forward: inner plays 0..1 twice
	s.Tick(0.5)
	assertNear(t, "a", a, 0.5)
	s.Tick(1)
	assertNear(t, "a", a, 0.5)
	// backwards through the second inner cycle
	s.Tick(1)
	assertNear(t, "a", a, 0.5)
	s.Tick(1)
	assertNear(t, "a", a, 0.5)
	s.Tick(0.5)
	assertNear(t, "a", a, 0)
}

func TestNestedRestartInsideYoyoSmallSteps(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var a float64
	completed := 0
	inner := s.NewSequence(2, CycleRestart, EaseLinear).
		Chain(s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1)))
	outer := s.NewSequence(2, CycleYoyo, EaseLinear).Chain(inner).
		OnComplete(func() { completed++ })

	const step = 0.125
	for i := 1; i <= 31; i++ {
		s.Tick(step)
		at := float64(i) * step
		if at == math.Trunc(at) {
			continue
		}
		// inner plays 0..1 twice forwards, then twice backwards
		played := at
		if at > 2 {
			played = 4 - at
		}
		assertNear(t, fmt.Sprintf("a at %v", at), a, played-math.Trunc(played))
	}
	if !outer.IsAlive() {
		t.Fatal("outer sequence ended early")
	}
	s.Tick(step)
	assertNear(t, "a", a, 0)
	if outer.IsAlive() || completed != 1 {
		t.Errorf("alive = %v, completed = %d", outer.IsAlive(), completed)
	}
}

func TestSequenceGroupThenChain(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var a, b, c float64
	seq := s.NewSequence(1, CycleRestart, EaseLinear).
		Chain(s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1))).
		Group(s.Animate(nil, FloatField(&b), Float(0), Float(1), linearSettings(1))).
		Chain(s.Animate(nil, FloatField(&c), Float(0), Float(1), linearSettings(1)))

	assertNear(t, "Duration", seq.Duration(), 2)
	s.Tick(1.5)
	assertNear(t, "a", a, 1)
	assertNear(t, "b", b, 1)
	assertNear(t, "c", c, 0.5)
}

func TestNestedChildCannotBeControlled(t *testing.T) {
	s, buf, _ := newTestScheduler(t)
	var a float64
	ta := s.Animate(nil, FloatField(&a), Float(0), Float(1), linearSettings(1))
	s.NewSequence(1, CycleRestart, EaseLinear).Chain(ta)

	ta.Stop()
	if ta.SetPaused(true) {
		t.Error("paused a nested tween")
	}
	if !ta.IsAlive() {
		t.Fatal("nested tween stopped directly")
	}
	assertLogged(t, buf, msgCantManipulate)

	if n := s.StopAll(nil); n != 1 {
		t.Errorf("StopAll = %d, want 1 (the sequence only)", n)
	}
	if ta.IsAlive() {
		t.Error("nested tween survived its sequence")
	}
}

func TestSequenceValidation(t *testing.T) {
	s, buf, _ := newTestScheduler(t)
	var x float64
	seq := s.NewSequence(1, CycleRestart, EaseLinear)

	inf := s.Animate(nil, FloatField(&x), Float(0), Float(1), linearSettings(1).WithCycles(InfiniteCycles, CycleRestart))
	seq.Chain(inf)
	assertLogged(t, buf, msgInfiniteInSequence)
	if seq.Duration() != 0 {
		t.Errorf("Duration = %v after rejected insert", seq.Duration())
	}

	seq.Chain(seq)
	assertLogged(t, buf, msgNestSelf)

	seq.Chain(Tween{})
	assertLogged(t, buf, msgAddDead)

	tw := s.Animate(nil, FloatField(&x), Float(0), Float(1), linearSettings(1))
	seq.Chain(tw)
	s.NewSequence(1, CycleRestart, EaseLinear).Chain(tw)
	assertLogged(t, buf, msgNestTweenTwice)

	seq.Insert(-1, s.Delay(1, nil))
	assertLogged(t, buf, "insert time must be")

	s.Tick(0.5)
	seq.ChainDelay(1)
	assertLogged(t, buf, msgSequenceStarted)
	assertNear(t, "Duration", seq.Duration(), 1)
}

func TestSequenceChildSettingsIgnored(t *testing.T) {
	s, buf, _ := newTestScheduler(t)
	var x float64
	tw := s.Animate(nil, FloatField(&x), Float(0), Float(1), linearSettings(1))
	tw.SetPaused(true)
	tw.SetTimeScale(3)
	s.NewSequence(1, CycleRestart, EaseLinear).Chain(tw)

	assertLogged(t, buf, "setting is ignored once added to a sequence")
	if tw.IsPaused() || tw.TimeScale() != 1 {
		t.Errorf("paused = %v, time scale = %v", tw.IsPaused(), tw.TimeScale())
	}
	s.Tick(0.5)
	assertNear(t, "x", x, 0.5)
}

func TestSequenceRejectsIncrementalAndCustom(t *testing.T) {
	s, buf, _ := newTestScheduler(t)
	seq := s.NewSequence(2, CycleIncremental, EaseCustom)
	if !seq.IsAlive() || seq.CyclesTotal() != 2 {
		t.Fatalf("alive = %v, cycles = %d", seq.IsAlive(), seq.CyclesTotal())
	}
	assertLogged(t, buf, "don't support CycleIncremental")
	assertLogged(t, buf, "don't support custom easing")
}

func TestSequenceUpdateCallbackAndDone(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var x float64
	updates := 0
	seq := s.NewSequence(1, CycleRestart, EaseLinear).
		Chain(s.Animate(nil, FloatField(&x), Float(0), Float(1), linearSettings(1))).
		OnUpdate(func(Tween) { updates++ })
	done := seq.Done()

	s.Tick(0.5)
	s.Tick(0.5)
	if updates != 2 {
		t.Errorf("updates = %d, want 2", updates)
	}
	select {
	case <-done:
	default:
		t.Error("Done not closed after the sequence completed")
	}
}

func TestSequenceChildPanicAbortsSequence(t *testing.T) {
	s, buf, rec := newTestScheduler(t)
	var b float64
	bad := Property{Kind: PropFloat, Apply: func(any, Value) { panic("bad apply") }}
	tb := s.Animate(nil, FloatField(&b), Float(0), Float(1), linearSettings(1)).
		OnComplete(func() {}, true)
	seq := s.NewSequence(1, CycleRestart, EaseLinear).
		Chain(s.Animate(nil, bad, Float(0), Float(1), linearSettings(1))).
		Chain(tb)

	s.Tick(0.5)
	if seq.IsAlive() || tb.IsAlive() {
		t.Error("sequence survived a child panic")
	}
	if rec.count(EventAborted) != 1 {
		t.Errorf("events = %+v", rec.events)
	}
	assertLogged(t, buf, "bad apply")
	assertLogged(t, buf, msgOnCompleteIgnored)
}

func TestFixedUpdateSequence(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	var x float64
	s.NewSequenceWith(Settings{Cycles: 1, FixedUpdate: true}).
		Chain(s.Animate(nil, FloatField(&x), Float(0), Float(1), linearSettings(1)))
	s.Tick(0.5)
	if x != 0 {
		t.Errorf("Tick moved a fixed-update sequence: x = %v", x)
	}
	s.TickFixed(0.5)
	assertNear(t, "x", x, 0.5)
}
