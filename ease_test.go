package tween

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluateEndpointsExact(t *testing.T) {
	for e := EaseLinear; e <= EaseInOutBounce; e++ {
		if got := Evaluate(0, e); got != 0 {
			t.Errorf("%v(0) = %v, want 0", e, got)
		}
		if got := Evaluate(1, e); got != 1 {
			t.Errorf("%v(1) = %v, want 1", e, got)
		}
	}
}

func TestEvaluateKnownValues(t *testing.T) {
	tests := []struct {
		e    Ease
		t    float64
		want float64
	}{
		{EaseLinear, 0.3, 0.3},
		{EaseInQuad, 0.5, 0.25},
		{EaseOutQuad, 0.5, 0.75},
		{EaseInOutQuad, 0.25, 0.125},
		{EaseInCubic, 0.5, 0.125},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.t, tt.e); math.Abs(got-tt.want) > 1e-5 {
			t.Errorf("%v(%v) = %v, want %v", tt.e, tt.t, got, tt.want)
		}
	}
}

func TestEvaluatePanicsOnPlaceholder(t *testing.T) {
	for _, e := range []Ease{EaseDefault, EaseCustom} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Evaluate with %v did not panic", e)
				}
			}()
			Evaluate(0.5, e)
		}()
	}
}

func TestEaseTextRoundTrip(t *testing.T) {
	var e Ease
	if err := e.UnmarshalText([]byte("InOutSine")); err != nil {
		t.Fatal(err)
	}
	if e != EaseInOutSine {
		t.Fatalf("e = %v, want InOutSine", e)
	}
	b, err := EaseOutBounce.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "OutBounce" {
		t.Errorf("MarshalText = %q", b)
	}
	if err := e.UnmarshalText([]byte("Wobble")); err == nil {
		t.Error("expected error for unknown ease name")
	}
	if got := Ease(100).String(); got != "Ease(100)" {
		t.Errorf("String = %q", got)
	}
}

func TestLinearCurve(t *testing.T) {
	c := NewLinearCurve()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{0, 0.25, 0.5, 0.9, 1} {
		if got := c.Evaluate(x); math.Abs(got-x) > 1e-9 {
			t.Errorf("Evaluate(%v) = %v", x, got)
		}
	}
}

func TestCurveClampsOutsideKeys(t *testing.T) {
	c := NewLinearCurve()
	if got := c.Evaluate(-1); got != 0 {
		t.Errorf("Evaluate(-1) = %v, want 0", got)
	}
	if got := c.Evaluate(2); got != 1 {
		t.Errorf("Evaluate(2) = %v, want 1", got)
	}
}

func TestCurveStepTangent(t *testing.T) {
	c := NewCurve(
		Keyframe{Time: 0, Value: 0, OutTangent: math.Inf(1)},
		Keyframe{Time: 1, Value: 1},
	)
	if got := c.Evaluate(0.7); got != 0 {
		t.Errorf("step curve at 0.7 = %v, want 0", got)
	}
	if got := c.Evaluate(1); got != 1 {
		t.Errorf("step curve at 1 = %v, want 1", got)
	}
}

func TestCurveValidate(t *testing.T) {
	if err := NewCurve(Keyframe{}).Validate(); !errors.Is(err, errCurveTooShort) {
		t.Errorf("single key: err = %v", err)
	}
	unsorted := NewCurve(
		Keyframe{Time: 0}, Keyframe{Time: 0.8, Value: 0.5},
		Keyframe{Time: 0.4, Value: 0.2}, Keyframe{Time: 1, Value: 1},
	)
	if err := unsorted.Validate(); !errors.Is(err, errCurveUnsorted) {
		t.Errorf("unsorted: err = %v", err)
	}
	if err := NewCurve(Keyframe{Time: 0, Value: 0.5}, Keyframe{Time: 1, Value: 1}).Validate(); err == nil {
		t.Error("expected error for curve not starting at (0, 0)")
	}
	if err := NewCurve(Keyframe{}, Keyframe{Time: 1, Value: 0.9}).Validate(); err == nil {
		t.Error("expected error for curve not ending at (1, 1)")
	}
}

func TestOvershootMatchesOutBack(t *testing.T) {
	e := Overshoot(1)
	for _, x := range []float64{0.2, 0.5, 0.8} {
		if got, want := e.Evaluate(x), Evaluate(x, EaseOutBack); math.Abs(got-want) > 1e-4 {
			t.Errorf("Overshoot(1)(%v) = %v, want %v", x, got, want)
		}
	}
	if got := e.Evaluate(0); math.Abs(got) > 1e-12 {
		t.Errorf("Overshoot(0) = %v", got)
	}
	if got := e.Evaluate(1); got != 1 {
		t.Errorf("Overshoot(1) = %v", got)
	}
}

func TestOvershootStrengthRaisesPeak(t *testing.T) {
	peak := func(e Easing) float64 {
		m := 0.0
		for i := 0; i <= 100; i++ {
			m = math.Max(m, e.Evaluate(float64(i)/100))
		}
		return m
	}
	low, high := peak(Overshoot(1)), peak(Overshoot(3))
	if !(low > 1 && high > low) {
		t.Errorf("peaks = %v, %v; want 1 < low < high", low, high)
	}
}

func TestElasticEndpoints(t *testing.T) {
	e := Elastic(1, 0.3)
	if got := e.Evaluate(0); math.Abs(got) > 1e-9 {
		t.Errorf("Elastic(0) = %v, want 0", got)
	}
	if got := e.Evaluate(1); got != 1 {
		t.Errorf("Elastic(1) = %v, want 1", got)
	}
	if got := e.Evaluate(0.99995); got != 1 {
		t.Errorf("Elastic near 1 = %v, want 1", got)
	}
}

func TestBounceStrength(t *testing.T) {
	full := Bounce(1)
	for _, x := range []float64{0.2, 0.6, 0.9} {
		if got, want := full.Evaluate(x), Evaluate(x, EaseOutBounce); math.Abs(got-want) > 1e-9 {
			t.Errorf("Bounce(1)(%v) = %v, want %v", x, got, want)
		}
	}
	half := Bounce(0.5)
	b := Evaluate(0.6, EaseOutBounce)
	if got, want := half.Evaluate(0.6), 1-0.5*(1-b); math.Abs(got-want) > 1e-9 {
		t.Errorf("Bounce(0.5)(0.6) = %v, want %v", got, want)
	}
	// before the first impact the shape is unaffected
	if got, want := half.Evaluate(0.2), Evaluate(0.2, EaseOutBounce); got != want {
		t.Errorf("Bounce(0.5)(0.2) = %v, want %v", got, want)
	}
}

func TestEasingResolve(t *testing.T) {
	e, warn, err := Easing{}.resolve(EaseOutQuad, true)
	if err != nil || warn != "" || e.Ease != EaseOutQuad {
		t.Errorf("default: %+v %q %v", e, warn, err)
	}

	e, warn, err = Overshoot(0).resolve(EaseOutQuad, true)
	if err != nil || warn == "" || e.Strength != 1 {
		t.Errorf("zero strength: %+v %q %v", e, warn, err)
	}

	e, _, _ = Elastic(1, 0).resolve(EaseOutQuad, true)
	if e.Period != elasticPeriod {
		t.Errorf("period = %v, want %v", e.Period, elasticPeriod)
	}

	if _, _, err = (Easing{Ease: EaseCustom}).resolve(EaseOutQuad, true); err == nil {
		t.Error("expected error for custom ease without curve")
	}

	bad := CustomCurve(NewCurve(Keyframe{}))
	e, warn, err = bad.resolve(EaseInSine, true)
	if err != nil || warn == "" || e.Ease != EaseInSine || e.Curve != nil {
		t.Errorf("bad curve: %+v %q %v", e, warn, err)
	}

	e, warn, err = bad.resolve(EaseInSine, false)
	if err != nil || warn != "" || e.Curve == nil {
		t.Errorf("unvalidated curve: %+v %q %v", e, warn, err)
	}

	if _, _, err = Standard(Ease(99)).resolve(EaseOutQuad, true); err == nil {
		t.Error("expected error for invalid ease")
	}
}
