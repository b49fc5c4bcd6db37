package tween

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// Ease selects one of the standard easing curves.
type Ease int8

const (
	EaseCustom  Ease = iota - 1 // evaluated through Easing.Curve or a parametric shape
	EaseDefault                 // resolved to Config.DefaultEase when a tween is created
	EaseLinear
	EaseInSine
	EaseOutSine
	EaseInOutSine
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInQuart
	EaseOutQuart
	EaseInOutQuart
	EaseInQuint
	EaseOutQuint
	EaseInOutQuint
	EaseInExpo
	EaseOutExpo
	EaseInOutExpo
	EaseInCirc
	EaseOutCirc
	EaseInOutCirc
	EaseInElastic
	EaseOutElastic
	EaseInOutElastic
	EaseInBack
	EaseOutBack
	EaseInOutBack
	EaseInBounce
	EaseOutBounce
	EaseInOutBounce
)

var easeNames = [...]string{
	"Custom", "Default", "Linear",
	"InSine", "OutSine", "InOutSine",
	"InQuad", "OutQuad", "InOutQuad",
	"InCubic", "OutCubic", "InOutCubic",
	"InQuart", "OutQuart", "InOutQuart",
	"InQuint", "OutQuint", "InOutQuint",
	"InExpo", "OutExpo", "InOutExpo",
	"InCirc", "OutCirc", "InOutCirc",
	"InElastic", "OutElastic", "InOutElastic",
	"InBack", "OutBack", "InOutBack",
	"InBounce", "OutBounce", "InOutBounce",
}

// easeFuncs is indexed by Ease. Placeholders have no function.
var easeFuncs = [...]ease.TweenFunc{
	nil, nil, ease.Linear,
	ease.InSine, ease.OutSine, ease.InOutSine,
	ease.InQuad, ease.OutQuad, ease.InOutQuad,
	ease.InCubic, ease.OutCubic, ease.InOutCubic,
	ease.InQuart, ease.OutQuart, ease.InOutQuart,
	ease.InQuint, ease.OutQuint, ease.InOutQuint,
	ease.InExpo, ease.OutExpo, ease.InOutExpo,
	ease.InCirc, ease.OutCirc, ease.InOutCirc,
	ease.InElastic, ease.OutElastic, ease.InOutElastic,
	ease.InBack, ease.OutBack, ease.InOutBack,
	ease.InBounce, ease.OutBounce, ease.InOutBounce,
}

func (e Ease) valid() bool {
	return e >= EaseCustom && e <= EaseInOutBounce
}

// String returns the curve name, e.g. "InOutSine".
func (e Ease) String() string {
	if !e.valid() {
		return fmt.Sprintf("Ease(%d)", int8(e))
	}
	return easeNames[e+1]
}

// MarshalText implements encoding.TextMarshaler.
func (e Ease) MarshalText() ([]byte, error) {
	if !e.valid() {
		return nil, fmt.Errorf("tween: invalid ease %d", int8(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are the ones
// returned by String.
func (e *Ease) UnmarshalText(text []byte) error {
	s := string(text)
	for i, name := range easeNames {
		if name == s {
			*e = Ease(i - 1)
			return nil
		}
	}
	return fmt.Errorf("tween: unknown ease %q", s)
}

// Evaluate maps t in [0, 1] through the standard curve e. The endpoints are
// exact: 0 maps to 0 and 1 maps to 1 for every curve. EaseDefault and
// EaseCustom must be resolved by the caller; passing them panics.
func Evaluate(t float64, e Ease) float64 {
	if e == EaseLinear {
		return t
	}
	if e <= EaseDefault || !e.valid() {
		panic(fmt.Sprintf("tween: Evaluate called with unresolved ease %v", e))
	}
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	}
	return float64(easeFuncs[e+1](float32(t), 0, 1, 1))
}
