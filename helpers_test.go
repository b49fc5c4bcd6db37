package tween

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// newTestScheduler returns a scheduler logging JSON into the returned buffer
// and recording lifecycle events.
func newTestScheduler(t testing.TB) (*Scheduler, *bytes.Buffer, *eventRecorder) {
	t.Helper()
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	rec := &eventRecorder{}
	cfg := DefaultConfig()
	cfg.Logger = &logger
	cfg.Sink = rec
	s := New(cfg)
	t.Cleanup(s.Close)
	return s, &buf, rec
}

type eventRecorder struct {
	events []LifecycleEvent
}

func (r *eventRecorder) EmitEvent(e LifecycleEvent) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) count(kind LifecycleKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// sprite is a minimal disposable target.
type sprite struct {
	x        float64
	pos      Vec2
	color    Color
	rot      Quat
	disposed bool
}

func (s *sprite) IsDisposed() bool { return s.disposed }

func linearSettings(d float64) Settings {
	return NewSettings(d, EaseLinear)
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertLogged(t *testing.T, buf *bytes.Buffer, substr string) {
	t.Helper()
	if !strings.Contains(buf.String(), substr) {
		t.Errorf("log does not contain %q:\n%s", substr, buf.String())
	}
}
