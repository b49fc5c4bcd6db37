package tween

// LifecycleKind identifies how a top-level tween or sequence ended.
type LifecycleKind uint8

const (
	EventCompleted LifecycleKind = iota // reached its end value and fired onComplete
	EventStopped                        // stopped by Stop or StopAll
	EventAborted                        // stopped early by a callback panic or a disposed target
)

var lifecycleNames = [...]string{"completed", "stopped", "aborted"}

func (k LifecycleKind) String() string {
	if int(k) < len(lifecycleNames) {
		return lifecycleNames[k]
	}
	return "unknown"
}

// LifecycleEvent is emitted once per top-level tween or sequence when it ends.
// Tweens nested in a sequence report through their root.
type LifecycleEvent struct {
	Kind        LifecycleKind
	ID          uint64
	Target      any
	Description string
}

// EventSink receives lifecycle events, e.g. to forward them into an ECS
// world. EmitEvent is called synchronously from inside Tick and the control
// methods and must not call back into the scheduler.
type EventSink interface {
	EmitEvent(event LifecycleEvent)
}

func (s *Scheduler) emit(kind LifecycleKind, u *unit) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(LifecycleEvent{
		Kind:        kind,
		ID:          u.id,
		Target:      u.target,
		Description: u.String(),
	})
}
