// Package ecs provides ECS adapters for tween.
package ecs

import (
	"slices"

	"github.com/phanxgames/tween"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType carries the end of every top-level tween and sequence:
// EventCompleted, EventStopped and EventAborted. Tweens nested in a sequence
// never produce events of their own.
var LifecycleEventType = events.NewEventType[tween.LifecycleEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink returns an EventSink for tween.Config.Sink. The scheduler
// emits synchronously inside Tick, Stop and Complete; the sink only queues,
// so handlers run when a system calls LifecycleEventType.ProcessEvents, after
// the tick has returned.
func NewDonburiSink(world donburi.World) tween.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event tween.LifecycleEvent) {
	LifecycleEventType.Publish(s.world, event)
}

// SubscribeKinds registers fn for lifecycle events of the given kinds only,
// e.g. EventAborted to clean up after tweens whose target was disposed.
func SubscribeKinds(world donburi.World, fn func(donburi.World, tween.LifecycleEvent), kinds ...tween.LifecycleKind) {
	LifecycleEventType.Subscribe(world, func(w donburi.World, e tween.LifecycleEvent) {
		if slices.Contains(kinds, e.Kind) {
			fn(w, e)
		}
	})
}
