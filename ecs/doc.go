// Package ecs provides ECS adapters for tween's lifecycle events.
//
// The primary adapter is [NewDonburiSink], which forwards tween lifecycle
// events (completed, stopped, aborted) into a [Donburi] world as typed
// events. Subscribe to [LifecycleEventType] in your ECS systems to react when
// an animation ends, e.g. to remove an entity once its fade-out completes.
//
// Usage:
//
//	cfg := tween.DefaultConfig()
//	cfg.Sink = ecs.NewDonburiSink(world)
//	tweens := tween.New(cfg)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
