// Package ecs provides ECS adapters for ambient's signal bus.
//
// The primary adapter is [NewDonburiSink], which bridges the notifications
// the signal bus delivers (pointer, click, throttled scroll, debounced
// resize, focus) into a [Donburi] world as typed events. Subscribe to
// [SignalEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.Signals().AddSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
