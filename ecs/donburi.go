// Package ecs provides ECS adapters for ambient.
package ecs

import (
	"github.com/commotionlabs/ambient"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SignalEventType is the Donburi event type for ambient signals.
// Subscribe to this in your ECS systems to receive pointer, scroll, resize
// and focus notifications as the engine delivers them.
var SignalEventType = events.NewEventType[ambient.Signal]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a SignalSink backed by a Donburi world.
// Signals are published to SignalEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) ambient.SignalSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitSignal(sig ambient.Signal) {
	SignalEventType.Publish(s.world, sig)
}
