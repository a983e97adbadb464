package ecs

import (
	"github.com/phanxgames/sheen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// HighlightEventType is the Donburi event type for sheen highlight events.
var HighlightEventType = events.NewEventType[sheen.HighlightEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are published to HighlightEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) sheen.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event sheen.HighlightEvent) {
	HighlightEventType.Publish(s.world, event)
}
