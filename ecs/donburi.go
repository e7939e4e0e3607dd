package ecs

import (
	"github.com/phanxgames/tinsel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventType is the Donburi event type for tinsel events. Subscribe to this
// in your ECS systems and call ProcessEvents once per tick.
var EventType = events.NewEventType[tinsel.Event]()

// SceneStateData mirrors what the scene currently shows.
type SceneStateData struct {
	State        tinsel.AppState
	FocusedPhoto int
	Source       tinsel.Source
	Tracking     bool
	Gesture      tinsel.Gesture
	Reached      bool
}

// SceneState is the component holding SceneStateData.
var SceneState = donburi.NewComponentType[SceneStateData]()

// DonburiSink is an EventSink backed by a Donburi world.
type DonburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates an EventSink that publishes every event to
// EventType and keeps a SceneState entity current. Events are queued until
// EventType.ProcessEvents runs; the component is updated immediately.
func NewDonburiSink(world donburi.World) *DonburiSink {
	e := world.Create(SceneState)
	*SceneState.Get(world.Entry(e)) = SceneStateData{
		State:        tinsel.StateTree,
		FocusedPhoto: tinsel.NoPhoto,
	}
	return &DonburiSink{world: world, entity: e}
}

// Entity returns the entity carrying the SceneState component.
func (s *DonburiSink) Entity() donburi.Entity {
	return s.entity
}

// EmitEvent implements tinsel.EventSink.
func (s *DonburiSink) EmitEvent(event tinsel.Event) {
	if entry := s.world.Entry(s.entity); entry.Valid() {
		st := SceneState.Get(entry)
		switch event.Type {
		case tinsel.EventStateChange:
			st.State = event.State
			st.FocusedPhoto = event.FocusedPhoto
			st.Reached = false
		case tinsel.EventGestureChange:
			st.Gesture = event.Gesture
			st.Source = event.Source
		case tinsel.EventTracking:
			st.Tracking = event.Tracking
			st.Source = tinsel.SourcePointer
			if event.Tracking {
				st.Source = tinsel.SourceHand
			}
		case tinsel.EventFocalPointReached:
			st.Reached = true
		}
	}
	EventType.Publish(s.world, event)
}
