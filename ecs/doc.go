// Package ecs provides ECS adapters for tinsel's event stream.
//
// The primary adapter is [NewDonburiSink], which bridges tinsel events
// (gesture changes, state changes, tracking, focal point arrivals) into a
// [Donburi] world as typed events, and mirrors the scene's current state
// into a [SceneState] component on a dedicated entity.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
