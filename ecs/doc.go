// Package ecs provides ECS adapters for sheen's highlight event stream.
//
// The primary adapter is [NewDonburiStore], which bridges sheen events
// (pointer enter/leave, click on a surface, selection changes) into a
// [Donburi] world as typed events. Subscribe to [HighlightEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
