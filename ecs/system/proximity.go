package system

import (
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// ProximitySystem applies zone enter/exit events to InteractionZone state.
// It must run after the physics system in the same tick.
type ProximitySystem struct{}

func NewProximitySystem() *ProximitySystem { return &ProximitySystem{} }

func (s *ProximitySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().Consume(ecs.EventZoneEnter) {
		ze, ok := evt.Data.(ecs.ZoneEvent)
		if !ok {
			continue
		}
		zone, ok := ecs.Get(w, ze.Zone, component.InteractionZoneComponent.Kind())
		if !ok || !w.IsAlive(ze.Actor) {
			continue
		}
		ZoneEnter(zone, ze.Actor, ecs.Has(w, ze.Actor, component.PlayerTagComponent.Kind()))
	}

	for _, evt := range w.Events().Consume(ecs.EventZoneExit) {
		ze, ok := evt.Data.(ecs.ZoneEvent)
		if !ok {
			continue
		}
		if zone, ok := ecs.Get(w, ze.Zone, component.InteractionZoneComponent.Kind()); ok {
			ZoneExit(zone, ze.Actor)
		}
	}

	// The actor reference is weak: drop it once the actor is gone.
	ecs.ForEach(w, component.InteractionZoneComponent.Kind(), func(_ ecs.Entity, zone *component.InteractionZone) {
		if zone.InRange && !w.IsAlive(ecs.Entity(zone.ActorEntity)) {
			zone.InRange = false
			zone.ActorEntity = 0
		}
	})
}

// ZoneEnter records actor as in range when it is the player. It reports
// whether the zone changed.
func ZoneEnter(zone *component.InteractionZone, actor ecs.Entity, isPlayer bool) bool {
	if zone == nil || !isPlayer {
		return false
	}
	zone.InRange = true
	zone.ActorEntity = uint64(actor)
	return true
}

// ZoneExit clears the zone only when actor is the one currently recorded.
func ZoneExit(zone *component.InteractionZone, actor ecs.Entity) bool {
	if zone == nil || !zone.InRange || zone.ActorEntity != uint64(actor) {
		return false
	}
	zone.InRange = false
	zone.ActorEntity = 0
	return true
}
