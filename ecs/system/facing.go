package system

import (
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// FaceMirror returns the sprite mirror flag that turns a character with the
// given authored orientation toward targetX.
func FaceMirror(selfX, targetX float64, def component.FacingDirection) bool {
	targetIsLeft := targetX < selfX
	if def == component.FacingLeft {
		return !targetIsLeft
	}
	return targetIsLeft
}

// FaceToward turns a character interactable toward targetX. It is a no-op for
// non-characters and entities without a sprite.
func FaceToward(w *ecs.World, e ecs.Entity, targetX float64) bool {
	it, ok := ecs.Get(w, e, component.InteractableComponent.Kind())
	if !ok || !it.IsCharacter {
		return false
	}
	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok {
		return false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	def := component.FacingRight
	if f, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
		def = f.Default
	}
	sprite.FlipX = FaceMirror(t.X, targetX, def)
	return true
}

// FaceTrackedActor turns e toward the actor its interaction zone tracks.
func FaceTrackedActor(w *ecs.World, e ecs.Entity) bool {
	zone, ok := ecs.Get(w, e, component.InteractionZoneComponent.Kind())
	if !ok || zone.ActorEntity == 0 {
		return false
	}
	actor, ok := ecs.Get(w, ecs.Entity(zone.ActorEntity), component.TransformComponent.Kind())
	if !ok {
		return false
	}
	return FaceToward(w, e, actor.X)
}

// SaveFacing snapshots the current mirror flag.
func SaveFacing(w *ecs.World, e ecs.Entity) {
	f, ok := ecs.Get(w, e, component.FacingComponent.Kind())
	if !ok {
		f = &component.Facing{}
		if err := ecs.Add(w, e, component.FacingComponent.Kind(), f); err != nil {
			return
		}
	}
	f.Saved = false
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		f.Saved = sprite.FlipX
	}
	f.HasSaved = true
}

// RestoreFacing reapplies the snapshot taken by SaveFacing.
func RestoreFacing(w *ecs.World, e ecs.Entity) {
	f, ok := ecs.Get(w, e, component.FacingComponent.Kind())
	if !ok || !f.HasSaved {
		return
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.FlipX = f.Saved
	}
	f.HasSaved = false
}
