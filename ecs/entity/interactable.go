package entity

import (
	"fmt"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/levels"
	"github.com/milk9111/topdown/prefabs"
)

// NewInteractableAt builds prefabPath at (x, y) and applies the placement's
// props: name, start_node, count_variable, character, facing and color.
func NewInteractableAt(w *ecs.World, prefabPath string, placement levels.Entity) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, float64(placement.X), float64(placement.Y), 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("%s: override transform: %w", prefabPath, err)
	}
	if err := applyInteractableProps(w, e, placement); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("%s: %w", prefabPath, err)
	}
	return e, nil
}

func applyInteractableProps(w *ecs.World, e ecs.Entity, placement levels.Entity) error {
	if name := placement.PropString("name"); name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
			return err
		}
	}

	if it, ok := ecs.Get(w, e, component.InteractableComponent.Kind()); ok {
		if _, ok := placement.Props["start_node"]; ok {
			it.StartNode = placement.PropString("start_node")
		}
		if _, ok := placement.Props["count_variable"]; ok {
			it.CountVariable = placement.PropString("count_variable")
		}
		if character, ok := placement.PropBool("character"); ok {
			it.IsCharacter = character
		}
	}

	if _, ok := placement.Props["facing"]; ok {
		def, err := parseFacing(placement.PropString("facing"))
		if err != nil {
			return err
		}
		facing, ok := ecs.Get(w, e, component.FacingComponent.Kind())
		if !ok {
			facing = &component.Facing{}
			if err := ecs.Add(w, e, component.FacingComponent.Kind(), facing); err != nil {
				return err
			}
		}
		facing.Default = def
	}

	if hex := placement.PropString("color"); hex != "" {
		clr, err := prefabs.ParseHexColor(hex)
		if err != nil {
			return fmt.Errorf("color prop: %w", err)
		}
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.Color = clr
			sprite.Image = nil
		}
	}
	return nil
}
