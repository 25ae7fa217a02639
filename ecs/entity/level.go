package entity

import (
	"fmt"
	"log"
	"strings"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/levels"
	"github.com/milk9111/topdown/prefabs"
)

// LoadLevelToWorld populates world with the level's bounds, walls and entity
// placements.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if world == nil || lvl == nil {
		return fmt.Errorf("load level: world and level are required")
	}

	boundsEntity := world.CreateEntity()
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(lvl.Width),
		Height: float64(lvl.Height),
	}); err != nil {
		return err
	}

	for i, wall := range lvl.Walls {
		if _, err := NewWallAt(world, wall); err != nil {
			return fmt.Errorf("load level: wall %d: %w", i, err)
		}
	}

	for _, ent := range lvl.Entities {
		var err error
		switch strings.ToLower(ent.Type) {
		case "player":
			_, err = NewPlayerAt(world, float64(ent.X), float64(ent.Y))
		case "camera":
			_, err = NewCameraAt(world, float64(ent.X), float64(ent.Y))
		case "npc":
			_, err = NewInteractableAt(world, prefabOr(ent, "villager.yaml"), ent)
		case "sign":
			_, err = NewInteractableAt(world, prefabOr(ent, "sign.yaml"), ent)
		default:
			log.Printf("level: unknown entity type %q at (%d,%d); skipped", ent.Type, ent.X, ent.Y)
		}
		if err != nil {
			return fmt.Errorf("load level: %s at (%d,%d): %w", ent.Type, ent.X, ent.Y, err)
		}
	}

	return nil
}

// NewWallAt builds a static wall covering the rectangle.
func NewWallAt(w *ecs.World, wall levels.Wall) (ecs.Entity, error) {
	e, err := BuildEntity(w, "wall.yaml")
	if err != nil {
		return 0, err
	}
	cx := float64(wall.X) + float64(wall.W)/2
	cy := float64(wall.Y) + float64(wall.H)/2
	if err := SetEntityTransform(w, e, cx, cy, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}

	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Width, sprite.Height = wall.W, wall.H
		sprite.OriginX, sprite.OriginY = float64(wall.W)/2, float64(wall.H)/2
		if wall.Color != "" {
			clr, err := prefabs.ParseHexColor(wall.Color)
			if err != nil {
				ecs.DestroyEntity(w, e)
				return 0, fmt.Errorf("wall color: %w", err)
			}
			sprite.Color = clr
		}
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Width, body.Height = float64(wall.W), float64(wall.H)
	}
	return e, nil
}

func prefabOr(ent levels.Entity, fallback string) string {
	if p := ent.PropString("prefab"); p != "" {
		return p
	}
	return fallback
}
