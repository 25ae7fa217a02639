package entity

import (
	"strings"
	"testing"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/levels"
	"github.com/milk9111/topdown/prefabs"
)

func TestBuildPlayerPrefab(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayerAt(w, 40, 60)
	if err != nil {
		t.Fatalf("build player: %v", err)
	}

	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		t.Fatalf("player should be tagged")
	}
	if !ecs.Has(w, e, component.MovementLockComponent.Kind()) {
		t.Fatalf("player should carry a movement lock")
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || tr.X != 40 || tr.Y != 60 {
		t.Fatalf("unexpected transform %+v", tr)
	}
	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	if sprite.OriginX != float64(sprite.Width)/2 || sprite.Color == nil {
		t.Fatalf("sprite origin should be centred and coloured, got %+v", sprite)
	}
	anim, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if _, ok := anim.Defs["run"]; !ok || anim.Current != "idle" {
		t.Fatalf("animator defs not decoded: %+v", anim)
	}
}

func TestBuildVillagerPrefab(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "villager.yaml")
	if err != nil {
		t.Fatalf("build villager: %v", err)
	}
	it, ok := ecs.Get(w, e, component.InteractableComponent.Kind())
	if !ok || !it.IsCharacter || it.StartNode != "OldMan" || it.CountVariable != "$visits" {
		t.Fatalf("unexpected interactable %+v", it)
	}
	zone, ok := ecs.Get(w, e, component.InteractionZoneComponent.Kind())
	if !ok || zone.Radius <= 0 || zone.InRange {
		t.Fatalf("unexpected zone %+v", zone)
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !body.Static {
		t.Fatalf("villagers are static")
	}
}

func TestBuildFromSpecErrors(t *testing.T) {
	tests := []struct {
		name    string
		spec    prefabs.EntityBuildSpec
		wantErr string
	}{
		{
			name:    "no_components",
			spec:    prefabs.EntityBuildSpec{Name: "empty"},
			wantErr: "does not define components",
		},
		{
			name: "unknown_component",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"transform": map[string]any{"x": 1},
				"jetpack":   map[string]any{},
			}},
			wantErr: "no builder for components jetpack",
		},
		{
			name: "bad_facing",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"facing": map[string]any{"default": "up"},
			}},
			wantErr: "unknown facing",
		},
		{
			name: "zero_zone",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"interaction_zone": map[string]any{"radius": 0},
			}},
			wantErr: "radius must be positive",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := buildFromSpec(w, tc.spec, tc.name)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("failed build should not leave entities, got %d", n)
			}
		})
	}
}

func TestInteractablePropsOverride(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewInteractableAt(w, "villager.yaml", levels.Entity{
		Type: "npc",
		X:    10,
		Y:    20,
		Props: map[string]interface{}{
			"name":           "Merchant",
			"start_node":     "Merchant",
			"count_variable": "",
			"facing":         "left",
			"color":          "#112233",
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	name, _ := ecs.Get(w, e, component.NameComponent.Kind())
	if name.Value != "Merchant" {
		t.Fatalf("name not overridden: %q", name.Value)
	}
	it, _ := ecs.Get(w, e, component.InteractableComponent.Kind())
	if it.StartNode != "Merchant" || it.CountVariable != "" {
		t.Fatalf("interactable not overridden: %+v", it)
	}
	facing, _ := ecs.Get(w, e, component.FacingComponent.Kind())
	if facing.Default != component.FacingLeft {
		t.Fatalf("facing not overridden: %v", facing.Default)
	}
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := levels.ParseLevel([]byte(`{
		"width": 320, "height": 200,
		"walls": [{"x": 0, "y": 0, "w": 320, "h": 8}],
		"entities": [
			{"type": "camera", "x": 0, "y": 0},
			{"type": "player", "x": 100, "y": 100},
			{"type": "npc", "x": 150, "y": 100, "props": {"name": "OldMan"}},
			{"type": "sign", "x": 200, "y": 100},
			{"type": "ufo", "x": 0, "y": 0}
		]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	w := ecs.NewWorld()
	if err := LoadLevelToWorld(w, lvl); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := len(w.Query(component.InteractableComponent.Kind().ID())); got != 2 {
		t.Fatalf("expected 2 interactables, got %d", got)
	}
	if _, ok := ecs.First(w, component.PlayerTagComponent.Kind()); !ok {
		t.Fatalf("expected a player")
	}
	wall, ok := ecs.First(w, component.WallComponent.Kind())
	if !ok {
		t.Fatalf("expected a wall")
	}
	tr, _ := ecs.Get(w, wall, component.TransformComponent.Kind())
	body, _ := ecs.Get(w, wall, component.PhysicsBodyComponent.Kind())
	if tr.X != 160 || tr.Y != 4 || body.Width != 320 || body.Height != 8 {
		t.Fatalf("wall placed wrong: transform=%+v body=%+v", tr, body)
	}
	bounds, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		t.Fatalf("expected level bounds")
	}
	lb, _ := ecs.Get(w, bounds, component.LevelBoundsComponent.Kind())
	if lb.Width != 320 || lb.Height != 200 {
		t.Fatalf("unexpected bounds %+v", lb)
	}
}
