package entity

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":       addPlayerTag,
	"wall":             addWall,
	"name":             addName,
	"player":           addPlayer,
	"input":            addInput,
	"movement_lock":    addMovementLock,
	"transform":        addTransform,
	"sprite":           addSprite,
	"render_layer":     addRenderLayer,
	"y_sort":           addYSort,
	"camera":           addCamera,
	"animator":         addAnimator,
	"physics_body":     addPhysicsBody,
	"interactable":     addInteractable,
	"interaction_zone": addInteractionZone,
	"facing":           addFacing,
}

// componentBuildOrder lists builders that read components added before them.
var componentBuildOrder = []string{
	"player_tag",
	"wall",
	"name",
	"player",
	"input",
	"movement_lock",
	"transform",
	"sprite",
	"render_layer",
	"y_sort",
	"camera",
	"animator",
	"physics_body",
	"interactable",
	"interaction_zone",
	"facing",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, spec, prefabPath)
}

func buildFromSpec(w *ecs.World, spec prefabs.EntityBuildSpec, prefabPath string) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %s", prefabPath, strings.Join(names, ", "))
	}

	warnMissingCollaborators(w, e, prefabPath)
	return e, nil
}

// warnMissingCollaborators logs configuration problems that leave an
// interactable partly inert.
func warnMissingCollaborators(w *ecs.World, e ecs.Entity, prefabPath string) {
	it, ok := ecs.Get(w, e, component.InteractableComponent.Kind())
	if !ok {
		return
	}
	if it.IsCharacter && !ecs.Has(w, e, component.SpriteComponent.Kind()) {
		log.Printf("entity: %s: character interactable has no sprite; facing is disabled", prefabPath)
	}
	if it.StartNode == "" {
		log.Printf("entity: %s: interactable has no start node; it can never start a dialogue", prefabPath)
	}
	if !ecs.Has(w, e, component.InteractionZoneComponent.Kind()) {
		log.Printf("entity: %s: interactable has no interaction zone; it can never be in range", prefabPath)
	}
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addWall(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.WallComponent.Kind(), &component.Wall{})
}

type nameSpec = prefabs.NameComponentSpec

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[nameSpec](raw)
	if err != nil {
		return fmt.Errorf("decode name spec: %w", err)
	}
	return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Value})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: spec.MoveSpeed})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addMovementLock(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MovementLockComponent.Kind(), &component.MovementLock{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	sprite := component.Sprite{
		Width:        spec.Width,
		Height:       spec.Height,
		OriginX:      spec.OriginX,
		OriginY:      spec.OriginY,
		FacingMarker: spec.FacingMarker,
		FlipX:        spec.FlipX,
	}
	if spec.Color != nil {
		sprite.Color = spec.Color.Color
	}
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOriginIfZero {
		sprite.OriginX = float64(sprite.Width) / 2
		sprite.OriginY = float64(sprite.Height) / 2
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type ySortSpec = prefabs.YSortComponentSpec

func addYSort(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ySortSpec](raw)
	if err != nil {
		return fmt.Errorf("decode y sort spec: %w", err)
	}
	return ecs.Add(w, e, component.YSortComponent.Kind(), &component.YSort{OffsetY: spec.OffsetY})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Smoothness == 0 {
		spec.Smoothness = 0.15
	}
	if spec.Zoom == 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	})
}

type animatorSpec = prefabs.AnimatorComponentSpec

func addAnimator(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animatorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animator spec: %w", err)
	}

	defs := make(map[string]component.AnimationDef, len(spec.Defs))
	for name, def := range spec.Defs {
		defs[name] = component.AnimationDef{
			Name:       name,
			FrameCount: def.FrameCount,
			FPS:        def.FPS,
			BobPixels:  def.BobPixels,
			Loop:       def.Loop,
		}
	}

	return ecs.Add(w, e, component.AnimatorComponent.Kind(), &component.Animator{
		Defs:    defs,
		Params:  map[string]bool{component.AnimParamRunning: false},
		Current: spec.Current,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}

	width, height := spec.Width, spec.Height
	if spec.Radius <= 0 && (width <= 0 || height <= 0) {
		// Fall back to the sprite's footprint.
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			width, height = float64(sprite.Width), float64(sprite.Height)
		}
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    width,
		Height:   height,
		Radius:   spec.Radius,
		Mass:     spec.Mass,
		Friction: spec.Friction,
		Static:   spec.Static,
	})
}

type interactableSpec = prefabs.InteractableComponentSpec

func addInteractable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[interactableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode interactable spec: %w", err)
	}
	return ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{
		IsCharacter:   spec.IsCharacter,
		StartNode:     strings.TrimSpace(spec.StartNode),
		CountVariable: strings.TrimSpace(spec.CountVariable),
	})
}

type interactionZoneSpec = prefabs.InteractionZoneComponentSpec

func addInteractionZone(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[interactionZoneSpec](raw)
	if err != nil {
		return fmt.Errorf("decode interaction zone spec: %w", err)
	}
	if spec.Radius <= 0 {
		return fmt.Errorf("interaction zone radius must be positive, got %v", spec.Radius)
	}
	return ecs.Add(w, e, component.InteractionZoneComponent.Kind(), &component.InteractionZone{Radius: spec.Radius})
}

type facingSpec = prefabs.FacingComponentSpec

func addFacing(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[facingSpec](raw)
	if err != nil {
		return fmt.Errorf("decode facing spec: %w", err)
	}
	def, err := parseFacing(spec.Default)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.FacingComponent.Kind(), &component.Facing{Default: def})
}

func parseFacing(s string) (component.FacingDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "right":
		return component.FacingRight, nil
	case "left":
		return component.FacingLeft, nil
	}
	return component.FacingRight, fmt.Errorf("unknown facing %q (want left or right)", s)
}
