package system

import (
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera's top-left corner toward the target's position
// centred on screen, clamped to the level bounds.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !w.IsAlive(cs.camEntity) {
		cs.camEntity, _ = ecs.First(w, component.CameraComponent.Kind())
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	viewW := common.BaseWidth / zoom
	viewH := common.BaseHeight / zoom

	wantX := target.X - viewW/2
	wantY := target.Y - viewH/2
	if bounds, ok := firstLevelBounds(w); ok {
		wantX = common.Clamp(wantX, 0, bounds.Width-viewW)
		wantY = common.Clamp(wantY, 0, bounds.Height-viewH)
	}

	smooth := cam.Smoothness
	if smooth <= 0 || smooth > 1 {
		smooth = 1
	}
	camTransform.X = common.Lerp(camTransform.X, wantX, smooth)
	camTransform.Y = common.Lerp(camTransform.Y, wantY, smooth)
}

func firstLevelBounds(w *ecs.World) (*component.LevelBounds, bool) {
	e, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.LevelBoundsComponent.Kind())
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "" || name == "player" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	if e, ok := findByName(w, name); ok {
		return e
	}
	return 0
}

// cameraView returns the camera's top-left corner and zoom.
func cameraView(w *ecs.World) (float64, float64, float64) {
	camX, camY, zoom := 0.0, 0.0, 1.0
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return camX, camY, zoom
	}
	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		camX, camY = t.X, t.Y
	}
	if c, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		zoom = c.Zoom
	}
	return camX, camY, zoom
}
