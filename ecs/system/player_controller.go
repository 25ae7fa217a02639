package system

import (
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const defaultPlayerMoveSpeed = 90.0

// PlayerControllerSystem turns movement input into body velocity. Input is
// read every tick even while movement is locked, so nothing stale is applied
// when the lock lifts.
type PlayerControllerSystem struct {
	speedScale float64
}

func NewPlayerControllerSystem(speedScale float64) *PlayerControllerSystem {
	if speedScale <= 0 {
		speedScale = 1
	}
	return &PlayerControllerSystem{speedScale: speedScale}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input, body *component.PhysicsBody) {
		x, y := input.MoveX, input.MoveY

		if lock, ok := ecs.Get(w, e, component.MovementLockComponent.Kind()); ok && lock.Locked {
			haltMovement(w, e)
			return
		}

		speed := player.MoveSpeed
		if speed <= 0 {
			speed = defaultPlayerMoveSpeed
		}
		speed *= p.speedScale

		if body.Body != nil {
			nx, ny := common.Normalize(x, y)
			body.Body.SetVelocity(nx*speed, ny*speed)
		}

		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			if x < 0 {
				sprite.FlipX = true
			} else if x > 0 {
				sprite.FlipX = false
			}
		}

		setRunning(w, e, x != 0 || y != 0)
	})
}

// haltMovement zeroes the body's velocity and clears the running flag.
func haltMovement(w *ecs.World, e ecs.Entity) {
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetVelocity(0, 0)
	}
	setRunning(w, e, false)
}

func setRunning(w *ecs.World, e ecs.Entity, running bool) {
	anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if !ok {
		return
	}
	if anim.Params == nil {
		anim.Params = make(map[string]bool)
	}
	anim.Params[component.AnimParamRunning] = running
}
