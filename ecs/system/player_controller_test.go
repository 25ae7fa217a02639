package system

import (
	"math"
	"testing"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

func TestPlayerControllerMovement(t *testing.T) {
	tests := []struct {
		name        string
		moveX       float64
		moveY       float64
		locked      bool
		wantVX      float64
		wantVY      float64
		wantRunning bool
		wantFlip    bool
	}{
		{name: "idle"},
		{name: "right", moveX: 1, wantVX: 100, wantRunning: true},
		{name: "left_flips", moveX: -1, wantVX: -100, wantRunning: true, wantFlip: true},
		{name: "down", moveY: 1, wantVY: 100, wantRunning: true},
		{name: "diagonal_normalized", moveX: 1, moveY: 1, wantVX: 100 / math.Sqrt2, wantVY: 100 / math.Sqrt2, wantRunning: true},
		{name: "locked_ignores_input", moveX: 1, moveY: -1, locked: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := newLockablePlayer(t, w)
			mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{})

			input, _ := ecs.Get(w, e, component.InputComponent.Kind())
			input.MoveX, input.MoveY = tc.moveX, tc.moveY
			lock, _ := ecs.Get(w, e, component.MovementLockComponent.Kind())
			lock.Locked = tc.locked

			body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			body.Body.SetVelocity(50, 50)

			NewPlayerControllerSystem(1).Update(w)

			v := body.Body.Velocity()
			if math.Abs(v.X-tc.wantVX) > 1e-9 || math.Abs(v.Y-tc.wantVY) > 1e-9 {
				t.Fatalf("velocity=(%v,%v), want (%v,%v)", v.X, v.Y, tc.wantVX, tc.wantVY)
			}
			anim, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
			if anim.Params[component.AnimParamRunning] != tc.wantRunning {
				t.Fatalf("isRunning=%v, want %v", anim.Params[component.AnimParamRunning], tc.wantRunning)
			}
			sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
			if sprite.FlipX != tc.wantFlip {
				t.Fatalf("FlipX=%v, want %v", sprite.FlipX, tc.wantFlip)
			}
		})
	}
}

func TestPlayerControllerSpeedScale(t *testing.T) {
	w := ecs.NewWorld()
	e := newLockablePlayer(t, w)
	input, _ := ecs.Get(w, e, component.InputComponent.Kind())
	input.MoveX = 1

	NewPlayerControllerSystem(2).Update(w)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if v := body.Body.Velocity(); v.X != 200 {
		t.Fatalf("expected scaled speed 200, got %v", v.X)
	}
}
