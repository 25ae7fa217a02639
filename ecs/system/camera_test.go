package system

import (
	"testing"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

func TestCameraFollowsAndClamps(t *testing.T) {
	tests := []struct {
		name         string
		targetX      float64
		targetY      float64
		wantX, wantY float64
	}{
		{"centered", 1000, 500, 1000 - common.BaseWidth/2, 500 - common.BaseHeight/2},
		{"clamped_top_left", 10, 10, 0, 0},
		{"clamped_bottom_right", 1990, 990, 2000 - common.BaseWidth, 1000 - common.BaseHeight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := ecs.CreateEntity(w)
			mustAdd(t, w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
			mustAdd(t, w, player, component.TransformComponent.Kind(), &component.Transform{X: tc.targetX, Y: tc.targetY})

			bounds := ecs.CreateEntity(w)
			mustAdd(t, w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 2000, Height: 1000})

			cam := ecs.CreateEntity(w)
			mustAdd(t, w, cam, component.CameraComponent.Kind(), &component.Camera{TargetName: "player", Zoom: 1, Smoothness: 1})
			camT := &component.Transform{}
			mustAdd(t, w, cam, component.TransformComponent.Kind(), camT)

			NewCameraSystem().Update(w)
			if camT.X != tc.wantX || camT.Y != tc.wantY {
				t.Fatalf("camera at (%v,%v), want (%v,%v)", camT.X, camT.Y, tc.wantX, tc.wantY)
			}
		})
	}
}
