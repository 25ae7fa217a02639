package system

import (
	"testing"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

func TestSortingOrderFor(t *testing.T) {
	tests := []struct {
		y, offset float64
		want      int
	}{
		{0, 0, 0},
		{1.234, 0, 123},
		{1.25, 0.5, 175},
		{-2, 0, -200},
	}
	for _, tc := range tests {
		if got := SortingOrderFor(tc.y, tc.offset); got != tc.want {
			t.Errorf("SortingOrderFor(%v, %v) = %d, want %d", tc.y, tc.offset, got, tc.want)
		}
	}
}

func TestYSortAndDrawOrder(t *testing.T) {
	w := ecs.NewWorld()
	spawn := func(y float64, layer int, ysort bool) ecs.Entity {
		e := ecs.CreateEntity(w)
		mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{Y: y})
		mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{})
		mustAdd(t, w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer})
		if ysort {
			mustAdd(t, w, e, component.YSortComponent.Kind(), &component.YSort{})
		}
		return e
	}

	lower := spawn(80, 1, true)
	upper := spawn(20, 1, true)
	ground := spawn(500, 0, false)
	tie := spawn(20, 1, true)

	NewYSortSystem().Update(w)

	got := DrawOrder(w)
	want := []ecs.Entity{ground, upper, tie, lower}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw order %v, want %v", got, want)
		}
	}
}

func TestAnimationSwitchesAndBobs(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	anim := &component.Animator{
		Defs: map[string]component.AnimationDef{
			"idle": {Name: "idle", FrameCount: 1, FPS: 1, Loop: true},
			"run":  {Name: "run", FrameCount: 4, FPS: 60, BobPixels: 2, Loop: true},
		},
		Params: map[string]bool{},
	}
	mustAdd(t, w, e, component.AnimatorComponent.Kind(), anim)
	mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{})

	sys := NewAnimationSystem()
	sys.Update(w)
	if anim.Current != "idle" {
		t.Fatalf("expected idle, got %q", anim.Current)
	}

	anim.Params[component.AnimParamRunning] = true
	sys.Update(w)
	if anim.Current != "run" {
		t.Fatalf("expected run, got %q", anim.Current)
	}
	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	if sprite.OffsetY >= 0 {
		t.Fatalf("running should lift the sprite, offset=%v", sprite.OffsetY)
	}

	anim.Params[component.AnimParamRunning] = false
	sys.Update(w)
	if anim.Current != "idle" || sprite.OffsetY != 0 {
		t.Fatalf("expected idle with no bob, got %q offset=%v", anim.Current, sprite.OffsetY)
	}
}
