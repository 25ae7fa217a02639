package system

import (
	"math"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const (
	animIdle = "idle"
	animRun  = "run"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimatorComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, anim *component.Animator, sprite *component.Sprite) {
		want := animIdle
		if anim.Params[component.AnimParamRunning] {
			want = animRun
		}
		if anim.Current != want {
			anim.Current = want
			anim.Frame = 0
			anim.FrameTimer = 0
		}

		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 {
			sprite.OffsetY = 0
			return
		}

		ticksPerFrame := 1
		if def.FPS > 0 {
			ticksPerFrame = max(1, int(common.TPS/def.FPS))
		}

		anim.FrameTimer++
		if anim.FrameTimer >= ticksPerFrame {
			anim.FrameTimer = 0
			anim.Frame++
			if anim.Frame >= def.FrameCount {
				if def.Loop {
					anim.Frame = 0
				} else {
					anim.Frame = def.FrameCount - 1
				}
			}
		}

		phase := float64(anim.Frame) / float64(def.FrameCount)
		sprite.OffsetY = -def.BobPixels * math.Abs(math.Sin(math.Pi*phase))
	})
}
