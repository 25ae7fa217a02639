package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const stickDeadzone = 0.2

// InputSystem polls the keyboard and first gamepad once per tick and writes
// the result into every Input component. Reload and pause presses also spawn
// one-shot request entities for the game loop.
type InputSystem struct {
	poll func() component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{poll: pollDevices}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.poll == nil {
		return
	}

	state := i.poll()

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = state
	})

	if state.ReloadPressed {
		if e := ecs.CreateEntity(w); e.Valid() {
			_ = ecs.Add(w, e, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{})
		}
	}
	if state.PausePressed {
		if e := ecs.CreateEntity(w); e.Valid() {
			_ = ecs.Add(w, e, component.PauseRequestComponent.Kind(), &component.PauseRequest{})
		}
	}
}

func pollDevices() component.Input {
	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY += 1
	}

	in.InteractPressed = inpututil.IsKeyJustPressed(ebiten.KeyZ)
	in.AdvancePressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyZ)
	in.OptionUp = inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW)
	in.OptionDown = inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS)
	in.ReloadPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	in.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	in.QuestPressed = inpututil.IsKeyJustPressed(ebiten.KeyL)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(lx) > stickDeadzone {
			in.MoveX = lx
		}
		if math.Abs(ly) > stickDeadzone {
			in.MoveY = ly
		}

		south := inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.InteractPressed = in.InteractPressed || south
		in.AdvancePressed = in.AdvancePressed || south
		in.OptionUp = in.OptionUp || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftTop)
		in.OptionDown = in.OptionDown || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftBottom)
		in.PausePressed = in.PausePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	in.MoveX = clampAxis(in.MoveX)
	in.MoveY = clampAxis(in.MoveY)
	return in
}

func clampAxis(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
