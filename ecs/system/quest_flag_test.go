package system

import (
	"testing"

	"github.com/milk9111/topdown/dialogue"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

func TestQuestFlagSetsVariable(t *testing.T) {
	runner := dialogue.NewRunner("main", nil, nil, nil)
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	mustAdd(t, w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	input := &component.Input{}
	mustAdd(t, w, player, component.InputComponent.Kind(), input)

	sys := NewQuestFlagSystem(runner, "QuestComplete_BigDemon")
	sys.Update(w)
	if _, ok := runner.VariableStorage().GetValue("$QuestComplete_BigDemon"); ok {
		t.Fatalf("flag should not be set without the key press")
	}

	input.QuestPressed = true
	sys.Update(w)
	v, ok := runner.VariableStorage().GetValue("$QuestComplete_BigDemon")
	if !ok || v != true {
		t.Fatalf("expected flag set, got %v ok=%v", v, ok)
	}
}
