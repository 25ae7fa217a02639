package system

import (
	"log"

	"github.com/milk9111/topdown/dialogue"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// QuestFlagSystem is a debug shortcut: the quest key sets a boolean dialogue
// variable so quest-gated dialogue can be reached without playing through.
type QuestFlagSystem struct {
	runner *dialogue.Runner
	flag   string
}

func NewQuestFlagSystem(runner *dialogue.Runner, flag string) *QuestFlagSystem {
	return &QuestFlagSystem{runner: runner, flag: dialogue.VariableName(flag)}
}

func (s *QuestFlagSystem) Update(w *ecs.World) {
	if s == nil || s.runner == nil || s.flag == "" || w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !input.QuestPressed {
		return
	}
	storage, ok := s.runner.VariableStorage().(*dialogue.MemoryVariableStorage)
	if !ok {
		return
	}
	storage.SetValue(s.flag, true)
	log.Printf("quest: set %s=true", s.flag)
}
