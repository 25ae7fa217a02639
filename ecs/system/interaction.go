package system

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/topdown/dialogue"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// CommandFacePlayer is the dialogue command that turns a character toward the
// player it is talking to: `face_player [name]`.
const CommandFacePlayer = "face_player"

var errNoInteraction = errors.New("interaction: no active interaction")

// InteractionSystem starts a dialogue session when the player presses the
// interact button inside an interactable's zone. Each interactable moves
// Idle -> Active on a successful start and back to Idle when the runner
// reports completion.
type InteractionSystem struct {
	runner  *dialogue.Runner
	session *interactionSession
}

type interactionSession struct {
	world  *ecs.World
	entity ecs.Entity
}

func NewInteractionSystem(runner *dialogue.Runner) *InteractionSystem {
	s := &InteractionSystem{runner: runner}
	if runner == nil {
		log.Printf("interaction: no dialogue runner configured; interactions are disabled")
		return s
	}
	if err := runner.AddCommandHandler(CommandFacePlayer, s.facePlayerCommand); err != nil {
		log.Printf("interaction: register %s: %v", CommandFacePlayer, err)
	}
	return s
}

// Close unregisters the dialogue command.
func (s *InteractionSystem) Close() {
	if s == nil || s.runner == nil {
		return
	}
	s.runner.RemoveCommandHandler(CommandFacePlayer)
}

func (s *InteractionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !input.InteractPressed {
		return
	}

	ecs.ForEach2(w, component.InteractableComponent.Kind(), component.InteractionZoneComponent.Kind(), func(e ecs.Entity, _ *component.Interactable, zone *component.InteractionZone) {
		if !zone.InRange || zone.ActorEntity != uint64(player) {
			return
		}
		s.Interact(w, e)
	})
}

// Interact tries to start e's dialogue. It reports whether a session started.
func (s *InteractionSystem) Interact(w *ecs.World, e ecs.Entity) bool {
	it, ok := ecs.Get(w, e, component.InteractableComponent.Kind())
	if !ok || s.runner == nil || it.StartNode == "" {
		return false
	}
	if it.SessionActive || s.runner.IsDialogueRunning() {
		return false
	}

	if it.IsCharacter {
		SaveFacing(w, e)
	}
	it.SessionActive = true
	s.session = &interactionSession{world: w, entity: e}

	restore := s.runner.OnDialogueComplete.AddOnceListener(func() { s.restoreFacing(w, e) })
	finish := s.runner.OnDialogueComplete.AddOnceListener(func() { s.finishSession(w, e) })

	if err := s.runner.StartDialogue(it.StartNode); err != nil {
		log.Printf("interaction: entity=%d start node %q: %v", e, it.StartNode, err)
		restore.Release()
		finish.Release()
		it.SessionActive = false
		if it.IsCharacter {
			RestoreFacing(w, e)
		}
		s.session = nil
		return false
	}
	return true
}

func (s *InteractionSystem) restoreFacing(w *ecs.World, e ecs.Entity) {
	it, ok := ecs.Get(w, e, component.InteractableComponent.Kind())
	if !ok || !it.IsCharacter {
		return
	}
	RestoreFacing(w, e)
}

func (s *InteractionSystem) finishSession(w *ecs.World, e ecs.Entity) {
	if s.session != nil && s.session.world == w && s.session.entity == e {
		s.session = nil
	}
	it, ok := ecs.Get(w, e, component.InteractableComponent.Kind())
	if !ok {
		return
	}
	it.SessionActive = false
	s.incrementCount(it.CountVariable)
}

// incrementCount bumps the interaction counter. Stores other than the
// in-memory one are skipped.
func (s *InteractionSystem) incrementCount(name string) {
	if name == "" {
		return
	}
	storage, ok := s.runner.VariableStorage().(*dialogue.MemoryVariableStorage)
	if !ok {
		return
	}
	current, _ := storage.TryGetNumber(name)
	storage.SetValue(name, current+1)
}

func (s *InteractionSystem) facePlayerCommand(args []string) error {
	if s.session == nil {
		return errNoInteraction
	}
	w := s.session.world
	target := s.session.entity
	if len(args) > 0 {
		named, ok := findByName(w, args[0])
		if !ok {
			return fmt.Errorf("interaction: %s: no object named %q", CommandFacePlayer, args[0])
		}
		target = named
	}
	FaceTrackedActor(w, target)
	return nil
}

func findByName(w *ecs.World, name string) (ecs.Entity, bool) {
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if !found.Valid() && n.Value == name {
			found = e
		}
	})
	return found, found.Valid()
}
