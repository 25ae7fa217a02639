package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/dialogue"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const lockProgram = `
nodes:
  Hello:
    - line: "Hello."
`

func newLockRunner(t *testing.T) *dialogue.Runner {
	t.Helper()
	p, err := dialogue.ParseProgram([]byte(lockProgram))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return dialogue.NewRunner("main", p, nil, nil)
}

func newLockablePlayer(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 100})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.MovementLockComponent.Kind(), &component.MovementLock{})
	mustAdd(t, w, e, component.AnimatorComponent.Kind(), &component.Animator{Params: map[string]bool{}})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: cp.NewBody(1, cp.INFINITY)})
	return e
}

func TestDialogueLockFollowsSessions(t *testing.T) {
	runner := newLockRunner(t)
	w := ecs.NewWorld()
	player := newLockablePlayer(t, w)

	sys := NewDialogueLockSystem(runner)
	sys.Update(w)
	if !sys.Subscribed(player) {
		t.Fatalf("player should be subscribed after activation")
	}
	if runner.OnDialogueStart.Len() != 1 || runner.OnDialogueComplete.Len() != 1 {
		t.Fatalf("expected one start and one complete listener")
	}

	lock, _ := ecs.Get(w, player, component.MovementLockComponent.Kind())
	if lock.Locked {
		t.Fatalf("should start unlocked")
	}

	if err := runner.StartDialogue("Hello"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !lock.Locked {
		t.Fatalf("dialogue start should lock movement")
	}
	if err := runner.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if lock.Locked {
		t.Fatalf("dialogue completion should unlock movement")
	}

	// Repeated updates never subscribe twice.
	sys.Update(w)
	sys.Update(w)
	if runner.OnDialogueStart.Len() != 1 {
		t.Fatalf("expected a single start listener, got %d", runner.OnDialogueStart.Len())
	}
}

func TestDialogueLockActivatesLockedDuringSession(t *testing.T) {
	runner := newLockRunner(t)
	if err := runner.StartDialogue("Hello"); err != nil {
		t.Fatalf("start: %v", err)
	}

	w := ecs.NewWorld()
	player := newLockablePlayer(t, w)
	sys := NewDialogueLockSystem(runner)
	sys.Update(w)

	lock, _ := ecs.Get(w, player, component.MovementLockComponent.Kind())
	if !lock.Locked {
		t.Fatalf("activating mid-session should lock immediately")
	}
	if err := runner.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if lock.Locked {
		t.Fatalf("completion should unlock")
	}
}

func TestDialogueLockReleasesOnDeactivation(t *testing.T) {
	tests := []struct {
		name       string
		deactivate func(w *ecs.World, sys *DialogueLockSystem, e ecs.Entity)
	}{
		{"destroyed", func(w *ecs.World, sys *DialogueLockSystem, e ecs.Entity) {
			ecs.DestroyEntity(w, e)
			sys.Update(w)
		}},
		{"component_removed", func(w *ecs.World, sys *DialogueLockSystem, e ecs.Entity) {
			ecs.Remove(w, e, component.MovementLockComponent.Kind())
			sys.Update(w)
		}},
		{"closed", func(_ *ecs.World, sys *DialogueLockSystem, _ ecs.Entity) {
			sys.Close()
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runner := newLockRunner(t)
			w := ecs.NewWorld()
			player := newLockablePlayer(t, w)
			sys := NewDialogueLockSystem(runner)
			sys.Update(w)

			tc.deactivate(w, sys, player)
			if sys.Subscribed(player) {
				t.Fatalf("subscription should be released")
			}
			if runner.OnDialogueStart.Len() != 0 || runner.OnDialogueComplete.Len() != 0 {
				t.Fatalf("listeners left behind: start=%d complete=%d", runner.OnDialogueStart.Len(), runner.OnDialogueComplete.Len())
			}
			if err := runner.StartDialogue("Hello"); err != nil {
				t.Fatalf("start: %v", err)
			}
		})
	}
}

func TestDialogueLockWithoutRunner(t *testing.T) {
	w := ecs.NewWorld()
	player := newLockablePlayer(t, w)
	sys := NewDialogueLockSystem(nil)
	sys.Update(w)
	if sys.Subscribed(player) {
		t.Fatalf("nothing to subscribe to without a runner")
	}
	sys.Close()
}
