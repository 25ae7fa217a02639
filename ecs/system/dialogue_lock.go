package system

import (
	"log"

	"github.com/milk9111/topdown/dialogue"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// DialogueLockSystem locks player movement for the length of every dialogue
// session. A player entity is subscribed to the runner's start and complete
// events when it first appears with a MovementLock, and released when it is
// destroyed, loses the component, or the system is closed.
type DialogueLockSystem struct {
	runner *dialogue.Runner
	subs   map[ecs.Entity][]dialogue.Subscription
}

func NewDialogueLockSystem(runner *dialogue.Runner) *DialogueLockSystem {
	if runner == nil {
		log.Printf("dialogue lock: no dialogue runner configured; movement will never lock")
	}
	return &DialogueLockSystem{
		runner: runner,
		subs:   make(map[ecs.Entity][]dialogue.Subscription),
	}
}

func (s *DialogueLockSystem) Update(w *ecs.World) {
	if s == nil || s.runner == nil || w == nil {
		return
	}

	for e := range s.subs {
		if !w.IsAlive(e) || !ecs.Has(w, e, component.MovementLockComponent.Kind()) {
			s.release(e)
		}
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.MovementLockComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, lock *component.MovementLock) {
		if _, ok := s.subs[e]; ok {
			return
		}
		s.subscribe(w, e, lock)
	})
}

// Subscribed reports whether e currently holds event subscriptions.
func (s *DialogueLockSystem) Subscribed(e ecs.Entity) bool {
	_, ok := s.subs[e]
	return ok
}

// Close releases every subscription.
func (s *DialogueLockSystem) Close() {
	if s == nil {
		return
	}
	for e := range s.subs {
		s.release(e)
	}
}

func (s *DialogueLockSystem) subscribe(w *ecs.World, e ecs.Entity, lock *component.MovementLock) {
	lock.Locked = s.runner.IsDialogueRunning()
	if lock.Locked {
		haltMovement(w, e)
	}

	start := s.runner.OnDialogueStart.AddListener(func() { lockMovement(w, e) })
	complete := s.runner.OnDialogueComplete.AddListener(func() { unlockMovement(w, e) })
	s.subs[e] = []dialogue.Subscription{start, complete}
}

func (s *DialogueLockSystem) release(e ecs.Entity) {
	for _, sub := range s.subs[e] {
		sub.Release()
	}
	delete(s.subs, e)
}

func lockMovement(w *ecs.World, e ecs.Entity) {
	lock, ok := ecs.Get(w, e, component.MovementLockComponent.Kind())
	if !ok {
		return
	}
	lock.Locked = true
	haltMovement(w, e)
}

func unlockMovement(w *ecs.World, e ecs.Entity) {
	if lock, ok := ecs.Get(w, e, component.MovementLockComponent.Kind()); ok {
		lock.Locked = false
	}
}
