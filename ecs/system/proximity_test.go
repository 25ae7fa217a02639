package system

import (
	"testing"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

func TestZoneEnterExit(t *testing.T) {
	const (
		player = ecs.Entity(1)
		other  = ecs.Entity(2)
	)
	tests := []struct {
		name        string
		apply       func(z *component.InteractionZone)
		wantInRange bool
		wantActor   ecs.Entity
	}{
		{
			name:        "player_enters",
			apply:       func(z *component.InteractionZone) { ZoneEnter(z, player, true) },
			wantInRange: true,
			wantActor:   player,
		},
		{
			name:  "non_player_ignored",
			apply: func(z *component.InteractionZone) { ZoneEnter(z, other, false) },
		},
		{
			name: "enter_then_exit",
			apply: func(z *component.InteractionZone) {
				ZoneEnter(z, player, true)
				ZoneExit(z, player)
			},
		},
		{
			name: "exit_by_untracked_actor",
			apply: func(z *component.InteractionZone) {
				ZoneEnter(z, player, true)
				ZoneExit(z, other)
			},
			wantInRange: true,
			wantActor:   player,
		},
		{
			name:  "exit_without_enter",
			apply: func(z *component.InteractionZone) { ZoneExit(z, player) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			z := &component.InteractionZone{}
			tc.apply(z)
			if z.InRange != tc.wantInRange {
				t.Fatalf("InRange=%v, want %v", z.InRange, tc.wantInRange)
			}
			if ecs.Entity(z.ActorEntity) != tc.wantActor {
				t.Fatalf("ActorEntity=%d, want %d", z.ActorEntity, tc.wantActor)
			}
			if z.InRange != (z.ActorEntity != 0) {
				t.Fatalf("InRange must be true exactly when an actor is tracked")
			}
		})
	}
}

func TestProximitySystemConsumesEvents(t *testing.T) {
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	npc := ecs.CreateEntity(w)
	_ = ecs.Add(w, npc, component.InteractionZoneComponent.Kind(), &component.InteractionZone{Radius: 10})
	crate := ecs.CreateEntity(w)

	sys := NewProximitySystem()
	zone, _ := ecs.Get(w, npc, component.InteractionZoneComponent.Kind())

	w.Events().Push(ecs.Event{Type: ecs.EventZoneEnter, Data: ecs.ZoneEvent{Zone: npc, Actor: crate}})
	sys.Update(w)
	if zone.InRange {
		t.Fatalf("a non-player actor must not put the zone in range")
	}

	w.Events().Push(ecs.Event{Type: ecs.EventZoneEnter, Data: ecs.ZoneEvent{Zone: npc, Actor: player}})
	sys.Update(w)
	if !zone.InRange || ecs.Entity(zone.ActorEntity) != player {
		t.Fatalf("expected player tracked, got %+v", zone)
	}

	w.Events().Push(ecs.Event{Type: ecs.EventZoneExit, Data: ecs.ZoneEvent{Zone: npc, Actor: crate}})
	sys.Update(w)
	if !zone.InRange {
		t.Fatalf("exit of an untracked actor must not clear the zone")
	}

	ecs.DestroyEntity(w, player)
	sys.Update(w)
	if zone.InRange || zone.ActorEntity != 0 {
		t.Fatalf("destroyed actor should be dropped, got %+v", zone)
	}
}
