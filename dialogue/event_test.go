package dialogue

import "testing"

func TestEventListeners(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "persistent_fires_every_invoke",
			run: func(t *testing.T) {
				var ev Event
				calls := 0
				ev.AddListener(func() { calls++ })
				ev.Invoke()
				ev.Invoke()
				if calls != 2 {
					t.Fatalf("expected 2 calls, got %d", calls)
				}
			},
		},
		{
			name: "once_fires_exactly_once",
			run: func(t *testing.T) {
				var ev Event
				calls := 0
				sub := ev.AddOnceListener(func() { calls++ })
				ev.Invoke()
				ev.Invoke()
				ev.Invoke()
				if calls != 1 {
					t.Fatalf("expected 1 call, got %d", calls)
				}
				if sub.Active() {
					t.Fatalf("once listener should be gone after firing")
				}
				if ev.Len() != 0 {
					t.Fatalf("expected no listeners left, got %d", ev.Len())
				}
			},
		},
		{
			name: "once_survives_reentrant_invoke",
			run: func(t *testing.T) {
				var ev Event
				calls := 0
				ev.AddOnceListener(func() {
					calls++
					ev.Invoke()
				})
				ev.Invoke()
				if calls != 1 {
					t.Fatalf("expected 1 call under re-entrant invoke, got %d", calls)
				}
			},
		},
		{
			name: "release_removes_listener",
			run: func(t *testing.T) {
				var ev Event
				calls := 0
				sub := ev.AddListener(func() { calls++ })
				if !sub.Release() {
					t.Fatalf("first release should report true")
				}
				if sub.Release() {
					t.Fatalf("second release should report false")
				}
				ev.Invoke()
				if calls != 0 {
					t.Fatalf("released listener fired %d times", calls)
				}
			},
		},
		{
			name: "released_during_invoke_is_skipped",
			run: func(t *testing.T) {
				var ev Event
				var second Subscription
				secondCalls := 0
				ev.AddListener(func() { second.Release() })
				second = ev.AddListener(func() { secondCalls++ })
				ev.Invoke()
				if secondCalls != 0 {
					t.Fatalf("listener released mid-invoke still fired")
				}
			},
		},
		{
			name: "added_during_invoke_waits",
			run: func(t *testing.T) {
				var ev Event
				lateCalls := 0
				ev.AddOnceListener(func() {
					ev.AddListener(func() { lateCalls++ })
				})
				ev.Invoke()
				if lateCalls != 0 {
					t.Fatalf("listener added mid-invoke fired in the same invoke")
				}
				ev.Invoke()
				if lateCalls != 1 {
					t.Fatalf("expected late listener to fire on next invoke, got %d", lateCalls)
				}
			},
		},
		{
			name: "zero_subscription_release",
			run: func(t *testing.T) {
				var sub Subscription
				if sub.Release() || sub.Active() {
					t.Fatalf("zero subscription should be inert")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestSessionGate(t *testing.T) {
	var g SessionGate
	if !g.Acquire("a") {
		t.Fatalf("acquire on idle gate should succeed")
	}
	if g.Acquire("b") {
		t.Fatalf("second owner must be refused while gate is held")
	}
	if g.Release("b") {
		t.Fatalf("non-owner must not release the gate")
	}
	if !g.Active() || g.Owner() != "a" {
		t.Fatalf("expected gate held by a, got active=%v owner=%q", g.Active(), g.Owner())
	}
	if !g.Release("a") {
		t.Fatalf("owner release should succeed")
	}
	if g.Active() {
		t.Fatalf("gate should be idle after release")
	}
}
