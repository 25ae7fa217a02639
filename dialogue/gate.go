package dialogue

// SessionGate is the shared "a dialogue is running" flag. Every Runner that
// must not overlap with another is given the same gate; at most one owner
// holds it at a time.
type SessionGate struct {
	active bool
	owner  string
}

// Acquire takes the gate for owner. It fails if any owner already holds it.
func (g *SessionGate) Acquire(owner string) bool {
	if g == nil || g.active {
		return false
	}
	g.active = true
	g.owner = owner
	return true
}

// Release frees the gate if owner holds it.
func (g *SessionGate) Release(owner string) bool {
	if g == nil || !g.active || g.owner != owner {
		return false
	}
	g.active = false
	g.owner = ""
	return true
}

func (g *SessionGate) Active() bool {
	return g != nil && g.active
}

func (g *SessionGate) Owner() string {
	if g == nil {
		return ""
	}
	return g.owner
}
