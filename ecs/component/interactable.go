package component

type FacingDirection int

const (
	FacingRight FacingDirection = iota
	FacingLeft
)

func (d FacingDirection) String() string {
	if d == FacingLeft {
		return "left"
	}
	return "right"
}

// Interactable is an object the player can talk to when in range.
type Interactable struct {
	// IsCharacter enables facing control.
	IsCharacter bool
	StartNode   string
	// CountVariable, when set, names the dialogue variable incremented once
	// per completed session.
	CountVariable string

	// SessionActive is true from a successful trigger until completion.
	SessionActive bool
}

var InteractableComponent = NewComponent[Interactable]()

// InteractionZone is the proximity state of an interactable. ActorEntity is a
// non-owning reference (ecs.Entity is uint64) to the single tracked actor.
type InteractionZone struct {
	Radius      float64
	InRange     bool
	ActorEntity uint64
}

var InteractionZoneComponent = NewComponent[InteractionZone]()

// Facing holds the character's authored orientation and the mirror snapshot
// taken when a session starts.
type Facing struct {
	Default  FacingDirection
	Saved    bool
	HasSaved bool
}

var FacingComponent = NewComponent[Facing]()
