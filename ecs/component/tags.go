package component

// PlayerTag marks the entity that interaction zones accept as an actor.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Wall marks static level geometry.
type Wall struct{}

var WallComponent = NewComponent[Wall]()

// Name is the authored object name; dialogue commands address objects by it.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
