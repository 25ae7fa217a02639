package component

type Player struct {
	MoveSpeed float64
}

var PlayerComponent = NewComponent[Player]()

// MovementLock suspends input-driven motion while a dialogue session runs.
type MovementLock struct {
	Locked bool
}

var MovementLockComponent = NewComponent[MovementLock]()
