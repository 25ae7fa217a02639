package component

// Input stores per-tick input state for an entity.
type Input struct {
	MoveX float64
	MoveY float64

	InteractPressed bool
	AdvancePressed  bool
	OptionUp        bool
	OptionDown      bool
	ReloadPressed   bool
	PausePressed    bool
	QuestPressed    bool
}

var InputComponent = NewComponent[Input]()
