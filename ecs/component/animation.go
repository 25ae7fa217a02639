package component

type AnimationDef struct {
	Name       string
	FrameCount int
	FPS        float64
	// BobPixels is the peak vertical offset applied across the cycle.
	BobPixels float64
	Loop      bool
}

// Animator picks a clip from boolean parameters, in the manner of a state
// machine controller: "isRunning" selects "run", otherwise "idle".
type Animator struct {
	Defs       map[string]AnimationDef
	Params     map[string]bool
	Current    string
	Frame      int
	FrameTimer int
}

var AnimatorComponent = NewComponent[Animator]()

const AnimParamRunning = "isRunning"
