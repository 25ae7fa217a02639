package component

type Camera struct {
	TargetName string
	Zoom       float64
	// Smoothness in (0,1]; 1 snaps to the target every tick.
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()
