package common

const (
	BaseWidth  = 640
	BaseHeight = 360

	// TPS is the fixed tick rate the systems are tuned for.
	TPS = 60
)
