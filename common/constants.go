package common

const (
	BaseWidth  = 1000
	BaseHeight = 850

	// TPS is the fixed Ebitengine update rate the simulation is stepped at.
	TPS = 60
)
