package common

// Logical screen size of the sandbox, in pixels.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)
