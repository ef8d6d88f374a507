package types

// Instance is a named physical item with a three-dimensional extent.
// Accessors are pure reads and never fail.
type Instance interface {
	Name() string

	// Width is the extent along the X axis.
	Width() float64

	// Height is the extent along the Y axis.
	Height() float64

	// Length is the extent along the Z axis.
	Length() float64

	// Volume is always Width() * Height() * Length().
	Volume() float64
}
