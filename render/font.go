package render

import (
	"image/color"

	"gocv.io/x/gocv"
)

// Font defines the parameters for rendering overlay text on an image
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
}

// Green is the default overlay color
var Green = color.RGBA{R: 0, G: 255, B: 0, A: 0}

// DefaultFont returns the default overlay font settings
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     Green,
		Thickness: 2,
	}
}
