// Package preprocess scales camera frames to the fixed input size of the
// detection model whilst keeping enough information to translate detection
// results back into source image coordinates.
package preprocess

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Resizer handles letterbox scaling of a source image to the model input
// tensor size
type Resizer struct {
	// srcWidth is the width of the source image
	srcWidth int
	// srcHeight is the height of the source image
	srcHeight int
	// destWidth is the width to scale to
	destWidth int
	// destHeight is the height to scale to
	destHeight int
	// tempMat is a Mat used during the resize process
	tempMat gocv.Mat
	// letterbox padding applied on each axis
	xPad int
	yPad int
	// scale is the uniform scale factor applied to the source image
	scale float32
	// dimensions of the scaled image before padding
	resizeW int
	resizeH int
}

// NewResizer returns a resizer for scaling an image of the given source
// dimensions to the model input tensor dimensions
func NewResizer(srcWidth, srcHeight, destWidth, destHeight int) *Resizer {
	r := &Resizer{
		srcWidth:   srcWidth,
		srcHeight:  srcHeight,
		destWidth:  destWidth,
		destHeight: destHeight,
		tempMat:    gocv.NewMat(),
	}

	// precalculate scaling dimensions
	r.preCalc()

	return r
}

// Close frees memory allocated during the resize process
func (r *Resizer) Close() error {
	return r.tempMat.Close()
}

// preCalc computes the uniform scale and padding needed to fit the source
// aspect ratio inside the destination dimensions
func (r *Resizer) preCalc() {

	r.resizeW = r.destWidth
	r.resizeH = r.destHeight

	scaleW := float32(r.destWidth) / float32(r.srcWidth)
	scaleH := float32(r.destHeight) / float32(r.srcHeight)
	r.scale = scaleH

	if scaleW < scaleH {
		r.scale = scaleW
		r.resizeH = int(float32(r.srcHeight) * r.scale)
	} else {
		r.resizeW = int(float32(r.srcWidth) * r.scale)
	}

	r.xPad = (r.destWidth - r.resizeW) / 2
	r.yPad = (r.destHeight - r.resizeH) / 2
}

// LetterBoxResize resizes the source image to the destination dimensions
// whilst maintaining aspect ratio, padding the leftover border with the
// given color
func (r *Resizer) LetterBoxResize(src gocv.Mat, dest *gocv.Mat, c color.RGBA) {

	gocv.Resize(src, &r.tempMat, image.Pt(r.resizeW, r.resizeH),
		0, 0, gocv.InterpolationArea)

	gocv.CopyMakeBorder(r.tempMat, dest, r.yPad, r.destHeight-r.resizeH-r.yPad,
		r.xPad, r.destWidth-r.resizeW-r.xPad, gocv.BorderConstant, c)
}

// TranslateBox maps a bounding box from letterboxed tensor space back into
// source image pixel space, clamping to the source image dimensions
func (r *Resizer) TranslateBox(left, top, right, bottom float32) (int, int, int, int) {

	toSrcX := func(x float32) int {
		v := (x - float32(r.xPad)) / r.scale
		return clampInt(int(v), 0, r.srcWidth)
	}

	toSrcY := func(y float32) int {
		v := (y - float32(r.yPad)) / r.scale
		return clampInt(int(v), 0, r.srcHeight)
	}

	return toSrcX(left), toSrcY(top), toSrcX(right), toSrcY(bottom)
}

// ScaleFactor returns the scale factor used in letterbox resize
func (r *Resizer) ScaleFactor() float32 {
	return r.scale
}

// XPad returns the x padding used in letterbox resize
func (r *Resizer) XPad() int {
	return r.xPad
}

// YPad returns the y padding used in letterbox resize
func (r *Resizer) YPad() int {
	return r.yPad
}

func clampInt(v, min, max int) int {

	if v < min {
		return min
	}

	if v > max {
		return max
	}

	return v
}
