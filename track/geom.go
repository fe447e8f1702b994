package track

import (
	"image"
	"math"
)

// Point is a 2D position in pixel space.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

// Pixel truncates the point to integer pixel coordinates.
func (p Point) Pixel() image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// BoundingBox is a detection bounding box in normalized image coordinates:
// center position and size, each component in [0;1].
type BoundingBox struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

func NewBoundingBox(centerX, centerY, width, height float64) BoundingBox {
	return BoundingBox{
		CenterX: centerX,
		CenterY: centerY,
		Width:   width,
		Height:  height,
	}
}

// Valid reports whether every component is finite and within [0;1].
func (b BoundingBox) Valid() bool {
	for _, v := range [4]float64{b.CenterX, b.CenterY, b.Width, b.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0.0 || v > 1.0 {
			return false
		}
	}
	return true
}

// Center returns the box center scaled to the given frame size.
func (b BoundingBox) Center(frameSize image.Point) Point {
	return Point{
		X: b.CenterX * float64(frameSize.X),
		Y: b.CenterY * float64(frameSize.Y),
	}
}

// PixelRect converts the normalized box to an absolute pixel rectangle and
// clamps it to the frame bounds, so boxes near the frame edges never yield
// negative or out-of-range crop coordinates.
func (b BoundingBox) PixelRect(bounds image.Rectangle) image.Rectangle {
	frameW := float64(bounds.Dx())
	frameH := float64(bounds.Dy())

	centerX := int(b.CenterX * frameW)
	centerY := int(b.CenterY * frameH)
	w := int(b.Width * frameW)
	h := int(b.Height * frameH)

	x := centerX - w/2
	y := centerY - h/2
	rect := image.Rect(x, y, x+w, y+h).Add(bounds.Min)
	return rect.Intersect(bounds)
}
