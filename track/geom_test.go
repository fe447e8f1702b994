package track

import (
	"image"
	"math"
	"testing"
)

func TestPixelRectFullFrame(t *testing.T) {
	box := NewBoundingBox(0.5, 0.5, 1.0, 1.0)
	rect := box.PixelRect(image.Rect(0, 0, 100, 100))

	expected := image.Rect(0, 0, 100, 100)
	if rect != expected {
		t.Errorf("incorrect rect: %v, expected: %v", rect, expected)
	}
}

func TestPixelRectClampedAtCorner(t *testing.T) {
	// Unclamped this box would start at (-8;-8)
	box := NewBoundingBox(0.02, 0.02, 0.2, 0.2)
	bounds := image.Rect(0, 0, 100, 100)
	rect := box.PixelRect(bounds)

	if rect.Min.X < 0 || rect.Min.Y < 0 {
		t.Errorf("rect has negative origin: %v", rect)
	}
	if !rect.In(bounds) {
		t.Errorf("rect %v extends past frame bounds %v", rect, bounds)
	}
	if rect.Empty() {
		t.Errorf("rect should not be empty: %v", rect)
	}
}

func TestBoundingBoxValid(t *testing.T) {
	cases := []struct {
		box      BoundingBox
		expected bool
	}{
		{NewBoundingBox(0.5, 0.5, 0.1, 0.1), true},
		{NewBoundingBox(0.0, 0.0, 1.0, 1.0), true},
		{NewBoundingBox(math.NaN(), 0.5, 0.1, 0.1), false},
		{NewBoundingBox(0.5, math.Inf(1), 0.1, 0.1), false},
		{NewBoundingBox(-0.1, 0.5, 0.1, 0.1), false},
		{NewBoundingBox(0.5, 0.5, 1.1, 0.1), false},
	}
	for i, c := range cases {
		if got := c.box.Valid(); got != c.expected {
			t.Errorf("case %d: incorrect validity for %+v: %t, expected: %t", i, c.box, got, c.expected)
		}
	}
}

func TestBoundingBoxCenter(t *testing.T) {
	box := NewBoundingBox(0.25, 0.75, 0.1, 0.1)
	center := box.Center(image.Pt(640, 480))

	if center.X != 160.0 || center.Y != 360.0 {
		t.Errorf("incorrect center: %+v, expected: (160;360)", center)
	}
	pixel := center.Pixel()
	if pixel.X != 160 || pixel.Y != 360 {
		t.Errorf("incorrect pixel center: %v", pixel)
	}
}
