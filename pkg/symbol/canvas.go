package symbol

import "image/color"

// Point is a position on the drawing surface, in surface units.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Extents are the ink extents of a run of text, following the cairo
// convention: bearings are offsets from the text origin (on the baseline)
// to the top-left of the inked area, so YBearing is negative for glyphs
// that rise above the baseline.
type Extents struct {
	XBearing float64
	YBearing float64
	Width    float64
	Height   float64
	XAdvance float64
}

// Measurer reports text extents without needing a drawing surface.
type Measurer interface {
	Measure(text string) Extents
}

// Canvas is the vector drawing surface a symbol is rendered onto.
//
// Save pushes the graphics state (colour, line width, current point) and
// Restore pops it. Calls must nest.
type Canvas interface {
	Save()
	Restore()

	SetColor(c color.Color)
	SetLineWidth(w float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	Rectangle(x, y, w, h float64)
	Stroke()

	// FillText paints text left-to-right with its baseline origin at (x, y).
	FillText(text string, x, y float64)
}

// scoped runs fn between Save and Restore. Restore runs even if fn panics.
func scoped(c Canvas, fn func()) {
	c.Save()
	defer c.Restore()
	fn()
}
