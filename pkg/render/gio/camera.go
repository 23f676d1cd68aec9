package gio

import (
	"image"

	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

const (
	minZoom = 0.05
	maxZoom = 200
)

// Camera maps page units onto window pixels.
type Camera struct {
	// Center is the page point shown in the middle of the screen.
	CenterX, CenterY float64
	// Zoom is pixels per page unit.
	Zoom float64

	ScreenWidth, ScreenHeight int
}

// NewCamera returns a camera at zoom 1 looking at the page origin.
func NewCamera() Camera {
	return Camera{Zoom: 1}
}

// SetScreen updates the window size.
func (c *Camera) SetScreen(size image.Point) {
	c.ScreenWidth, c.ScreenHeight = size.X, size.Y
}

// WorldToScreen converts a page point to pixels.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	return (x-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2,
		(y-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2
}

// ScreenToWorld converts pixels to a page point.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx-float64(c.ScreenWidth)/2)/c.Zoom + c.CenterX,
		(sy-float64(c.ScreenHeight)/2)/c.Zoom + c.CenterY
}

// Pan moves the view by a pixel delta.
func (c *Camera) Pan(dx, dy float64) {
	c.CenterX -= dx / c.Zoom
	c.CenterY -= dy / c.Zoom
}

// ZoomAt scales by factor keeping the page point under (sx, sy) in place.
func (c *Camera) ZoomAt(sx, sy, factor float64) {
	wx, wy := c.ScreenToWorld(sx, sy)

	c.Zoom *= factor
	if c.Zoom < minZoom {
		c.Zoom = minZoom
	}
	if c.Zoom > maxZoom {
		c.Zoom = maxZoom
	}

	nx, ny := c.ScreenToWorld(sx, sy)
	c.CenterX += wx - nx
	c.CenterY += wy - ny
}

// Fit centres r and zooms so it fills 90% of the smaller screen axis.
func (c *Camera) Fit(r symbol.Rect) {
	if r.W <= 0 || r.H <= 0 || c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return
	}
	c.CenterX = r.X + r.W/2
	c.CenterY = r.Y + r.H/2
	c.Zoom = float64(FitScale(r.W, r.H, image.Pt(c.ScreenWidth, c.ScreenHeight))) * 0.9
}
