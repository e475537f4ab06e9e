// Package camera maps the y-up dish plane onto the y-down screen.
package camera

// Camera looks at a point of the plane with a zoom factor. The screen
// center always shows (X, Y).
type Camera struct {
	X, Y float32
	Zoom float32

	ViewportW, ViewportH float32

	MinZoom, MaxZoom float32

	homeX, homeY float32
}

// New creates a camera on the origin at 1:1.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		Zoom:      1,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.25,
		MaxZoom:   4,
	}
}

// WorldToScreen converts a plane point to pixels.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return c.ViewportW/2 + (wx-c.X)*c.Zoom, c.ViewportH/2 - (wy-c.Y)*c.Zoom
}

// ScreenToWorld converts pixels to a plane point.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return c.X + (sx-c.ViewportW/2)/c.Zoom, c.Y - (sy-c.ViewportH/2)/c.Zoom
}

// Scale converts a plane length to pixels.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom
}

// IsVisible reports whether a circle may overlap the screen.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX && wy+radius >= minY && wy-radius <= maxY
}

// VisibleWorldBounds returns the plane rectangle shown on screen.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	hw := c.ViewportW / (2 * c.Zoom)
	hh := c.ViewportH / (2 * c.Zoom)
	return c.X - hw, c.Y - hh, c.X + hw, c.Y + hh
}

// Resize updates the viewport after a window resize.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW, c.ViewportH = viewportW, viewportH
}

// LookAt centers the camera on (x, y) and makes it the home position.
func (c *Camera) LookAt(x, y float32) {
	c.X, c.Y = x, y
	c.homeX, c.homeY = x, y
}

// Pan shifts the view by a screen-pixel delta.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y -= dy / c.Zoom
}

// SetZoom sets the zoom within [MinZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = max(c.MinZoom, min(zoom, c.MaxZoom))
}

// ZoomBy multiplies the zoom by factor about the screen center.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt multiplies the zoom by factor keeping the plane point under
// (sx, sy) fixed on screen.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X += wx - nx
	c.Y += wy - ny
}

// Reset returns to the home position at 1:1.
func (c *Camera) Reset() {
	c.X, c.Y = c.homeX, c.homeY
	c.Zoom = 1
}
