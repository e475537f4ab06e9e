package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws themed panel elements. Row helpers return the y of the
// next row.
type Renderer struct {
	Theme Theme
}

func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// valueGutter is the space right of a bar reserved for its readout.
const valueGutter = 44

func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	r.label(x, y, label)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar shows a level in [0, 1] as a percentage, coloured low to high.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32) int32 {
	f := fraction(value, 1)
	r.meter(x, y, width, label, f, r.levelColor(f), fmt.Sprintf("%3.0f%%", f*100))
	return y + r.Theme.LineHeight + 2
}

// DrawCountBar shows count as a share of total.
func (r *Renderer) DrawCountBar(x, y int32, label string, count, total int, fill rl.Color, width int32) int32 {
	r.meter(x, y, width, label, fraction(float32(count), float32(total)), fill, fmt.Sprint(count))
	return y + r.Theme.LineHeight
}

func (r *Renderer) DrawCentered(text string, cx, y, size int32, color rl.Color) {
	rl.DrawText(text, cx-rl.MeasureText(text, size)/2, y, size, color)
}

func (r *Renderer) label(x, y int32, text string) {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

func (r *Renderer) meter(x, y, width int32, label string, f float32, fill rl.Color, readout string) {
	left := x + r.Theme.LabelWidth
	span := width - r.Theme.LabelWidth - valueGutter

	r.label(x, y, label)
	rl.DrawRectangle(left, y+2, span, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(left, y+2, int32(float32(span)*f), r.Theme.BarHeight, fill)
	rl.DrawText(readout, left+span+6, y, r.Theme.FontSize, r.Theme.ValueColor)
}

func (r *Renderer) levelColor(f float32) rl.Color {
	if f >= 0.6 {
		return r.Theme.BarFillHigh
	}
	if f >= 0.3 {
		return r.Theme.BarFillMedium
	}
	return r.Theme.BarFillLow
}

// fraction returns v/total clamped to [0, 1]; 0 when total is not positive.
func fraction(v, total float32) float32 {
	if total <= 0 {
		return 0
	}
	return max(0, min(v/total, 1))
}
