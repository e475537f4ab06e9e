// Package renderer draws simulation sprites and plays sound cues with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/raeleus/superbug/camera"
	"github.com/raeleus/superbug/components"
	"github.com/raeleus/superbug/entities"
	"github.com/raeleus/superbug/systems"
	"github.com/raeleus/superbug/traits"
)

// GermRadius is the drawn body radius of a germ in world units.
const GermRadius = 5

var (
	dishGlass  = rl.Color{R: 210, G: 225, B: 230, A: 60}
	dishRim    = rl.Color{R: 220, G: 235, B: 240, A: 220}
	dishAgar   = rl.Color{R: 235, G: 205, B: 120, A: 40}
	crackColor = rl.Color{R: 40, G: 40, B: 45, A: 255}
)

// Presenter implements systems.Presenter by drawing each sprite immediately.
// Calls must happen between rl.BeginDrawing and rl.EndDrawing.
type Presenter struct {
	Camera *camera.Camera

	palette []rl.Color
}

// NewPresenter creates a presenter with a colour per germ variant.
func NewPresenter(cam *camera.Camera, variants int) *Presenter {
	return &Presenter{Camera: cam, palette: Palette(variants)}
}

// Palette spreads n germ colours evenly around the hue wheel.
func Palette(n int) []rl.Color {
	if n < 1 {
		n = 1
	}
	out := make([]rl.Color, n)
	for i := range out {
		hue := float32(i) * 360 / float32(n)
		out[i] = rl.ColorFromHSV(hue, 0.65, 0.9)
	}
	return out
}

// VariantColor returns the colour for a visual variant (1-based).
func (p *Presenter) VariantColor(v traits.Variant) rl.Color {
	i := int(v) - 1
	if i < 0 || i >= len(p.palette) {
		return rl.LightGray
	}
	return p.palette[i]
}

// Submit draws one sprite.
func (p *Presenter) Submit(s systems.Sprite) {
	switch s.Kind {
	case systems.SpriteDish:
		p.drawDish(s)
	case systems.SpriteGerm:
		p.drawGerm(s)
	case systems.SpriteScientist:
		p.drawScientist(s)
	case systems.SpriteSiren:
		p.drawSiren(s)
	}
}

func (p *Presenter) drawGerm(s systems.Sprite) {
	cam := p.Camera
	if !cam.IsVisible(s.X, s.Y, GermRadius*2) {
		return
	}
	x, y := cam.WorldToScreen(s.X, s.Y)
	r := cam.Scale(GermRadius)
	color := p.VariantColor(s.Variant)

	// Capsule body: two lobes along the rotation axis
	rad := float64(s.Rotation) * math.Pi / 180
	dx := float32(math.Cos(rad)) * r * 0.6
	dy := -float32(math.Sin(rad)) * r * 0.6
	rl.DrawCircleV(rl.Vector2{X: x - dx, Y: y - dy}, r, color)
	rl.DrawCircleV(rl.Vector2{X: x + dx, Y: y + dy}, r, color)
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, r*0.35, rl.Fade(rl.Black, 0.35))
}

func (p *Presenter) drawDish(s systems.Sprite) {
	cam := p.Camera
	x, y := cam.WorldToScreen(s.X, s.Y)
	center := rl.Vector2{X: x, Y: y}
	r := cam.Scale(s.Radius + GermRadius*2)

	rl.DrawCircleV(center, r, dishGlass)
	for _, a := range s.Tracks {
		if tint, ok := trackTint(a); ok {
			rl.DrawCircleV(center, r, tint)
		}
	}
	rl.DrawRing(center, r, r+cam.Scale(6), 0, 360, 64, dishRim)

	if len(s.Tracks) > entities.TrackDish && s.Tracks[entities.TrackDish].Name == "cracked" {
		drawCracks(center, r)
	}
}

// trackTint maps a dish animation to an overlay colour. One-shot effects
// fade out over their duration.
func trackTint(a components.Animation) (rl.Color, bool) {
	var c rl.Color
	switch a.Name {
	case "hot":
		c = rl.Color{R: 255, G: 120, B: 40, A: 50}
	case "cold":
		c = rl.Color{R: 80, G: 160, B: 255, A: 50}
	case "agar":
		c = dishAgar
	case "medicine":
		c = rl.Color{R: 90, G: 220, B: 140, A: 90}
	case "peroxide":
		c = rl.Color{R: 240, G: 240, B: 255, A: 110}
	case "bleach":
		c = rl.Color{R: 240, G: 230, B: 90, A: 110}
	default:
		return c, false
	}
	if !a.Loop {
		fade := 1 - a.Time/entities.EffectDuration
		if fade <= 0 {
			return c, false
		}
		c.A = uint8(float32(c.A) * fade)
	}
	return c, true
}

func drawCracks(center rl.Vector2, r float32) {
	for i := 0; i < 5; i++ {
		angle := float64(i)*72 + 17
		prev := center
		for step := 1; step <= 4; step++ {
			bend := angle + float64((step%2)*2-1)*9
			rad := bend * math.Pi / 180
			d := r * float32(step) / 4
			next := rl.Vector2{
				X: center.X + float32(math.Cos(rad))*d,
				Y: center.Y - float32(math.Sin(rad))*d,
			}
			rl.DrawLineEx(prev, next, 2, crackColor)
			prev = next
		}
	}
}

func (p *Presenter) drawScientist(s systems.Sprite) {
	x, y := p.Camera.WorldToScreen(s.X, s.Y)
	var t float32
	if len(s.Tracks) > 0 {
		t = s.Tracks[0].Time
	}
	stride := float32(math.Sin(float64(t)*14)) * 10

	coat := rl.RayWhite
	rl.DrawCircleV(rl.Vector2{X: x, Y: y - 46}, 10, rl.Beige)
	rl.DrawRectangleRounded(rl.Rectangle{X: x - 12, Y: y - 36, Width: 24, Height: 40}, 0.3, 4, coat)
	rl.DrawLineEx(rl.Vector2{X: x - 5, Y: y + 4}, rl.Vector2{X: x - 5 + stride, Y: y + 26}, 4, rl.DarkGray)
	rl.DrawLineEx(rl.Vector2{X: x + 5, Y: y + 4}, rl.Vector2{X: x + 5 - stride, Y: y + 26}, 4, rl.DarkGray)
	rl.DrawLineEx(rl.Vector2{X: x - 10, Y: y - 30}, rl.Vector2{X: x - 24, Y: y - 44 - stride}, 3, coat)
	rl.DrawLineEx(rl.Vector2{X: x + 10, Y: y - 30}, rl.Vector2{X: x + 24, Y: y - 44 + stride}, 3, coat)
}

func (p *Presenter) drawSiren(s systems.Sprite) {
	x, y := p.Camera.WorldToScreen(s.X, s.Y)
	lit := len(s.Tracks) > 0 && entities.SirenLit(s.Tracks[0].Time)

	// Hangs from its anchor point
	rl.DrawRectangle(int32(x-22), int32(y), 44, 8, rl.DarkGray)
	bulb := rl.Color{R: 120, G: 20, B: 20, A: 255}
	if lit {
		bulb = rl.Red
		rl.DrawCircleV(rl.Vector2{X: x, Y: y + 20}, 40, rl.Fade(rl.Red, 0.25))
	}
	rl.DrawCircleSector(rl.Vector2{X: x, Y: y + 8}, 18, 0, 180, 24, bulb)
}
