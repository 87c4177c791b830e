// Package export renders a single frame of a power's cast timeline to a PNG image.
package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/samdwyer/powereditor/internal/cursor"
	"github.com/samdwyer/powereditor/internal/telemetry"
	"github.com/samdwyer/powereditor/internal/timeline"
)

// Options controls the rendered image.
type Options struct {
	Width, Height int
	FontSize      float64
	HitboxColor   color.Color
	Background    color.Color
	Foreground    color.Color
}

// DefaultOptions returns a 640x480 image with a red hitbox on white.
func DefaultOptions() Options {
	return Options{
		Width:       640,
		Height:      480,
		FontSize:    12,
		HitboxColor: color.RGBA{R: 0xE0, G: 0x30, B: 0x30, A: 0xFF},
		Background:  color.White,
		Foreground:  color.Black,
	}
}

// Frame is everything drawn for one cursor position.
type Frame struct {
	Name      string
	CastIndex int
	Within    int
	Global    int
	Total     int
	Cast      timeline.Cast
	Hitbox    bool // hitboxes visible on this frame
}

// FrameOf captures the cursor's current position.
func FrameOf(name string, cur *cursor.Cursor) Frame {
	castIndex, within, total := cur.State()
	return Frame{
		Name:      name,
		CastIndex: castIndex,
		Within:    within,
		Global:    cur.Frame(),
		Total:     total,
		Cast:      cur.Cast(castIndex),
		Hitbox:    cur.HitboxVisible(),
	}
}

// Bounds is the world-space extent every frame of a timeline is fitted into, so consecutive
// frames share one scale.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoundsOf returns the extent of every hitbox shape in casts, always including the origin.
func BoundsOf(casts []timeline.Cast) Bounds {
	b := Bounds{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
	for _, c := range casts {
		for _, s := range c.Hitboxes.Shapes() {
			rx, ry := math.Abs(s.RadiusX), math.Abs(s.RadiusY)
			b.MinX = math.Min(b.MinX, s.OffsetX-rx)
			b.MaxX = math.Max(b.MaxX, s.OffsetX+rx)
			b.MinY = math.Min(b.MinY, s.OffsetY-ry)
			b.MaxY = math.Max(b.MaxY, s.OffsetY+ry)
		}
	}
	return b
}

// Render draws the frame. World y grows downwards like screen y; the caster sits at the origin.
func Render(f Frame, b Bounds, opts Options) (image.Image, error) {
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()

	face, err := loadFace(opts.FontSize)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)

	header := opts.FontSize * 3
	padding := opts.FontSize
	availW := float64(opts.Width) - 2*padding
	availH := float64(opts.Height) - header - 2*padding
	scale := math.Min(availW/(b.MaxX-b.MinX), availH/(b.MaxY-b.MinY))
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 1
	}
	toScreen := func(x, y float64) (float64, float64) {
		return padding + (x-b.MinX)*scale, header + padding + (y-b.MinY)*scale
	}

	// Axes through the caster.
	ox, oy := toScreen(0, 0)
	dc.SetRGBA(0, 0, 0, 0.25)
	dc.SetLineWidth(1)
	dc.DrawLine(padding, oy, float64(opts.Width)-padding, oy)
	dc.DrawLine(ox, header+padding, ox, float64(opts.Height)-padding)
	dc.Stroke()

	if f.Hitbox {
		for _, s := range f.Cast.Hitboxes.Shapes() {
			cx, cy := toScreen(s.OffsetX, s.OffsetY)
			dc.DrawEllipse(cx, cy, math.Abs(s.RadiusX)*scale, math.Abs(s.RadiusY)*scale)
			dc.SetColor(withAlpha(opts.HitboxColor, 0x60))
			dc.FillPreserve()
			dc.SetColor(opts.HitboxColor)
			dc.SetLineWidth(2)
			dc.Stroke()
		}
	}

	if ix, iy, ok := impulseAt(f); ok {
		drawArrow(dc, ox, oy, ox+ix*scale, oy+iy*scale, opts.Foreground)
	}

	dc.SetColor(opts.Foreground)
	dc.DrawCircle(ox, oy, 3)
	dc.Fill()

	dc.DrawString(f.Name, padding, opts.FontSize+padding/2)
	status := fmt.Sprintf("cast %d  frame %d  (%d/%d)  startup %d  active %d",
		f.CastIndex+1, f.Within+1, f.Global+1, f.Total, f.Cast.Startup, f.Cast.Active)
	if f.Hitbox {
		status += "  HIT"
	}
	dc.DrawString(status, padding, 2*opts.FontSize+padding/2)

	return dc.Image(), nil
}

// impulseAt returns the impulse acting on the frame: the cast impulse during startup, the
// fire impulse while active, sampled across the phase.
func impulseAt(f Frame) (x, y float64, ok bool) {
	c := f.Cast
	switch {
	case f.Within < c.Startup:
		t := 0.0
		if c.Startup > 1 {
			t = float64(f.Within) / float64(c.Startup-1)
		}
		x, y = c.CastImpulse.At(t)
	default:
		t := 0.0
		if c.Active > 1 {
			t = float64(f.Within-c.Startup) / float64(c.Active-1)
		}
		x, y = c.FireImpulse.At(t)
	}
	return x, y, x != 0 || y != 0
}

func drawArrow(dc *gg.Context, x1, y1, x2, y2 float64, c color.Color) {
	dc.SetColor(c)
	dc.SetLineWidth(1.5)
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()

	angle := math.Atan2(y2-y1, x2-x1)
	const size = 8.0
	dc.MoveTo(x2, y2)
	dc.LineTo(x2-size*math.Cos(angle-math.Pi/6), y2-size*math.Sin(angle-math.Pi/6))
	dc.LineTo(x2-size*math.Cos(angle+math.Pi/6), y2-size*math.Sin(angle+math.Pi/6))
	dc.ClosePath()
	dc.Fill()
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}

func loadFace(size float64) (font.Face, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// WritePNG renders the cursor's current frame and encodes it to w.
func WritePNG(ctx context.Context, w io.Writer, name string, cur *cursor.Cursor, opts Options) error {
	tracer := telemetry.Tracer("export")
	_, span := tracer.Start(ctx, "export.frame")
	defer span.End()

	f := FrameOf(name, cur)
	span.SetAttributes(
		attribute.String("power.name", name),
		attribute.Int("frame.cast", f.CastIndex),
		attribute.Int("frame.global", f.Global),
		attribute.Bool("frame.hitbox", f.Hitbox),
	)

	img, err := Render(f, BoundsOf(cur.Casts()), opts)
	if err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return err
	}
	dc := gg.NewContextForImage(img)
	if err := dc.EncodePNG(w); err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG writes the cursor's current frame to path.
func SavePNG(ctx context.Context, path, name string, cur *cursor.Cursor, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WritePNG(ctx, f, name, cur, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
