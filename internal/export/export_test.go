package export

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/samdwyer/powereditor/internal/cursor"
	"github.com/samdwyer/powereditor/internal/power"
	"github.com/samdwyer/powereditor/internal/timeline"
)

func uppercut(t *testing.T) *cursor.Cursor {
	t.Helper()
	p := power.New([]string{power.ColID, power.ColName})
	p.Set(power.ColID, "1")
	p.Set(power.ColName, "Uppercut")
	p.Set(power.ColCastTime, "2:0,0:1")
	p.Set(power.ColBaseDamage, "0,12")
	p.Set(power.ColAoERadiusX, "10,30&15")
	p.Set(power.ColAoERadiusY, "10,40")
	p.Set(power.ColCenterOffsetX, ",50")
	p.Set(power.ColCenterOffsetY, ",-60")
	p.Set(power.ColFireImpulseY, ",-5~-10")

	casts, err := timeline.Decode(p)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return cursor.New(casts)
}

func TestBoundsOf(t *testing.T) {
	cur := uppercut(t)
	b := BoundsOf(cur.Casts())
	// Cast 1 shape 0: offset (50,-60) radius (30,40).
	if b.MaxX != 80 || b.MinY != -100 {
		t.Errorf("BoundsOf() = %+v, want MaxX 80 and MinY -100", b)
	}
	if b.MinX > 0 || b.MaxY < 0 {
		t.Errorf("BoundsOf() = %+v, must include the origin", b)
	}

	empty := BoundsOf(nil)
	if empty != (Bounds{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}) {
		t.Errorf("BoundsOf(nil) = %+v", empty)
	}
}

func TestFrameOf(t *testing.T) {
	cur := uppercut(t)
	cur.NextCast()
	f := FrameOf("Uppercut", cur)
	if f.CastIndex != 1 || f.Within != 0 || f.Global != 1 {
		t.Errorf("FrameOf() = cast %d within %d global %d, want 1 0 1", f.CastIndex, f.Within, f.Global)
	}
	if !f.Hitbox {
		t.Error("cast 1 frame 0 should show its hitbox")
	}

	cur.SeekFrame(0)
	if FrameOf("Uppercut", cur).Hitbox {
		t.Error("zero-damage cast should not show a hitbox")
	}
}

func TestImpulseAt(t *testing.T) {
	cur := uppercut(t)
	cur.NextCast()
	x, y, ok := impulseAt(FrameOf("Uppercut", cur))
	if !ok || x != 0 || y != -5 {
		t.Errorf("impulseAt(first active) = (%v, %v, %v), want (0, -5, true)", x, y, ok)
	}
	cur.NextFrame()
	if _, y, _ := impulseAt(FrameOf("Uppercut", cur)); y != -10 {
		t.Errorf("impulseAt(last active) y = %v, want -10", y)
	}
}

func TestRenderSize(t *testing.T) {
	cur := uppercut(t)
	opts := DefaultOptions()
	opts.Width, opts.Height = 320, 200

	img, err := Render(FrameOf("Uppercut", cur), BoundsOf(cur.Casts()), opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := img.Bounds().Dx(); got != 320 {
		t.Errorf("width = %d, want 320", got)
	}
	if got := img.Bounds().Dy(); got != 200 {
		t.Errorf("height = %d, want 200", got)
	}
}

func TestWritePNG(t *testing.T) {
	cur := uppercut(t)
	cur.NextCast()

	var buf bytes.Buffer
	if err := WritePNG(context.Background(), &buf, "Uppercut", cur, DefaultOptions()); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 640 {
		t.Errorf("width = %d, want 640", img.Bounds().Dx())
	}
}

func TestSavePNG(t *testing.T) {
	cur := uppercut(t)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SavePNG(context.Background(), path, "Uppercut", cur, DefaultOptions()); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("SavePNG() left %v, %v", info, err)
	}

	bad := filepath.Join(t.TempDir(), "missing", "frame.png")
	if err := SavePNG(context.Background(), bad, "Uppercut", cur, DefaultOptions()); err == nil {
		t.Error("SavePNG(bad dir) error = nil")
	}
}
