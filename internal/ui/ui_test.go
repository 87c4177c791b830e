package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/powereditor/internal/combo"
	"github.com/samdwyer/powereditor/internal/combotree"
	"github.com/samdwyer/powereditor/internal/cursor"
	"github.com/samdwyer/powereditor/internal/power"
	"github.com/samdwyer/powereditor/internal/timeline"
)

type fakeCanvas struct {
	w, h  int
	cells [][]rune
}

func newFakeCanvas(w, h int) *fakeCanvas {
	c := &fakeCanvas{w: w, h: h, cells: make([][]rune, h)}
	for y := range c.cells {
		c.cells[y] = make([]rune, w)
	}
	return c
}

func (c *fakeCanvas) SetContent(x, y int, r rune, _ tcell.Style) {
	if x >= 0 && x < c.w && y >= 0 && y < c.h {
		c.cells[y][x] = r
	}
}

func (c *fakeCanvas) Size() (int, int) { return c.w, c.h }

func (c *fakeCanvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	return b.String()
}

func (c *fakeCanvas) count(r rune) int {
	return strings.Count(c.String(), string(r))
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    tcell.Color
		wantErr bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), false},
		{"00ff80", tcell.NewRGBColor(0, 255, 128), false},
		{" #102030 ", tcell.NewRGBColor(16, 32, 48), false},
		{"#FFF", tcell.ColorDefault, true},
		{"#GG0000", tcell.ColorDefault, true},
		{"", tcell.ColorDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRGBA(t *testing.T) {
	got := RGBA(tcell.NewRGBColor(1, 2, 3))
	if got.R != 1 || got.G != 2 || got.B != 3 || got.A != 0xFF {
		t.Errorf("RGBA() = %+v, want {1 2 3 255}", got)
	}
}

func samplePowers() []*power.Power {
	cols := []string{power.ColID, power.ColName, power.ColParentItem, power.ColComboNormal}
	mk := func(id, name, group, next string) *power.Power {
		p := power.New(cols)
		p.Set(power.ColID, id)
		p.Set(power.ColName, name)
		p.Set(power.ColParentItem, group)
		p.Set(power.ColComboNormal, next)
		return p
	}
	jab := mk("1", "Jab", "Sword", "Jab 2")
	jab.Set(power.ColCastTime, "0:1")
	jab.Set(power.ColBaseDamage, "5")
	jab.Set(power.ColAoERadiusX, "40")
	jab.Set(power.ColAoERadiusY, "40")
	return []*power.Power{jab, mk("2", "Jab 2", "Sword", "Jab")}
}

func TestRenderShowsTreeAndTimeline(t *testing.T) {
	powers := samplePowers()
	f := combotree.Build(context.Background(), powers, combotree.ExpandState{"1": true})
	casts, _ := timeline.Decode(powers[0])
	v := &View{
		Title:       "powers.csv",
		Rows:        f.Rows(),
		Selected:    -1,
		Power:       powers[0],
		Forward:     combo.Forward(powers[0], powers),
		Reverse:     combo.Reverse(powers[0], powers),
		Cursor:      cursor.New(casts),
		HitboxColor: tcell.ColorRed,
	}
	v.Selected = combotree.RowOf(v.Rows, "1")

	canvas := newFakeCanvas(120, 30)
	NewRenderer(canvas).Render(v)
	out := canvas.String()

	for _, want := range []string{"powers.csv", "Detached cycles", "▾ Jab (#1)", "normal: Jab 2 (#2)", "Jab (#1) ↻", "Combos into", "Reached from", "Cast 1/1"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in:\n%s", want, out)
		}
	}
	if canvas.count('▓') == 0 {
		t.Error("active frame should draw the hitbox preview")
	}
	if canvas.count('@') != 1 {
		t.Errorf("caster marker drawn %d times, want 1", canvas.count('@'))
	}
}

func TestRenderNoPower(t *testing.T) {
	canvas := newFakeCanvas(80, 10)
	NewRenderer(canvas).Render(&View{Selected: -1, Status: "loading"})
	out := canvas.String()
	if !strings.Contains(out, "(no powers loaded)") || !strings.Contains(out, "no power selected") {
		t.Errorf("Render(empty) =\n%s", out)
	}
	if !strings.Contains(out, "loading") {
		t.Error("status line missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	canvas := newFakeCanvas(10, 3)
	NewRenderer(canvas).Render(&View{})
	if !strings.Contains(canvas.String(), "window too") {
		t.Errorf("Render(small) =\n%s", canvas.String())
	}
}

func TestRenderFieldsEditing(t *testing.T) {
	powers := samplePowers()
	v := &View{
		Selected:    -1,
		Power:       powers[1],
		Fields:      []Field{{Column: "PowerName", Value: "Jab 2", Description: "Display name"}},
		FieldsFocus: true,
		Editing:     true,
		Input:       "Jab Two",
	}
	canvas := newFakeCanvas(120, 30)
	NewRenderer(canvas).Render(v)
	out := canvas.String()
	if !strings.Contains(out, "Jab Two▏") || !strings.Contains(out, "Display name") {
		t.Errorf("Render(fields) missing edit state:\n%s", out)
	}
}

func TestRenderMessage(t *testing.T) {
	canvas := newFakeCanvas(40, 5)
	NewRenderer(canvas).RenderMessage("Loading powers.csv")
	if !strings.HasPrefix(string(canvas.cells[4]), "Loading powers.csv") {
		t.Errorf("last line = %q", string(canvas.cells[4]))
	}
}
