package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/powereditor/internal/combo"
	"github.com/samdwyer/powereditor/internal/combotree"
	"github.com/samdwyer/powereditor/internal/cursor"
	"github.com/samdwyer/powereditor/internal/export"
	"github.com/samdwyer/powereditor/internal/power"
	"github.com/samdwyer/powereditor/internal/timeline"
)

// Field is one column of the selected power as shown in the field pane.
type Field struct {
	Column      string
	Value       string
	Description string
}

// View is a snapshot of everything the editor shows.
type View struct {
	Title    string
	Rows     []combotree.Row
	Selected int // row index of the selection, -1 when it is not visible

	Power   *power.Power
	Forward *combo.Tree
	Reverse *combo.Tree
	Cursor  *cursor.Cursor

	Fields      []Field
	FieldIndex  int
	FieldsFocus bool
	Editing     bool
	Input       string

	Status      string
	HitboxColor tcell.Color
}

// Renderer handles drawing the editor to a canvas.
type Renderer struct {
	canvas     Canvas
	listScroll int
}

// NewRenderer creates a new renderer for the given canvas.
func NewRenderer(canvas Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

var (
	styleDefault  = tcell.StyleDefault
	styleHeader   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleMuted    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCycle    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal)
)

// Render draws the whole view. The caller shows the screen afterwards.
func (r *Renderer) Render(v *View) {
	w, h := r.canvas.Size()
	r.fill(0, 0, w, h)
	if w < 20 || h < 6 {
		r.text(0, 0, w, "window too small", styleMuted)
		return
	}

	listW := w * 2 / 5
	r.text(0, 0, w, v.Title, styleHeader)
	r.renderList(v, 0, 1, listW-1, h-2)
	for y := 1; y < h-1; y++ {
		r.canvas.SetContent(listW-1, y, '│', styleMuted)
	}
	r.renderDetail(v, listW+1, 1, w-listW-1, h-2)
	r.renderStatus(v, 0, h-1, w)
}

func (r *Renderer) renderList(v *View, x, y, w, h int) {
	if len(v.Rows) == 0 {
		r.text(x, y, w, "(no powers loaded)", styleMuted)
		return
	}
	if v.Selected >= 0 {
		if v.Selected < r.listScroll {
			r.listScroll = v.Selected
		}
		if v.Selected >= r.listScroll+h {
			r.listScroll = v.Selected - h + 1
		}
	}
	if r.listScroll > len(v.Rows)-1 {
		r.listScroll = max(0, len(v.Rows)-h)
	}

	for i := 0; i < h && r.listScroll+i < len(v.Rows); i++ {
		idx := r.listScroll + i
		row := v.Rows[idx]
		line, style := rowText(row)
		if idx == v.Selected {
			style = styleSelected
		}
		r.text(x, y+i, w, line, style)
	}
}

func rowText(row combotree.Row) (string, tcell.Style) {
	if row.Kind == combotree.RowHeader {
		return row.Title, styleHeader
	}
	n := row.Node
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", row.Depth+1))
	if row.Depth == 0 {
		switch {
		case len(n.Children()) == 0:
			b.WriteString("  ")
		case n.Expanded:
			b.WriteString("▾ ")
		default:
			b.WriteString("▸ ")
		}
	} else {
		b.WriteString(row.Label)
		b.WriteString(": ")
	}
	b.WriteString(n.Power.Label())
	if n.Kind == combotree.KindCycle {
		b.WriteString(" ↻")
		return b.String(), styleCycle
	}
	return b.String(), styleDefault
}

func (r *Renderer) renderDetail(v *View, x, y, w, h int) {
	if v.Power == nil {
		r.text(x, y, w, "no power selected", styleMuted)
		return
	}
	bottom := y + h
	r.text(x, y, w, v.Power.Label(), styleHeader)
	if g := v.Power.Group(); g != "" {
		r.text(x, y+1, w, "item: "+g, styleMuted)
	}
	y += 2

	y = r.renderTree(x, y, w, bottom, "Combos into", v.Forward)
	y = r.renderTree(x, y, w, bottom, "Reached from", v.Reverse)

	if v.Cursor != nil && y < bottom {
		y = r.renderTimeline(v, x, y+1, w, bottom)
	}

	if len(v.Fields) > 0 && y < bottom {
		r.renderFields(v, x, y+1, w, bottom-y-1)
	}
}

func (r *Renderer) renderTree(x, y, w, bottom int, title string, t *combo.Tree) int {
	if y >= bottom {
		return y
	}
	r.text(x, y, w, title, styleLabel)
	y++
	if t == nil {
		if y < bottom {
			r.text(x+2, y, w-2, "(none)", styleMuted)
			y++
		}
		return y
	}
	for _, slot := range power.Slots {
		if target := t.Slot(slot); target != nil && y < bottom {
			r.text(x+2, y, w-2, fmt.Sprintf("%-12s %s", slot.String(), target.Label()), styleDefault)
			y++
		}
	}
	for _, d := range t.Directional {
		if y >= bottom {
			break
		}
		r.text(x+2, y, w-2, fmt.Sprintf("%c %-10s %s", d.Direction.Arrow(), d.Direction.String(), d.Power.Label()), styleDefault)
		y++
	}
	return y
}

// renderTimeline draws the frame strip and a hitbox preview of the current frame.
func (r *Renderer) renderTimeline(v *View, x, y, w, bottom int) int {
	cur := v.Cursor
	castIndex, within, total := cur.State()
	r.text(x, y, w, fmt.Sprintf("Cast %d/%d  frame %d/%d  (global %d/%d)",
		castIndex+1, cur.CastCount(), within+1, cur.FramesInCast(castIndex), cur.Frame()+1, total), styleLabel)
	y++
	if total == 0 || y >= bottom {
		return y
	}

	// One cell per frame, scrolled so the current frame stays visible.
	start := 0
	if cur.Frame() >= w {
		start = cur.Frame() - w + 1
	}
	col := 0
	for i := 0; i < cur.CastCount(); i++ {
		for f := 0; f < cur.FramesInCast(i); f++ {
			global := cur.GlobalFrame(i, f)
			if global < start {
				continue
			}
			if col >= w {
				break
			}
			ch, style := '░', styleMuted
			if cur.HitboxVisibleAt(i, f) {
				ch, style = '█', tcell.StyleDefault.Foreground(v.HitboxColor)
			}
			if i%2 == 1 {
				style = style.Underline(true)
			}
			if global == cur.Frame() {
				style = style.Reverse(true)
			}
			r.canvas.SetContent(x+col, y, ch, style)
			col++
		}
	}
	y++

	stageH := min(8, bottom-y)
	if stageH >= 3 {
		r.renderStage(v, x, y, min(w, stageH*4), stageH)
		y += stageH
	}
	return y
}

// renderStage rasterises the current cast's hitbox ellipses into character cells.
func (r *Renderer) renderStage(v *View, x, y, w, h int) {
	cur := v.Cursor
	b := export.BoundsOf(cur.Casts())
	cast := cur.Cast(cur.CastIndex())
	visible := cur.HitboxVisible()
	shapes := cast.Hitboxes.Shapes()

	spanX, spanY := b.MaxX-b.MinX, b.MaxY-b.MinY
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			wx := b.MinX + (float64(cx)+0.5)/float64(w)*spanX
			wy := b.MinY + (float64(cy)+0.5)/float64(h)*spanY
			ch, style := '·', styleMuted
			if visible && insideAny(shapes, wx, wy) {
				ch, style = '▓', tcell.StyleDefault.Foreground(v.HitboxColor)
			}
			r.canvas.SetContent(x+cx, y+cy, ch, style)
		}
	}
	ox := int((0 - b.MinX) / spanX * float64(w))
	oy := int((0 - b.MinY) / spanY * float64(h))
	if ox >= 0 && ox < w && oy >= 0 && oy < h {
		r.canvas.SetContent(x+ox, y+oy, '@', styleHeader)
	}
}

func insideAny(shapes []timeline.Shape, x, y float64) bool {
	for _, s := range shapes {
		rx, ry := math.Abs(s.RadiusX), math.Abs(s.RadiusY)
		if rx == 0 || ry == 0 {
			continue
		}
		dx, dy := (x-s.OffsetX)/rx, (y-s.OffsetY)/ry
		if dx*dx+dy*dy <= 1 {
			return true
		}
	}
	return false
}

func (r *Renderer) renderFields(v *View, x, y, w, h int) {
	if h <= 1 {
		return
	}
	title := "Fields"
	if v.FieldsFocus {
		title = "Fields (enter to edit, tab to return)"
	}
	r.text(x, y, w, title, styleLabel)
	y++
	h--

	// Keep the focused field and its description in view.
	start := 0
	if v.FieldIndex >= h-1 {
		start = v.FieldIndex - h + 2
	}
	for i := 0; i < h-1 && start+i < len(v.Fields); i++ {
		idx := start + i
		f := v.Fields[idx]
		value := f.Value
		style := styleDefault
		if idx == v.FieldIndex && v.FieldsFocus {
			style = styleSelected
			if v.Editing {
				value = v.Input + "▏"
			}
		}
		r.text(x, y+i, w, fmt.Sprintf("%-24s %s", f.Column, value), style)
	}
	if v.FieldsFocus && v.FieldIndex < len(v.Fields) {
		r.text(x, y+h-1, w, v.Fields[v.FieldIndex].Description, styleMuted)
	}
}

func (r *Renderer) renderStatus(v *View, x, y, w int) {
	for i := 0; i < w; i++ {
		r.canvas.SetContent(x+i, y, ' ', styleStatus)
	}
	status := v.Status
	if status == "" {
		status = "↑↓ select  ⏎ expand  ←→ frame  [ ] cast  tab fields  n new  d delete  c copy  v paste  s save  r reload  e export  q quit"
	}
	r.text(x, y, w, status, styleStatus)
}

// text draws s clipped to w cells and returns the number of cells used.
func (r *Renderer) text(x, y, w int, s string, style tcell.Style) int {
	i := 0
	for _, ch := range s {
		if i >= w {
			break
		}
		r.canvas.SetContent(x+i, y, ch, style)
		i++
	}
	return i
}

func (r *Renderer) fill(x, y, w, h int) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			r.canvas.SetContent(i, j, ' ', styleDefault)
		}
	}
}

// RenderMessage displays a message at the bottom of the canvas.
func (r *Renderer) RenderMessage(msg string) {
	w, h := r.canvas.Size()
	for i := 0; i < w; i++ {
		r.canvas.SetContent(i, h-1, ' ', styleStatus)
	}
	r.text(0, h-1, w, msg, styleStatus)
}
