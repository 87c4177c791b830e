package editor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/powereditor/internal/combo"
	"github.com/samdwyer/powereditor/internal/combotree"
	"github.com/samdwyer/powereditor/internal/cursor"
	"github.com/samdwyer/powereditor/internal/export"
	"github.com/samdwyer/powereditor/internal/power"
	"github.com/samdwyer/powereditor/internal/powerio"
	"github.com/samdwyer/powereditor/internal/telemetry"
	"github.com/samdwyer/powereditor/internal/timeline"
	"github.com/samdwyer/powereditor/internal/ui"
)

// ErrNoSelection is returned by operations that need a selected power.
var ErrNoSelection = errors.New("no power selected")

// Clipboard is the system clipboard as the session uses it.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Action tells the event loop what to do after a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionReload
)

// Session holds the editor state that is independent of the terminal: the store, the derived
// forest and combo trees, the frame cursor and the field editor.
type Session struct {
	id     string
	tracer trace.Tracer

	store        *power.Store
	path         string
	dirty        bool
	descriptions powerio.Descriptions
	clipboard    Clipboard
	exportDir    string
	exportOpts   export.Options
	hitboxColor  tcell.Color

	expand   combotree.ExpandState
	forest   *combotree.Forest
	rows     []combotree.Row
	selected string // power id
	selRow   int    // row of the selection, -1 when hidden

	forward *combo.Tree
	reverse *combo.Tree
	cursor  *cursor.Cursor

	mode       Mode
	fieldIndex int
	input      string
	status     string
	quitArmed  bool
}

// NewSession creates an empty session. descriptions may be nil.
func NewSession(cfg Config, descriptions powerio.Descriptions, cb Clipboard) *Session {
	if cb == nil {
		cb = systemClipboard{}
	}
	tracer := telemetry.NoopTracer()
	if cfg.Tracing {
		tracer = telemetry.Tracer("editor")
	}
	color, err := ui.ParseHexColor(cfg.HitboxColor)
	if err != nil {
		color, _ = ui.ParseHexColor(DefaultHitboxColor)
	}
	opts := export.DefaultOptions()
	opts.HitboxColor = ui.RGBA(color)

	s := &Session{
		id:           uuid.NewString(),
		tracer:       tracer,
		store:        power.NewStore(nil),
		path:         cfg.File,
		descriptions: descriptions,
		clipboard:    cb,
		exportDir:    cfg.ExportDir,
		exportOpts:   opts,
		hitboxColor:  color,
		expand:       combotree.ExpandState{},
		selRow:       -1,
		cursor:       cursor.New(nil),
	}
	s.store.Subscribe(s.onChange)
	s.rebuild(context.Background())
	return s
}

// ID returns the session id attached to editor spans.
func (s *Session) ID() string { return s.id }

// Store returns the authoritative power list.
func (s *Session) Store() *power.Store { return s.store }

// Mode returns the current input mode.
func (s *Session) Mode() Mode { return s.mode }

// Dirty reports whether there are unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// Path returns the file the session loads from and saves to.
func (s *Session) Path() string { return s.path }

// Status returns the last status message.
func (s *Session) Status() string { return s.status }

// SetStatus replaces the status message.
func (s *Session) SetStatus(msg string) { s.status = msg }

// Selected returns the selected power, or nil.
func (s *Session) Selected() *power.Power { return s.store.GetByID(s.selected) }

// Cursor returns the frame cursor over the selected power's casts.
func (s *Session) Cursor() *cursor.Cursor { return s.cursor }

// Forward returns the combos the selection leads into.
func (s *Session) Forward() *combo.Tree { return s.forward }

// Reverse returns the combos that lead into the selection.
func (s *Session) Reverse() *combo.Tree { return s.reverse }

// Rows returns the visible forest rows.
func (s *Session) Rows() []combotree.Row { return s.rows }

// SelectedRow returns the row index of the selection, or -1.
func (s *Session) SelectedRow() int { return s.selRow }

// Forest returns the current forest.
func (s *Session) Forest() *combotree.Forest { return s.forest }

// Apply installs a freshly loaded table.
func (s *Session) Apply(path string, res *powerio.LoadResult) {
	s.path = path
	s.store.Replace(res.Powers)
	s.dirty = false
	s.status = fmt.Sprintf("loaded %d powers from %s", len(res.Powers), filepath.Base(path))
	if res.Skipped > 0 {
		s.status += fmt.Sprintf(" (%d malformed rows skipped)", res.Skipped)
	}
}

// onChange keeps derived views in step with the store.
func (s *Session) onChange(c power.Change) {
	ctx := context.Background()
	if c.Kind != power.ChangeReplaced {
		s.dirty = true
	}
	s.quitArmed = false

	prevRow := s.selRow
	if c.Structural() {
		s.rebuild(ctx)
	}

	switch {
	case s.store.GetByID(s.selected) == nil:
		s.selRow = prevRow
		s.selectFallback(ctx)
	case c.Kind == power.ChangeReplaced || c.Structural() || c.ID == s.selected:
		s.refreshSelection(ctx, true)
	}
}

func (s *Session) rebuild(ctx context.Context) {
	rootID := s.rootOfSelection()
	s.forest = combotree.Build(ctx, s.store.All(), s.expand)
	s.rows = s.forest.Rows()
	s.selRow = s.locate(s.selected, rootID)
}

func (s *Session) rootOfSelection() string {
	if s.selRow >= 0 && s.selRow < len(s.rows) && s.rows[s.selRow].Root != nil {
		return s.rows[s.selRow].Root.ID()
	}
	return ""
}

// locate finds the row showing id, preferring one under rootID.
func (s *Session) locate(id, rootID string) int {
	if id == "" {
		return -1
	}
	if rootID != "" {
		for i, r := range s.rows {
			if r.Kind == combotree.RowNode && r.Root.ID() == rootID && r.Node.ID() == id {
				return i
			}
		}
	}
	if i := combotree.RowOf(s.rows, id); i >= 0 {
		return i
	}
	for i, r := range s.rows {
		if r.Kind == combotree.RowNode && r.Node.ID() == id {
			return i
		}
	}
	return -1
}

// selectFallback picks a new selection after the old one vanished.
func (s *Session) selectFallback(ctx context.Context) {
	for i := max(0, s.selRow); i < len(s.rows); i++ {
		if s.rows[i].Kind == combotree.RowNode {
			s.selectRow(ctx, i)
			return
		}
	}
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].Kind == combotree.RowNode {
			s.selectRow(ctx, i)
			return
		}
	}
	s.selected = ""
	s.selRow = -1
	s.refreshSelection(ctx, false)
}

// Select makes id the selection, expands every root containing it and rewinds the cursor.
func (s *Session) Select(ctx context.Context, id string) {
	s.selectUnder(ctx, id, "")
}

func (s *Session) selectUnder(ctx context.Context, id, rootID string) {
	ctx, span := s.tracer.Start(ctx, "editor.select")
	defer span.End()

	p := s.store.GetByID(id)
	if p == nil {
		span.SetAttributes(attribute.Bool("found", false))
		return
	}
	s.selected = id
	hits := s.forest.Select(id, s.expand)
	s.rows = s.forest.Rows()
	if rootID == "" && len(hits) > 0 {
		rootID = hits[0]
	}
	s.selRow = s.locate(id, rootID)
	s.fieldIndex = 0
	s.refreshSelection(ctx, false)

	span.SetAttributes(
		attribute.String("editor.session", s.id),
		attribute.String("power.id", id),
		attribute.Int("roots.expanded", len(hits)),
		attribute.Int("casts", s.cursor.CastCount()),
	)
}

func (s *Session) selectRow(ctx context.Context, i int) {
	row := s.rows[i]
	s.selRow = i
	s.selectUnder(ctx, row.Node.ID(), row.Root.ID())
}

// refreshSelection recomputes the combo trees and the timeline of the selection. With
// keepFrame the cursor stays on the same global frame when it still exists.
func (s *Session) refreshSelection(ctx context.Context, keepFrame bool) {
	p := s.Selected()
	if p == nil {
		s.forward, s.reverse = nil, nil
		s.cursor.Reset(nil)
		return
	}
	all := s.store.All()
	idx := combo.NewIndex(all)
	s.forward = idx.Forward(p)
	s.reverse = combo.Reverse(p, all)

	_, span := s.tracer.Start(ctx, "timeline.decode")
	casts, err := timeline.Decode(p)
	span.SetAttributes(attribute.Int("casts", len(casts)))
	span.End()
	if err != nil {
		s.status = err.Error()
	}

	frame := s.cursor.Frame()
	s.cursor.Reset(casts)
	if keepFrame {
		s.cursor.SeekFrame(frame)
	}
}

// MoveSelection moves to the next power row in direction delta (+1 or -1).
func (s *Session) MoveSelection(ctx context.Context, delta int) {
	if len(s.rows) == 0 {
		return
	}
	i := s.selRow
	if i < 0 {
		i = -delta
		if delta < 0 {
			i = len(s.rows)
		}
	}
	for {
		i += delta
		if i < 0 || i >= len(s.rows) {
			return
		}
		if s.rows[i].Kind == combotree.RowNode {
			s.selectRow(ctx, i)
			return
		}
	}
}

// ToggleSelected expands or collapses the root of the selected row. Collapsing from inside a
// tree moves the selection up to the root.
func (s *Session) ToggleSelected(ctx context.Context) {
	if s.selRow < 0 || s.selRow >= len(s.rows) {
		return
	}
	row := s.rows[s.selRow]
	root := row.Root
	expanded := s.forest.Toggle(root.ID(), s.expand)
	s.rows = s.forest.Rows()
	if !expanded && row.Depth > 0 {
		s.selected = root.ID()
		s.selRow = s.locate(s.selected, root.ID())
		s.refreshSelection(ctx, false)
		return
	}
	s.selRow = s.locate(s.selected, root.ID())
}

// NewPower appends an empty power shaped like the selection and selects it.
func (s *Session) NewPower(ctx context.Context) error {
	p, err := s.store.CreateEmpty(s.selected)
	if err != nil {
		return err
	}
	s.Select(ctx, p.ID)
	s.status = "created " + p.Label()
	return nil
}

// DeleteSelected removes the selected power.
func (s *Session) DeleteSelected() error {
	p := s.Selected()
	if p == nil {
		return ErrNoSelection
	}
	label := p.Label()
	if err := s.store.Delete(p.ID); err != nil {
		return err
	}
	s.status = "deleted " + label
	return nil
}

// Copy puts the selected power on the clipboard.
func (s *Session) Copy() error {
	p := s.Selected()
	if p == nil {
		return ErrNoSelection
	}
	text, err := powerio.EncodeRecord(p)
	if err != nil {
		return err
	}
	if err := s.clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	s.status = "copied " + p.Label()
	return nil
}

// Paste overwrites the selected power with the record on the clipboard.
func (s *Session) Paste(ctx context.Context) error {
	p := s.Selected()
	if p == nil {
		return ErrNoSelection
	}
	text, err := s.clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	values, err := powerio.DecodeRecord(text)
	if err != nil {
		return err
	}
	prev := s.selected
	s.selected = values[power.ColID]
	if err := s.store.Paste(prev, values); err != nil {
		s.selected = prev
		return err
	}
	s.Select(ctx, p.ID)
	s.status = "pasted into " + p.Label()
	return nil
}

// Save writes the store to the session's file.
func (s *Session) Save(ctx context.Context) error {
	if s.path == "" {
		return errors.New("no file to save to")
	}
	if err := powerio.SavePowers(ctx, s.path, s.store.All()); err != nil {
		return err
	}
	s.dirty = false
	s.status = fmt.Sprintf("saved %d powers to %s", s.store.Count(), filepath.Base(s.path))
	return nil
}

// Export writes the current frame of the selection to a PNG and returns its path.
func (s *Session) Export(ctx context.Context) (string, error) {
	p := s.Selected()
	if p == nil {
		return "", ErrNoSelection
	}
	castIndex, within, _ := s.cursor.State()
	name := fmt.Sprintf("%s_cast%d_frame%d.png", fileSafe(p.Name, p.ID), castIndex+1, within+1)
	path := filepath.Join(s.exportDir, name)
	if err := export.SavePNG(ctx, path, p.Label(), s.cursor, s.exportOpts); err != nil {
		return "", err
	}
	s.status = "exported " + path
	return path, nil
}

func fileSafe(name, id string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "power_" + id
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// Fields lists the selected power's columns with their descriptions.
func (s *Session) Fields() []ui.Field {
	p := s.Selected()
	if p == nil {
		return nil
	}
	cols := p.Columns()
	fields := make([]ui.Field, len(cols))
	for i, col := range cols {
		fields[i] = ui.Field{Column: col, Value: p.Get(col), Description: s.descriptions.Get(col)}
	}
	return fields
}

// MoveField moves the field focus by delta, clamped to the column list.
func (s *Session) MoveField(delta int) {
	n := len(s.Fields())
	if n == 0 {
		return
	}
	s.fieldIndex = max(0, min(n-1, s.fieldIndex+delta))
}

// FieldIndex returns the focused field.
func (s *Session) FieldIndex() int { return s.fieldIndex }

// BeginEdit starts typing a new value for the focused column.
func (s *Session) BeginEdit() {
	fields := s.Fields()
	if s.fieldIndex >= len(fields) {
		return
	}
	s.input = fields[s.fieldIndex].Value
	s.mode = ModeEdit
}

// Input returns the text being typed.
func (s *Session) Input() string { return s.input }

// CommitEdit stores the typed value.
func (s *Session) CommitEdit() error {
	fields := s.Fields()
	s.mode = ModeFields
	if s.fieldIndex >= len(fields) {
		return ErrNoSelection
	}
	col := fields[s.fieldIndex].Column
	id := s.selected
	if col == power.ColID {
		s.selected = s.input
	}
	if err := s.store.SetField(id, col, s.input); err != nil {
		s.selected = id
		return err
	}
	s.status = fmt.Sprintf("%s = %q", col, s.input)
	return nil
}

// View snapshots the session for the renderer.
func (s *Session) View() *ui.View {
	title := "powereditor"
	if s.path != "" {
		title += "  " + s.path
	}
	if s.dirty {
		title += " *"
	}
	v := &ui.View{
		Title:       title,
		Rows:        s.rows,
		Selected:    s.selRow,
		Power:       s.Selected(),
		Forward:     s.forward,
		Reverse:     s.reverse,
		Cursor:      s.cursor,
		FieldIndex:  s.fieldIndex,
		FieldsFocus: s.mode == ModeFields || s.mode == ModeEdit,
		Editing:     s.mode == ModeEdit,
		Input:       s.input,
		Status:      s.status,
		HitboxColor: s.hitboxColor,
	}
	if v.FieldsFocus {
		v.Fields = s.Fields()
	}
	if s.mode == ModeConfirmDelete && v.Power != nil {
		v.Status = "delete " + v.Power.Label() + "? (y/n)"
	}
	return v
}
