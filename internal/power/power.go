// Package power defines the Power record and the store that owns the loaded power list.
package power

import (
	"strings"
	"unicode"
)

// Column names with structural meaning. Every other column is carried through untouched.
const (
	ColID         = "PowerID"
	ColName       = "PowerName"
	ColParentItem = "ParentItem"

	ColComboNormal    = "ComboName"
	ColComboHit       = "ComboOverrideIfHit"
	ColComboRelease   = "ComboOverrideIfRelease"
	ColComboWall      = "ComboOverrideIfWall"
	ColComboButton    = "ComboOverrideIfButton"
	ColComboInterrupt = "ComboOverrideIfInterrupt"
	ColComboDir       = "ComboOverrideIfDir"

	ColCastTime        = "CastTime"
	ColCastImpulseX    = "CastImpulseX"
	ColCastImpulseY    = "CastImpulseY"
	ColFireImpulseX    = "FireImpulseX"
	ColFireImpulseY    = "FireImpulseY"
	ColBaseDamage      = "BaseDamage"
	ColVariableImpulse = "VariableImpulse"
	ColFixedImpulse    = "FixedImpulse"
	ColImpulseOffsetX  = "ImpulseOffsetX"
	ColImpulseOffsetY  = "ImpulseOffsetY"

	ColAoERadiusX    = "AoERadiusX"
	ColAoERadiusY    = "AoERadiusY"
	ColCenterOffsetX = "CenterOffsetX"
	ColCenterOffsetY = "CenterOffsetY"
)

// ComboSlot identifies one of the six single-target combo fields.
type ComboSlot int

const (
	SlotNormal ComboSlot = iota
	SlotOnHit
	SlotOnRelease
	SlotOnWall
	SlotOnButton
	SlotOnInterrupt

	// SlotCount is the number of scalar combo slots.
	SlotCount = 6
)

// Slots lists every scalar combo slot in display order.
var Slots = [SlotCount]ComboSlot{SlotNormal, SlotOnHit, SlotOnRelease, SlotOnWall, SlotOnButton, SlotOnInterrupt}

// String returns a short label for the slot.
func (s ComboSlot) String() string {
	switch s {
	case SlotNormal:
		return "normal"
	case SlotOnHit:
		return "on-hit"
	case SlotOnRelease:
		return "on-release"
	case SlotOnWall:
		return "on-wall"
	case SlotOnButton:
		return "on-button"
	case SlotOnInterrupt:
		return "on-interrupt"
	default:
		return "unknown"
	}
}

// Column returns the table column backing the slot.
func (s ComboSlot) Column() string {
	switch s {
	case SlotNormal:
		return ColComboNormal
	case SlotOnHit:
		return ColComboHit
	case SlotOnRelease:
		return ColComboRelease
	case SlotOnWall:
		return ColComboWall
	case SlotOnButton:
		return ColComboButton
	case SlotOnInterrupt:
		return ColComboInterrupt
	default:
		return ""
	}
}

// Timing holds the ten comma-separated per-cast fields.
type Timing struct {
	CastTime        string
	CastImpulseX    string
	CastImpulseY    string
	FireImpulseX    string
	FireImpulseY    string
	BaseDamage      string
	VariableImpulse string
	FixedImpulse    string
	ImpulseOffsetX  string
	ImpulseOffsetY  string
}

// HitboxFields holds the four comma/ampersand-separated hitbox geometry fields.
type HitboxFields struct {
	AoERadiusX    string
	AoERadiusY    string
	CenterOffsetX string
	CenterOffsetY string
}

// Power is one attack/ability record.
//
// The columns the editor reasons about are typed fields. Every other column lives in extra,
// and columns records the shape (column order) shared with the source table.
type Power struct {
	ID         string
	Name       string
	ParentItem string
	Combos     [SlotCount]string
	DirCombo   string
	Timing     Timing
	Hitbox     HitboxFields

	columns []string
	extra   map[string]string
}

// New creates an empty power with the given column shape.
func New(columns []string) *Power {
	return &Power{
		columns: append([]string(nil), columns...),
		extra:   make(map[string]string),
	}
}

// FromRow builds a power from one table row. Missing trailing values are treated as empty.
func FromRow(columns, row []string) *Power {
	p := New(columns)
	for i, col := range columns {
		if i < len(row) {
			p.Set(col, row[i])
		}
	}
	return p
}

// field returns a pointer to the typed field backing col, or nil for extra columns.
func (p *Power) field(col string) *string {
	switch col {
	case ColID:
		return &p.ID
	case ColName:
		return &p.Name
	case ColParentItem:
		return &p.ParentItem
	case ColComboNormal:
		return &p.Combos[SlotNormal]
	case ColComboHit:
		return &p.Combos[SlotOnHit]
	case ColComboRelease:
		return &p.Combos[SlotOnRelease]
	case ColComboWall:
		return &p.Combos[SlotOnWall]
	case ColComboButton:
		return &p.Combos[SlotOnButton]
	case ColComboInterrupt:
		return &p.Combos[SlotOnInterrupt]
	case ColComboDir:
		return &p.DirCombo
	case ColCastTime:
		return &p.Timing.CastTime
	case ColCastImpulseX:
		return &p.Timing.CastImpulseX
	case ColCastImpulseY:
		return &p.Timing.CastImpulseY
	case ColFireImpulseX:
		return &p.Timing.FireImpulseX
	case ColFireImpulseY:
		return &p.Timing.FireImpulseY
	case ColBaseDamage:
		return &p.Timing.BaseDamage
	case ColVariableImpulse:
		return &p.Timing.VariableImpulse
	case ColFixedImpulse:
		return &p.Timing.FixedImpulse
	case ColImpulseOffsetX:
		return &p.Timing.ImpulseOffsetX
	case ColImpulseOffsetY:
		return &p.Timing.ImpulseOffsetY
	case ColAoERadiusX:
		return &p.Hitbox.AoERadiusX
	case ColAoERadiusY:
		return &p.Hitbox.AoERadiusY
	case ColCenterOffsetX:
		return &p.Hitbox.CenterOffsetX
	case ColCenterOffsetY:
		return &p.Hitbox.CenterOffsetY
	default:
		return nil
	}
}

// Get returns the value of a column. Unknown columns read as empty.
func (p *Power) Get(col string) string {
	if f := p.field(col); f != nil {
		return *f
	}
	return p.extra[col]
}

// Set assigns a column value. A column outside the power's shape is appended to it.
func (p *Power) Set(col, value string) {
	if !p.HasColumn(col) {
		p.columns = append(p.columns, col)
	}
	if f := p.field(col); f != nil {
		*f = value
		return
	}
	if p.extra == nil {
		p.extra = make(map[string]string)
	}
	p.extra[col] = value
}

// HasColumn reports whether col is part of the power's shape.
func (p *Power) HasColumn(col string) bool {
	for _, c := range p.columns {
		if c == col {
			return true
		}
	}
	return false
}

// Columns returns the column shape in source order.
func (p *Power) Columns() []string {
	return append([]string(nil), p.columns...)
}

// Values returns the row in column order.
func (p *Power) Values() []string {
	row := make([]string, len(p.columns))
	for i, col := range p.columns {
		row[i] = p.Get(col)
	}
	return row
}

// Clone returns a deep copy.
func (p *Power) Clone() *Power {
	c := *p
	c.columns = p.Columns()
	c.extra = make(map[string]string, len(p.extra))
	for k, v := range p.extra {
		c.extra[k] = v
	}
	return &c
}

// Blank returns a power with the same shape and every value empty except id and name.
func (p *Power) Blank(id, name string) *Power {
	b := New(p.columns)
	b.Set(ColID, id)
	b.Set(ColName, name)
	return b
}

// Group returns the trimmed parent item, "" when the power is ungrouped.
func (p *Power) Group() string {
	return strings.TrimSpace(p.ParentItem)
}

// Combo returns the trimmed target name for a scalar slot.
func (p *Power) Combo(slot ComboSlot) string {
	if slot < 0 || int(slot) >= SlotCount {
		return ""
	}
	return strings.TrimSpace(p.Combos[slot])
}

// HasCombos reports whether any combo field is non-empty.
func (p *Power) HasCombos() bool {
	for _, slot := range Slots {
		if p.Combo(slot) != "" {
			return true
		}
	}
	return strings.TrimSpace(p.DirCombo) != ""
}

// NameMatches reports whether name refers to this power. Names compare by NameKey; an empty
// name never matches.
func (p *Power) NameMatches(name string) bool {
	key := NameKey(name)
	return key != "" && key == NameKey(p.Name)
}

// NameKey returns the trimmed, case-folded form of a power name. Two names have the same key
// exactly when strings.EqualFold reports them equal.
func NameKey(name string) string {
	return strings.Map(foldRune, strings.TrimSpace(name))
}

// foldRune maps r to the smallest rune of its simple case-folding orbit.
func foldRune(r rune) rune {
	low := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < low {
			low = f
		}
	}
	return low
}

// Label returns "Name (#ID)" for display.
func (p *Power) Label() string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "(unnamed)"
	}
	return name + " (#" + p.ID + ")"
}
