// Package timeline decodes a power's packed cast fields into per-cast animation data.
//
// Each of the ten timing fields and the four hitbox fields is a comma-separated list with
// one element per cast. The lists are independently lengthed: the longest one decides how
// many casts a power has, and shorter lists simply have nothing to say about later casts.
//
// Decode keeps that sparsity. The data convention that an empty element means "same as cast
// 0" is applied only when a cast is requested for display, through Resolve.
package timeline

import (
	"errors"
	"strings"

	"github.com/samdwyer/powereditor/internal/power"
	"github.com/samdwyer/powereditor/internal/strlist"
)

// ErrUndefinedPower is returned by Decode when no power is given.
var ErrUndefinedPower = errors.New("Undefined power")

// Vec is a raw (x, y) field pair. Either coordinate may hold tilde-separated samples.
type Vec struct {
	X string
	Y string
}

// Samples decodes both coordinates into per-sub-frame values.
func (v Vec) Samples() (xs, ys []float64) {
	return strlist.Impulse(v.X), strlist.Impulse(v.Y)
}

// At returns the coordinates interpolated at t in [0, 1] across the sub-frame samples.
// Empty coordinates are 0.
func (v Vec) At(t float64) (x, y float64) {
	return interpolate(strlist.Impulse(v.X), t), interpolate(strlist.Impulse(v.Y), t)
}

func interpolate(samples []float64, t float64) float64 {
	switch len(samples) {
	case 0:
		return 0
	case 1:
		return samples[0]
	}
	if t <= 0 {
		return samples[0]
	}
	if t >= 1 {
		return samples[len(samples)-1]
	}
	pos := t * float64(len(samples)-1)
	i := int(pos)
	frac := pos - float64(i)
	return samples[i] + (samples[i+1]-samples[i])*frac
}

// SeqPair is a pair of parallel x/y sequences.
type SeqPair struct {
	X []string
	Y []string
}

// Hitbox holds every hitbox shape of one cast. Index i across the four sequences is one shape.
type Hitbox struct {
	AoERadius    SeqPair
	CenterOffset SeqPair
}

// Shape is one decoded hitbox ellipse.
type Shape struct {
	RadiusX, RadiusY float64
	OffsetX, OffsetY float64
}

// Count returns the number of shapes, the longest of the four sequences.
func (h *Hitbox) Count() int {
	if h == nil {
		return 0
	}
	return strlist.MaxLen(h.AoERadius.X, h.AoERadius.Y, h.CenterOffset.X, h.CenterOffset.Y)
}

// Shapes decodes the hitbox into numeric shapes. A coordinate missing at index i reuses
// index 0 of the same sequence, then falls back to 0.
func (h *Hitbox) Shapes() []Shape {
	n := h.Count()
	if n == 0 {
		return nil
	}
	shapes := make([]Shape, n)
	for i := range shapes {
		shapes[i] = Shape{
			RadiusX: strlist.Float(elemOrFirst(h.AoERadius.X, i)),
			RadiusY: strlist.Float(elemOrFirst(h.AoERadius.Y, i)),
			OffsetX: strlist.Float(elemOrFirst(h.CenterOffset.X, i)),
			OffsetY: strlist.Float(elemOrFirst(h.CenterOffset.Y, i)),
		}
	}
	return shapes
}

func elemOrFirst(seq []string, i int) string {
	if v := strlist.At(seq, i); strings.TrimSpace(v) != "" {
		return v
	}
	return strlist.At(seq, 0)
}

func (h *Hitbox) empty() bool {
	return h == nil || h.Count() == 0
}

// Cast is one timed sub-phase of a power.
type Cast struct {
	// CastTime is the raw "START:ACTIVE@EXTRA" element; Startup and Active are decoded from it.
	CastTime string
	Startup  int
	Active   int

	// Hitboxes is nil when the cast declares no geometry of its own.
	Hitboxes *Hitbox

	CastImpulse     Vec
	FireImpulse     Vec
	BaseDamage      string
	VariableImpulse string
	FixedImpulse    string
	ImpulseOffset   Vec
}

// ParseCastTime decodes "START:ACTIVE@EXTRA". Anything after '@' is ignored, missing parts
// are 0, negative parts are clamped to 0, and the active count is one-frame inclusive
// (ACTIVE+1), so it is always at least 1.
func ParseCastTime(raw string) (startup, active int) {
	if at := strings.IndexByte(raw, '@'); at >= 0 {
		raw = raw[:at]
	}
	parts := strings.SplitN(raw, strlist.Colon, 2)
	startup = max(0, strlist.Int(strlist.At(parts, 0)))
	active = max(0, strlist.Int(strlist.At(parts, 1))) + 1
	return startup, active
}

// Decode splits p's cast fields into casts. A nil power yields no casts and ErrUndefinedPower.
func Decode(p *power.Power) ([]Cast, error) {
	if p == nil {
		return []Cast{}, ErrUndefinedPower
	}

	tm := p.Timing
	castTime := strlist.Split(tm.CastTime, strlist.Comma)
	castX := strlist.Split(tm.CastImpulseX, strlist.Comma)
	castY := strlist.Split(tm.CastImpulseY, strlist.Comma)
	fireX := strlist.Split(tm.FireImpulseX, strlist.Comma)
	fireY := strlist.Split(tm.FireImpulseY, strlist.Comma)
	damage := strlist.Split(tm.BaseDamage, strlist.Comma)
	variable := strlist.Split(tm.VariableImpulse, strlist.Comma)
	fixed := strlist.Split(tm.FixedImpulse, strlist.Comma)
	offX := strlist.Split(tm.ImpulseOffsetX, strlist.Comma)
	offY := strlist.Split(tm.ImpulseOffsetY, strlist.Comma)

	hitboxes := decodeHitboxes(p.Hitbox)

	n := strlist.MaxLen(castTime, castX, castY, fireX, fireY, damage, variable, fixed, offX, offY)
	if len(hitboxes) > n {
		n = len(hitboxes)
	}

	casts := make([]Cast, n)
	for i := range casts {
		raw := strlist.At(castTime, i)
		startup, active := ParseCastTime(raw)
		c := Cast{
			CastTime:        raw,
			Startup:         startup,
			Active:          active,
			CastImpulse:     Vec{X: strlist.At(castX, i), Y: strlist.At(castY, i)},
			FireImpulse:     Vec{X: strlist.At(fireX, i), Y: strlist.At(fireY, i)},
			BaseDamage:      strlist.At(damage, i),
			VariableImpulse: strlist.At(variable, i),
			FixedImpulse:    strlist.At(fixed, i),
			ImpulseOffset:   Vec{X: strlist.At(offX, i), Y: strlist.At(offY, i)},
		}
		if i < len(hitboxes) {
			c.Hitboxes = hitboxes[i]
		}
		casts[i] = c
	}
	return casts, nil
}

// decodeHitboxes returns one entry per comma group; groups with no geometry are nil.
func decodeHitboxes(f power.HitboxFields) []*Hitbox {
	rx := strlist.SplitNested(f.AoERadiusX)
	ry := strlist.SplitNested(f.AoERadiusY)
	ox := strlist.SplitNested(f.CenterOffsetX)
	oy := strlist.SplitNested(f.CenterOffsetY)

	n := max(len(rx), len(ry), len(ox), len(oy))
	out := make([]*Hitbox, n)
	for i := range out {
		h := &Hitbox{
			AoERadius:    SeqPair{X: nestedAt(rx, i), Y: nestedAt(ry, i)},
			CenterOffset: SeqPair{X: nestedAt(ox, i), Y: nestedAt(oy, i)},
		}
		if !h.empty() {
			out[i] = h
		}
	}
	return out
}

func nestedAt(groups [][]string, i int) []string {
	if i < 0 || i >= len(groups) {
		return nil
	}
	return groups[i]
}

// Resolve returns cast i with every empty field filled from cast 0.
// The input slice is not modified. Out-of-range i yields a zero Cast.
func Resolve(casts []Cast, i int) Cast {
	if i < 0 || i >= len(casts) {
		return Cast{}
	}
	c := casts[i]
	if i == 0 {
		return c
	}
	base := casts[0]

	if blank(c.CastTime) {
		c.CastTime = base.CastTime
		c.Startup, c.Active = ParseCastTime(base.CastTime)
	}
	c.CastImpulse = fillVec(c.CastImpulse, base.CastImpulse)
	c.FireImpulse = fillVec(c.FireImpulse, base.FireImpulse)
	c.ImpulseOffset = fillVec(c.ImpulseOffset, base.ImpulseOffset)
	c.BaseDamage = fill(c.BaseDamage, base.BaseDamage)
	c.VariableImpulse = fill(c.VariableImpulse, base.VariableImpulse)
	c.FixedImpulse = fill(c.FixedImpulse, base.FixedImpulse)
	c.Hitboxes = fillHitbox(c.Hitboxes, base.Hitboxes)
	return c
}

// ResolveAll resolves every cast.
func ResolveAll(casts []Cast) []Cast {
	out := make([]Cast, len(casts))
	for i := range casts {
		out[i] = Resolve(casts, i)
	}
	return out
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func fill(v, base string) string {
	if blank(v) {
		return base
	}
	return v
}

func fillVec(v, base Vec) Vec {
	return Vec{X: fill(v.X, base.X), Y: fill(v.Y, base.Y)}
}

func fillSeq(v, base []string) []string {
	if len(v) == 0 {
		return base
	}
	return v
}

func fillHitbox(h, base *Hitbox) *Hitbox {
	if h == nil {
		return base
	}
	if base == nil {
		return h
	}
	return &Hitbox{
		AoERadius: SeqPair{
			X: fillSeq(h.AoERadius.X, base.AoERadius.X),
			Y: fillSeq(h.AoERadius.Y, base.AoERadius.Y),
		},
		CenterOffset: SeqPair{
			X: fillSeq(h.CenterOffset.X, base.CenterOffset.X),
			Y: fillSeq(h.CenterOffset.Y, base.CenterOffset.Y),
		},
	}
}

// SuppressesHitbox reports whether a resolved cast deals no damage and so draws no hitbox.
func (c Cast) SuppressesHitbox() bool {
	return strings.TrimSpace(c.BaseDamage) == "0"
}
