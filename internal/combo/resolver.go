// Package combo resolves the name-based combo references between powers into graph edges.
//
// A power names its follow-ups in six single-target fields (normal, on-hit, on-release,
// on-wall, on-button, on-interrupt) and one directional list ("Up:Up Air,Down:Down Air").
// Names match case-insensitively; when several powers share a name the first one in list
// order wins. References that cannot be resolved are dropped silently.
package combo

import (
	"github.com/samdwyer/powereditor/internal/direction"
	"github.com/samdwyer/powereditor/internal/power"
	"github.com/samdwyer/powereditor/internal/strlist"
)

// DirectionalEdge is one resolved entry of a directional combo list.
type DirectionalEdge struct {
	Direction direction.Direction
	Power     *power.Power
}

// Tree holds the resolved combo neighbours of one power, in either direction.
// A power with no neighbours is represented by a nil *Tree.
type Tree struct {
	Slots       [power.SlotCount]*power.Power
	Directional []DirectionalEdge
}

// Slot returns the power in a scalar slot, or nil.
func (t *Tree) Slot(s power.ComboSlot) *power.Power {
	if t == nil || s < 0 || int(s) >= power.SlotCount {
		return nil
	}
	return t.Slots[s]
}

// Targets returns every distinct power in the tree, slots first then directional entries.
func (t *Tree) Targets() []*power.Power {
	if t == nil {
		return nil
	}
	var out []*power.Power
	seen := make(map[*power.Power]bool)
	add := func(p *power.Power) {
		if p != nil && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range t.Slots {
		add(p)
	}
	for _, e := range t.Directional {
		add(e.Power)
	}
	return out
}

func (t *Tree) empty() bool {
	for _, p := range t.Slots {
		if p != nil {
			return false
		}
	}
	return len(t.Directional) == 0
}

// orNil collapses an empty tree to nil so callers can tell "no combos" from "has combos".
func (t *Tree) orNil() *Tree {
	if t.empty() {
		return nil
	}
	return t
}

// Index resolves names to powers in O(1). Build one per structural change of the list.
type Index struct {
	byName map[string]*power.Power
	byID   map[string]*power.Power
}

// NewIndex indexes powers by folded name (first occurrence wins) and by id.
func NewIndex(powers []*power.Power) *Index {
	idx := &Index{
		byName: make(map[string]*power.Power, len(powers)),
		byID:   make(map[string]*power.Power, len(powers)),
	}
	for _, p := range powers {
		if key := power.NameKey(p.Name); key != "" {
			if _, dup := idx.byName[key]; !dup {
				idx.byName[key] = p
			}
		}
		if _, dup := idx.byID[p.ID]; !dup {
			idx.byID[p.ID] = p
		}
	}
	return idx
}

// ByName returns the first power whose name matches, or nil.
func (idx *Index) ByName(name string) *power.Power {
	key := power.NameKey(name)
	if key == "" {
		return nil
	}
	return idx.byName[key]
}

// ByID returns the power with the given id, or nil.
func (idx *Index) ByID(id string) *power.Power {
	return idx.byID[id]
}

// Forward resolves the outgoing combos of p. It returns nil when none resolve.
func (idx *Index) Forward(p *power.Power) *Tree {
	if p == nil {
		return nil
	}
	t := &Tree{}
	for _, slot := range power.Slots {
		t.Slots[slot] = idx.ByName(p.Combo(slot))
	}
	for _, entry := range strlist.Split(p.DirCombo, strlist.Comma) {
		token, name, ok := strlist.Pair(entry)
		if !ok {
			continue
		}
		dir, ok := direction.Lookup(token)
		if !ok {
			continue
		}
		target := idx.ByName(name)
		if target == nil {
			continue
		}
		t.Directional = append(t.Directional, DirectionalEdge{Direction: dir, Power: target})
	}
	return t.orNil()
}

// Forward resolves the outgoing combos of p against all.
func Forward(p *power.Power, all []*power.Power) *Tree {
	return NewIndex(all).Forward(p)
}

// Reverse finds the powers that combo into target. Each scalar slot holds the first power
// (in list order) whose field of that kind names target; directional matches are all kept.
func Reverse(target *power.Power, all []*power.Power) *Tree {
	if target == nil {
		return nil
	}
	t := &Tree{}
	for _, p := range all {
		for _, slot := range power.Slots {
			if t.Slots[slot] == nil && target.NameMatches(p.Combo(slot)) {
				t.Slots[slot] = p
			}
		}
		for _, entry := range strlist.Split(p.DirCombo, strlist.Comma) {
			token, name, ok := strlist.Pair(entry)
			if !ok || !target.NameMatches(name) {
				continue
			}
			dir, ok := direction.Lookup(token)
			if !ok {
				continue
			}
			t.Directional = append(t.Directional, DirectionalEdge{Direction: dir, Power: p})
		}
	}
	return t.orNil()
}
