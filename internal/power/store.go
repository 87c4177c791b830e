package power

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoPower is returned when an operation names an id that is not in the store.
	ErrNoPower = errors.New("power not found")
	// ErrNoTemplate is returned by CreateEmpty when there is nothing to copy the shape from.
	ErrNoTemplate = errors.New("no power to copy columns from")
	// ErrDuplicateID is returned when an edit would give two powers the same id.
	ErrDuplicateID = errors.New("power id is already used")
	// ErrEmptyID is returned when an edit would leave a power without an id.
	ErrEmptyID = errors.New("power id cannot be empty")
)

// ChangeKind describes a store mutation.
type ChangeKind int

const (
	// ChangeReplaced means the whole list was swapped (load/reload).
	ChangeReplaced ChangeKind = iota
	// ChangeCreated means a power was appended.
	ChangeCreated
	// ChangeDeleted means a power was removed.
	ChangeDeleted
	// ChangeField means a single column of one power was edited.
	ChangeField
	// ChangePasted means one power's values were replaced wholesale.
	ChangePasted
)

// String returns a human-readable change name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeReplaced:
		return "replaced"
	case ChangeCreated:
		return "created"
	case ChangeDeleted:
		return "deleted"
	case ChangeField:
		return "field"
	case ChangePasted:
		return "pasted"
	default:
		return "unknown"
	}
}

// Structural reports whether the change can alter combo edges, names or grouping.
// Field edits are structural only for columns the graph reads.
func (c Change) Structural() bool {
	if c.Kind != ChangeField {
		return true
	}
	switch c.Column {
	case ColID, ColName, ColParentItem, ColComboDir,
		ColComboNormal, ColComboHit, ColComboRelease, ColComboWall, ColComboButton, ColComboInterrupt:
		return true
	}
	return false
}

// Change is delivered to subscribers after every mutation.
type Change struct {
	Kind   ChangeKind
	ID     string // affected power, empty for ChangeReplaced
	Column string // edited column, ChangeField only
}

// Store is the single owner of the loaded power list. Derived views subscribe to it and
// recompute on change. It is not safe for concurrent use; the editor mutates it from its
// event loop only.
type Store struct {
	powers      []*Power
	byID        map[string]*Power
	lastIssued  int
	subscribers []func(Change)
}

// NewStore creates a store holding powers.
func NewStore(powers []*Power) *Store {
	s := &Store{}
	s.set(powers)
	return s
}

// Subscribe registers fn to be called after each mutation.
func (s *Store) Subscribe(fn func(Change)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify(c Change) {
	for _, fn := range s.subscribers {
		fn(c)
	}
}

func (s *Store) set(powers []*Power) {
	s.powers = powers
	s.byID = make(map[string]*Power, len(powers))
	for _, p := range powers {
		if _, dup := s.byID[p.ID]; !dup {
			s.byID[p.ID] = p
		}
	}
}

// Replace swaps in a freshly loaded list.
func (s *Store) Replace(powers []*Power) {
	s.set(powers)
	s.lastIssued = 0
	s.notify(Change{Kind: ChangeReplaced})
}

// All returns the power list in source order. Callers must not modify the slice.
func (s *Store) All() []*Power {
	return s.powers
}

// Count returns the number of powers.
func (s *Store) Count() int {
	return len(s.powers)
}

// GetByID returns the power with the given id, or nil if not found.
func (s *Store) GetByID(id string) *Power {
	return s.byID[id]
}

// IndexOf returns the list position of id, or -1.
func (s *Store) IndexOf(id string) int {
	for i, p := range s.powers {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// nextID returns count+1, bumped past any id already present or handed out this session.
func (s *Store) nextID() string {
	n := len(s.powers) + 1
	if n <= s.lastIssued {
		n = s.lastIssued + 1
	}
	for {
		id := strconv.Itoa(n)
		if _, taken := s.byID[id]; !taken {
			s.lastIssued = n
			return id
		}
		n++
	}
}

// CreateEmpty appends a power with the column shape of templateID and every value empty.
// An empty templateID uses the first power in the list.
func (s *Store) CreateEmpty(templateID string) (*Power, error) {
	var template *Power
	if templateID != "" {
		template = s.byID[templateID]
		if template == nil {
			return nil, fmt.Errorf("create from %q: %w", templateID, ErrNoPower)
		}
	} else if len(s.powers) > 0 {
		template = s.powers[0]
	}
	if template == nil {
		return nil, ErrNoTemplate
	}

	id := s.nextID()
	p := template.Blank(id, "New Power "+id)
	s.powers = append(s.powers, p)
	s.byID[id] = p
	s.notify(Change{Kind: ChangeCreated, ID: id})
	return p, nil
}

// Delete removes the power with the given id.
func (s *Store) Delete(id string) error {
	idx := s.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete %q: %w", id, ErrNoPower)
	}
	s.powers = append(s.powers[:idx:idx], s.powers[idx+1:]...)
	s.set(s.powers)
	s.notify(Change{Kind: ChangeDeleted, ID: id})
	return nil
}

// SetField replaces one column value.
func (s *Store) SetField(id, column, value string) error {
	p := s.byID[id]
	if p == nil {
		return fmt.Errorf("edit %q: %w", id, ErrNoPower)
	}
	if column == ColID {
		if err := s.checkID(id, value); err != nil {
			return err
		}
	}
	p.Set(column, value)
	if column == ColID && value != id {
		s.set(s.powers)
		id = value
	}
	s.notify(Change{Kind: ChangeField, ID: id, Column: column})
	return nil
}

// Paste replaces every value of the power with values, keeping its column shape.
// Columns missing from values become empty; columns outside the shape are ignored.
func (s *Store) Paste(id string, values map[string]string) error {
	p := s.byID[id]
	if p == nil {
		return fmt.Errorf("paste into %q: %w", id, ErrNoPower)
	}
	if err := s.checkID(id, values[ColID]); err != nil {
		return err
	}
	for _, col := range p.columns {
		p.Set(col, values[col])
	}
	s.set(s.powers)
	s.notify(Change{Kind: ChangePasted, ID: p.ID})
	return nil
}

// checkID reports whether the power currently called id may be renamed to next.
func (s *Store) checkID(id, next string) error {
	if strings.TrimSpace(next) == "" {
		return ErrEmptyID
	}
	if next != id && s.byID[next] != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateID, next)
	}
	return nil
}
