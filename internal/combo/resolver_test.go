package combo

import (
	"testing"

	"github.com/samdwyer/powereditor/internal/direction"
	"github.com/samdwyer/powereditor/internal/power"
)

var columns = []string{
	power.ColID, power.ColName,
	power.ColComboNormal, power.ColComboHit, power.ColComboRelease,
	power.ColComboWall, power.ColComboButton, power.ColComboInterrupt,
	power.ColComboDir,
}

// newPower builds a power with the given normal combo and directional list.
func newPower(id, name, normal, dir string) *power.Power {
	p := power.New(columns)
	p.Set(power.ColID, id)
	p.Set(power.ColName, name)
	p.Set(power.ColComboNormal, normal)
	p.Set(power.ColComboDir, dir)
	return p
}

func TestForwardNoCombos(t *testing.T) {
	a := newPower("1", "Jab", "", "")
	b := newPower("2", "Kick", "", "")
	if got := Forward(a, []*power.Power{a, b}); got != nil {
		t.Errorf("Forward() = %+v, want nil", got)
	}
}

func TestForwardUnresolvedIsNil(t *testing.T) {
	a := newPower("1", "Jab", "Missing", "up:Nowhere")
	if got := Forward(a, []*power.Power{a}); got != nil {
		t.Errorf("Forward() with only dangling names = %+v, want nil", got)
	}
}

func TestForwardCaseInsensitive(t *testing.T) {
	a := newPower("1", "Jab", "Neutral Light", "")
	b := newPower("2", "neutral light", "", "")
	got := Forward(a, []*power.Power{a, b})
	if got.Slot(power.SlotNormal) != b {
		t.Errorf("Forward().Slot(normal) = %v, want %v", got.Slot(power.SlotNormal), b)
	}
}

func TestForwardFirstMatchWins(t *testing.T) {
	a := newPower("1", "Jab", "Twin", "")
	first := newPower("2", "Twin", "", "")
	second := newPower("3", "twin", "", "")
	got := Forward(a, []*power.Power{a, first, second})
	if got.Slot(power.SlotNormal) != first {
		t.Errorf("Forward() picked %v, want first match %v", got.Slot(power.SlotNormal).ID, first.ID)
	}
}

func TestForwardAllSlots(t *testing.T) {
	target := newPower("9", "Target", "", "")
	src := power.New(columns)
	src.Set(power.ColID, "1")
	src.Set(power.ColName, "Source")
	for _, slot := range power.Slots {
		src.Set(slot.Column(), "target")
	}
	got := Forward(src, []*power.Power{src, target})
	for _, slot := range power.Slots {
		if got.Slot(slot) != target {
			t.Errorf("Slot(%v) = %v, want target", slot, got.Slot(slot))
		}
	}
	if n := len(got.Targets()); n != 1 {
		t.Errorf("Targets() length = %d, want 1 (deduplicated)", n)
	}
}

func TestForwardDirectional(t *testing.T) {
	upAir := newPower("2", "Up Air", "", "")
	downAir := newPower("3", "Down Air", "", "")
	src := newPower("1", "Jab", "", "up:Up Air,down:Down Air")
	all := []*power.Power{src, upAir, downAir}

	got := Forward(src, all)
	if len(got.Directional) != 2 {
		t.Fatalf("Directional length = %d, want 2", len(got.Directional))
	}
	if got.Directional[0].Direction != direction.Up || got.Directional[0].Power != upAir {
		t.Errorf("Directional[0] = %+v, want up -> Up Air", got.Directional[0])
	}
	if got.Directional[1].Direction != direction.Down || got.Directional[1].Power != downAir {
		t.Errorf("Directional[1] = %+v, want down -> Down Air", got.Directional[1])
	}
}

func TestForwardDirectionalDropsMalformed(t *testing.T) {
	upAir := newPower("2", "Up Air", "", "")
	x := newPower("3", "X", "", "")
	tests := []struct {
		dir  string
		want int
	}{
		{"up:Up Air,sideways:X", 1},
		{"up:Up Air,X", 1},
		{"up:Up Air,down:X:extra", 1},
		{"up:Up Air,down:Nobody", 1},
		{"up:Up Air,,", 1},
	}
	for _, tt := range tests {
		src := newPower("1", "Jab", "", tt.dir)
		got := Forward(src, []*power.Power{src, upAir, x})
		if got == nil || len(got.Directional) != tt.want {
			t.Errorf("Forward(%q) directional = %+v, want %d entries", tt.dir, got, tt.want)
		}
	}
}

func TestReverse(t *testing.T) {
	target := newPower("9", "Finisher", "", "")
	a := newPower("1", "Jab", "finisher", "")
	b := newPower("2", "Kick", "FINISHER", "down:Finisher")
	c := newPower("3", "Slide", "", "up:finisher,down:Other")
	all := []*power.Power{a, b, c, target}

	got := Reverse(target, all)
	if got.Slot(power.SlotNormal) != a {
		t.Errorf("Reverse().Slot(normal) = %v, want first referrer %v", got.Slot(power.SlotNormal), a)
	}
	if len(got.Directional) != 2 {
		t.Fatalf("Reverse().Directional length = %d, want 2", len(got.Directional))
	}
	if got.Directional[0].Power != b || got.Directional[0].Direction != direction.Down {
		t.Errorf("Directional[0] = %+v, want Kick/down", got.Directional[0])
	}
	if got.Directional[1].Power != c || got.Directional[1].Direction != direction.Up {
		t.Errorf("Directional[1] = %+v, want Slide/up", got.Directional[1])
	}
}

func TestReverseNone(t *testing.T) {
	a := newPower("1", "Jab", "", "")
	b := newPower("2", "Kick", "", "")
	if got := Reverse(a, []*power.Power{a, b}); got != nil {
		t.Errorf("Reverse() = %+v, want nil", got)
	}
	if got := Reverse(nil, []*power.Power{a}); got != nil {
		t.Errorf("Reverse(nil) = %+v, want nil", got)
	}
}

func TestReverseUnnamedTarget(t *testing.T) {
	target := newPower("1", "", "", "")
	other := newPower("2", "Jab", "", "")
	if got := Reverse(target, []*power.Power{target, other}); got != nil {
		t.Errorf("Reverse() of unnamed power matched empty fields: %+v", got)
	}
}

func TestIndexByID(t *testing.T) {
	a := newPower("1", "Jab", "", "")
	idx := NewIndex([]*power.Power{a})
	if idx.ByID("1") != a || idx.ByID("2") != nil {
		t.Error("ByID() lookup mismatch")
	}
	if idx.ByName("  jab ") != a {
		t.Error("ByName() should trim and fold case")
	}
}

func TestForwardAndReverseFoldAlike(t *testing.T) {
	kick := newPower("1", "Kick", "", "")
	jab := newPower("2", "Jab", "\u212Aick", "up:\u212AICK")
	all := []*power.Power{kick, jab}

	fwd := Forward(jab, all)
	if fwd.Slot(power.SlotNormal) != kick {
		t.Errorf("Forward() normal = %v, want Kick", fwd.Slot(power.SlotNormal))
	}
	if len(fwd.Directional) != 1 || fwd.Directional[0].Power != kick {
		t.Errorf("Forward() directional = %+v, want up -> Kick", fwd.Directional)
	}

	rev := Reverse(kick, all)
	if rev.Slot(power.SlotNormal) != jab {
		t.Errorf("Reverse() normal = %v, want Jab", rev.Slot(power.SlotNormal))
	}
	if len(rev.Directional) != 1 || rev.Directional[0].Power != jab {
		t.Errorf("Reverse() directional = %+v, want Jab", rev.Directional)
	}
}
