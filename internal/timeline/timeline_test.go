package timeline

import (
	"errors"
	"reflect"
	"testing"

	"github.com/samdwyer/powereditor/internal/power"
)

func newPower(set map[string]string) *power.Power {
	p := power.New([]string{power.ColID, power.ColName})
	p.Set(power.ColID, "1")
	p.Set(power.ColName, "Test")
	for col, v := range set {
		p.Set(col, v)
	}
	return p
}

func TestParseCastTime(t *testing.T) {
	tests := []struct {
		raw             string
		startup, active int
	}{
		{"12:3@something", 12, 4},
		{"5:0", 5, 1},
		{"7", 7, 1},
		{":2", 0, 3},
		{"", 0, 1},
		{"x:y", 0, 1},
		{"-3:2", 0, 3},
		{"2:-5", 2, 1},
		{"-1:-1", 0, 1},
	}
	for _, tt := range tests {
		s, a := ParseCastTime(tt.raw)
		if s != tt.startup || a != tt.active {
			t.Errorf("ParseCastTime(%q) = (%d, %d), want (%d, %d)", tt.raw, s, a, tt.startup, tt.active)
		}
	}
}

func TestDecodeNilPower(t *testing.T) {
	casts, err := Decode(nil)
	if !errors.Is(err, ErrUndefinedPower) {
		t.Errorf("Decode(nil) error = %v, want ErrUndefinedPower", err)
	}
	if err.Error() != "Undefined power" {
		t.Errorf("Decode(nil) message = %q", err.Error())
	}
	if casts == nil || len(casts) != 0 {
		t.Errorf("Decode(nil) casts = %#v, want empty non-nil", casts)
	}
}

func TestDecodeEmptyPower(t *testing.T) {
	casts, err := Decode(newPower(nil))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(casts) != 0 {
		t.Errorf("Decode() of power without cast data = %d casts, want 0", len(casts))
	}
}

func TestDecodeWithoutCastTime(t *testing.T) {
	casts, err := Decode(newPower(map[string]string{power.ColBaseDamage: "10"}))
	if err != nil {
		t.Fatal(err)
	}
	if len(casts) != 1 {
		t.Fatalf("Decode() = %d casts, want 1", len(casts))
	}
	if casts[0].Startup != 0 || casts[0].Active != 1 {
		t.Errorf("cast 0 timing = (%d, %d), want (0, 1)", casts[0].Startup, casts[0].Active)
	}
}

func TestDecodeCastCountFromLongestField(t *testing.T) {
	p := newPower(map[string]string{
		power.ColCastTime:   "12:3@x",
		power.ColBaseDamage: "10,,5",
		power.ColAoERadiusX: "40",
	})
	casts, err := Decode(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(casts) != 3 {
		t.Fatalf("Decode() = %d casts, want 3", len(casts))
	}
	if casts[0].Startup != 12 || casts[0].Active != 4 {
		t.Errorf("cast 0 timing = (%d, %d), want (12, 4)", casts[0].Startup, casts[0].Active)
	}
	if casts[1].CastTime != "" || casts[1].BaseDamage != "" {
		t.Error("Decode() must keep per-index sparsity")
	}
	if casts[1].Startup != 0 || casts[1].Active != 1 {
		t.Errorf("cast 1 raw timing = (%d, %d), want (0, 1)", casts[1].Startup, casts[1].Active)
	}
	if r := Resolve(casts, 1); r.Startup != 12 || r.Active != 4 {
		t.Errorf("Resolve(1) timing = (%d, %d), want cast 0's (12, 4)", r.Startup, r.Active)
	}
	if casts[1].Hitboxes != nil {
		t.Error("cast 1 has no hitbox of its own")
	}
}

func TestDecodeHitboxCountDrivesCasts(t *testing.T) {
	p := newPower(map[string]string{
		power.ColCastTime:      "1:1",
		power.ColAoERadiusX:    "40&20,35,30",
		power.ColAoERadiusY:    "10&5",
		power.ColCenterOffsetX: "0&15",
	})
	casts, err := Decode(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(casts) != 3 {
		t.Fatalf("Decode() = %d casts, want 3", len(casts))
	}
	h := casts[0].Hitboxes
	if h == nil || h.Count() != 2 {
		t.Fatalf("cast 0 hitbox count = %d, want 2", h.Count())
	}
	if !reflect.DeepEqual(h.AoERadius.X, []string{"40", "20"}) {
		t.Errorf("AoERadius.X = %v", h.AoERadius.X)
	}
	shapes := h.Shapes()
	want := []Shape{{RadiusX: 40, RadiusY: 10}, {RadiusX: 20, RadiusY: 5, OffsetX: 15}}
	if !reflect.DeepEqual(shapes, want) {
		t.Errorf("Shapes() = %+v, want %+v", shapes, want)
	}
	if casts[2].Hitboxes == nil || casts[2].Hitboxes.Count() != 1 {
		t.Error("cast 2 should carry one hitbox")
	}
}

func TestShapesReuseFirstElement(t *testing.T) {
	h := &Hitbox{
		AoERadius:    SeqPair{X: []string{"40", "20"}, Y: []string{"10"}},
		CenterOffset: SeqPair{X: []string{"5"}},
	}
	shapes := h.Shapes()
	if len(shapes) != 2 {
		t.Fatalf("Shapes() length = %d, want 2", len(shapes))
	}
	if shapes[1].RadiusY != 10 || shapes[1].OffsetX != 5 || shapes[1].OffsetY != 0 {
		t.Errorf("Shapes()[1] = %+v", shapes[1])
	}
}

func TestResolveFallback(t *testing.T) {
	p := newPower(map[string]string{
		power.ColCastTime:     "3:2,",
		power.ColBaseDamage:   "10,",
		power.ColCastImpulseX: "1,2",
		power.ColCastImpulseY: "5",
		power.ColAoERadiusX:   "40,",
	})
	casts, err := Decode(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(casts) != 2 {
		t.Fatalf("Decode() = %d casts, want 2", len(casts))
	}

	c := Resolve(casts, 1)
	if c.BaseDamage != "10" {
		t.Errorf("resolved BaseDamage = %q, want %q", c.BaseDamage, "10")
	}
	if c.Startup != 3 || c.Active != 3 {
		t.Errorf("resolved timing = (%d, %d), want (3, 3)", c.Startup, c.Active)
	}
	if c.CastImpulse.X != "2" || c.CastImpulse.Y != "5" {
		t.Errorf("resolved CastImpulse = %+v, want {2 5}", c.CastImpulse)
	}
	if c.Hitboxes == nil || c.Hitboxes.AoERadius.X[0] != "40" {
		t.Errorf("resolved Hitboxes = %+v, want cast 0 geometry", c.Hitboxes)
	}

	if casts[1].BaseDamage != "" {
		t.Error("Resolve() must not modify the decoded slice")
	}
}

func TestResolveHitboxPerField(t *testing.T) {
	casts := []Cast{
		{Hitboxes: &Hitbox{AoERadius: SeqPair{X: []string{"40"}, Y: []string{"10"}}}},
		{Hitboxes: &Hitbox{AoERadius: SeqPair{X: []string{"60"}}}},
	}
	c := Resolve(casts, 1)
	if c.Hitboxes.AoERadius.X[0] != "60" || c.Hitboxes.AoERadius.Y[0] != "10" {
		t.Errorf("Resolve() hitbox = %+v, want X from cast 1 and Y from cast 0", c.Hitboxes)
	}
}

func TestResolveOutOfRange(t *testing.T) {
	if got := Resolve(nil, 0); !reflect.DeepEqual(got, Cast{}) {
		t.Errorf("Resolve(nil, 0) = %+v, want zero", got)
	}
	if got := ResolveAll(nil); len(got) != 0 {
		t.Errorf("ResolveAll(nil) = %+v", got)
	}
}

func TestSuppressesHitbox(t *testing.T) {
	casts := []Cast{{BaseDamage: "0"}, {BaseDamage: ""}, {BaseDamage: "12"}}
	if !Resolve(casts, 0).SuppressesHitbox() {
		t.Error("damage 0 should suppress")
	}
	if !Resolve(casts, 1).SuppressesHitbox() {
		t.Error("empty damage inherits 0 from cast 0 and should suppress")
	}
	if Resolve(casts, 2).SuppressesHitbox() {
		t.Error("damage 12 should not suppress")
	}
}

func TestVecInterpolation(t *testing.T) {
	v := Vec{X: "0~10", Y: "4"}
	x, y := v.At(0.5)
	if x != 5 || y != 4 {
		t.Errorf("At(0.5) = (%v, %v), want (5, 4)", x, y)
	}
	x, _ = v.At(1)
	if x != 10 {
		t.Errorf("At(1) x = %v, want 10", x)
	}
	xs, ys := Vec{}.Samples()
	if xs != nil || ys != nil {
		t.Error("empty Vec should have no samples")
	}
}
