package strlist

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		input string
		sep   string
		want  []string
	}{
		{"", Comma, nil},
		{"a", Comma, []string{"a"}},
		{"a,b,c", Comma, []string{"a", "b", "c"}},
		{"a,,c", Comma, []string{"a", "", "c"}},
		{"1~2~3", Tilde, []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		got := Split(tt.input, tt.sep)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Split(%q, %q) = %#v, want %#v", tt.input, tt.sep, got, tt.want)
		}
	}
}

func TestSplitNested(t *testing.T) {
	got := SplitNested("40&20,,35")
	want := [][]string{{"40", "20"}, nil, {"35"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitNested() = %#v, want %#v", got, want)
	}

	if got := SplitNested(""); len(got) != 0 {
		t.Errorf("SplitNested(\"\") = %#v, want empty", got)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"Up:Up Air,Down:Down Air",
		"4:2,6:3@x,,1:0",
		"a",
		",,",
	}
	for _, in := range inputs {
		parts := Split(in, Comma)
		if got := Join(parts, Comma); got != in {
			t.Errorf("Join(Split(%q)) = %q", in, got)
		}
	}

	nested := []string{"40&20,35", "1&2&3,,4", "x"}
	for _, in := range nested {
		groups := SplitNested(in)
		if got := JoinNested(groups); got != in {
			t.Errorf("JoinNested(SplitNested(%q)) = %q", in, got)
		}
	}
}

func TestPair(t *testing.T) {
	tests := []struct {
		input       string
		left, right string
		ok          bool
	}{
		{"up:Up Air", "up", "Up Air", true},
		{" down : Down Air ", "down", "Down Air", true},
		{"nocolon", "", "", false},
		{"a:b:c", "", "", false},
	}
	for _, tt := range tests {
		l, r, ok := Pair(tt.input)
		if l != tt.left || r != tt.right || ok != tt.ok {
			t.Errorf("Pair(%q) = (%q, %q, %v), want (%q, %q, %v)", tt.input, l, r, ok, tt.left, tt.right, tt.ok)
		}
	}
}

func TestNumberCoercion(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"12", 12},
		{" 3.5 ", 3.5},
		{"-4", -4},
		{"", 0},
		{"abc", 0},
		{"12px", 0},
	}
	for _, tt := range tests {
		if got := Float(tt.input); got != tt.want {
			t.Errorf("Float(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if got := Int("7.9"); got != 7 {
		t.Errorf("Int(%q) = %d, want 7", "7.9", got)
	}
}

func TestImpulse(t *testing.T) {
	if got := Impulse("0~5~x"); !reflect.DeepEqual(got, []float64{0, 5, 0}) {
		t.Errorf("Impulse() = %v, want [0 5 0]", got)
	}
	if got := Impulse(""); got != nil {
		t.Errorf("Impulse(\"\") = %v, want nil", got)
	}
}

func TestAtAndMaxLen(t *testing.T) {
	parts := []string{"a", "b"}
	if At(parts, 1) != "b" || At(parts, 2) != "" || At(parts, -1) != "" {
		t.Error("At() did not bound-check")
	}
	if got := MaxLen(parts, nil, []string{"x", "y", "z"}); got != 3 {
		t.Errorf("MaxLen() = %d, want 3", got)
	}
}
