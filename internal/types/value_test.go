package types

import (
	"testing"
)

func TestAsBool(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null(), false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero", Num(0), false},
		{"nonzero", Num(3.5), true},
		{"negative", Num(-1), true},
		{"empty string", Str(""), false},
		{"string", Str("x"), true},
		{"empty list", List([]Value{}), false},
		{"list", List([]Value{Num(0)}), true},
		{"func", NewFunc(func([]Value) (Value, error) { return Null(), nil }), true},
		{"module", Mod(map[string]Value{}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.AsBool(); got != tt.want {
				t.Errorf("AsBool(%s) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestAsStr(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), "nil"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"integral", Num(42), "42"},
		{"negative integral", Num(-7), "-7"},
		{"fraction", Num(2.5), "2.5"},
		{"string", Str("hi"), "hi"},
		{"empty list", List([]Value{}), "[]"},
		{"mixed list", List([]Value{Str("a"), Num(1), Bool(true)}), `["a", 1, true]`},
		{"nested list", List([]Value{List([]Value{Num(1), Num(2)})}), "[[1, 2]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.AsStr(); got != tt.want {
				t.Errorf("AsStr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"null null", Null(), Null(), true},
		{"num num", Num(1), Num(1), true},
		{"num num diff", Num(1), Num(2), false},
		{"str str", Str("a"), Str("a"), true},
		{"num str never equal", Num(1), Str("1"), false},
		{"bool num never equal", Bool(true), Num(1), false},
		{"null false never equal", Null(), Bool(false), false},
		{"lists elementwise", StrList([]string{"a", "b"}), StrList([]string{"a", "b"}), true},
		{"lists length", StrList([]string{"a"}), StrList([]string{"a", "b"}), false},
		{"lists element", StrList([]string{"a"}), StrList([]string{"b"}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Value
		want    int
		wantErr bool
	}{
		{"num less", Num(1), Num(2), -1, false},
		{"num equal", Num(2), Num(2), 0, false},
		{"num greater", Num(3), Num(2), 1, false},
		{"str order", Str("a"), Str("b"), -1, false},
		{"mixed kinds", Num(1), Str("1"), 0, true},
		{"lists unordered", List(nil), List(nil), 0, true},
		{"bools unordered", Bool(false), Bool(true), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Compare(%s, %s): expected error", tt.a, tt.b)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compare(%s, %s): %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestParseNum(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"-3.5", -3.5, false},
		{"1e3", 1000, false},
		{"  7 ", 7, false},
		{"", 0, false},
		{"   ", 0, false},
		{"1_000", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNum(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseNum(%q): expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNum(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseNum(%q) = %g, want %g", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatNum(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{42, "42"},
		{-7, "-7"},
		{2.5, "2.5"},
		{1e14, "100000000000000"},
		{0.1, "0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatNum(tt.input); got != tt.want {
				t.Errorf("FormatNum(%g) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
