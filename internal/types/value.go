// Package types defines runtime value types for rill snippets.
package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind represents the type of a snippet value.
type Kind uint8

const (
	KindNull Kind = iota // Unset sentinel (no value)
	KindBool             // Boolean value
	KindNum              // Numeric value
	KindStr              // String value
	KindList             // Ordered sequence of values
	KindFunc             // Callable capability
	KindMod              // Capability module (name -> value table)
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "nil"
	case KindBool:
		return "bool"
	case KindNum:
		return "num"
	case KindStr:
		return "str"
	case KindList:
		return "list"
	case KindFunc:
		return "func"
	case KindMod:
		return "module"
	default:
		return "unknown"
	}
}

// Func is a callable capability exposed to snippets.
type Func func(args []Value) (Value, error)

// Value represents a snippet runtime value.
// Uses tagged union pattern for type safety and performance.
// Null is a distinguished sentinel: it is not false, not zero and not "".
type Value struct {
	kind Kind
	num  float64
	str  string
	list []Value
	fn   Func
	mod  map[string]Value
}

// Constructors

// Null returns the unset sentinel.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.num = 1
	}
	return v
}

// Num creates a numeric value.
func Num(n float64) Value {
	return Value{kind: KindNum, num: n}
}

// Str creates a string value.
func Str(s string) Value {
	return Value{kind: KindStr, str: s}
}

// List creates a list value. The slice is not copied.
func List(elems []Value) Value {
	return Value{kind: KindList, list: elems}
}

// StrList creates a list of string values.
func StrList(elems []string) Value {
	list := make([]Value, len(elems))
	for i, s := range elems {
		list[i] = Str(s)
	}
	return List(list)
}

// NewFunc creates a callable value.
func NewFunc(fn Func) Value {
	return Value{kind: KindFunc, fn: fn}
}

// Mod creates a module value over the given member table.
func Mod(members map[string]Value) Value {
	return Value{kind: KindMod, mod: members}
}

// Accessors

// Kind returns the value's type.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns true if the value is the unset sentinel.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsBool returns true if the value is a boolean.
func (v Value) IsBool() bool {
	return v.kind == KindBool
}

// IsNum returns true if the value is a number.
func (v Value) IsNum() bool {
	return v.kind == KindNum
}

// IsStr returns true if the value is a string.
func (v Value) IsStr() bool {
	return v.kind == KindStr
}

// IsList returns true if the value is a list.
func (v Value) IsList() bool {
	return v.kind == KindList
}

// Num returns the numeric payload. Valid only for KindNum and KindBool.
func (v Value) Num() float64 {
	return v.num
}

// Str returns the string payload. Valid only for KindStr.
func (v Value) Str() string {
	return v.str
}

// List returns the list payload. Valid only for KindList.
func (v Value) List() []Value {
	return v.list
}

// Func returns the callable payload, or nil for non-func values.
func (v Value) Func() Func {
	return v.fn
}

// Member looks up a module member by name.
func (v Value) Member(name string) (Value, bool) {
	if v.kind != KindMod {
		return Null(), false
	}
	m, ok := v.mod[name]
	return m, ok
}

// Members returns the module's member table, or nil for non-module values.
func (v Value) Members() map[string]Value {
	return v.mod
}

// Conversions

// AsBool returns the truthiness of the value.
// Null is false; 0, "" and the empty list are false; everything else is true.
func (v Value) AsBool() bool {
	switch v.kind {
	case KindBool, KindNum:
		return v.num != 0
	case KindStr:
		return v.str != ""
	case KindList:
		return len(v.list) > 0
	case KindFunc, KindMod:
		return true
	default: // KindNull
		return false
	}
}

// AsStr returns the display form of the value, as seen by the result
// formatter and by str().
func (v Value) AsStr() string {
	switch v.kind {
	case KindBool:
		if v.num != 0 {
			return "true"
		}
		return "false"
	case KindNum:
		return FormatNum(v.num)
	case KindStr:
		return v.str
	case KindList:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, e := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			if e.kind == KindStr {
				sb.WriteString(strconv.Quote(e.str))
			} else {
				sb.WriteString(e.AsStr())
			}
		}
		sb.WriteByte(']')
		return sb.String()
	case KindFunc:
		return "<func>"
	case KindMod:
		return "<module>"
	default: // KindNull
		return "nil"
	}
}

// String returns a debug representation of the value.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("Bool(%v)", v.num != 0)
	case KindNum:
		return fmt.Sprintf("Num(%s)", FormatNum(v.num))
	case KindStr:
		return fmt.Sprintf("Str(%q)", v.str)
	case KindList:
		return fmt.Sprintf("List(%s)", v.AsStr())
	case KindFunc:
		return "Func()"
	case KindMod:
		return "Mod()"
	default:
		return "Null()"
	}
}

// Comparison

// Equal reports whether two values are equal.
// Values of different kinds are never equal; lists compare element-wise.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool, KindNum:
		return a.num == b.num
	case KindStr:
		return a.str == b.str
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two values of the same kind.
// Returns -1, 0 or 1, or an error for unordered or mismatched kinds.
func Compare(a, b Value) (int, error) {
	if a.kind != b.kind {
		return 0, fmt.Errorf("cannot compare %s with %s", a.kind, b.kind)
	}
	switch a.kind {
	case KindNum:
		switch {
		case a.num < b.num:
			return -1, nil
		case a.num > b.num:
			return 1, nil
		default:
			return 0, nil
		}
	case KindStr:
		return strings.Compare(a.str, b.str), nil
	default:
		return 0, fmt.Errorf("%s values are not ordered", a.kind)
	}
}

// Number parsing and formatting

// ParseNum parses a string as a number (strict parsing).
// Empty or blank strings parse as 0.
func ParseNum(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.Contains(s, "_") {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

// FormatNum formats a number for display.
// Integral values print without a decimal point.
func FormatNum(n float64) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case n == math.Trunc(n) && math.Abs(n) < 1e15:
		return strconv.FormatInt(int64(n), 10)
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}
