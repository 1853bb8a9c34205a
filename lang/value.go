package lang

import (
	"encoding/json"
	"strconv"
)

// Kind identifies which variant a [Value] holds.
type Kind int

const (
	KindInt Kind = iota // int
	KindStr             // str
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindStr:
		return "str"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the runtime value of a variable: either a 32-bit signed integer or
// text. The zero Value is Int(0).
type Value struct {
	str  string
	num  int32
	kind Kind
}

// Int returns an integer Value.
func Int(n int32) Value { return Value{kind: KindInt, num: n} }

// Str returns a text Value.
func Str(s string) Value { return Value{kind: KindStr, str: s} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer held by v and whether v is an Int.
func (v Value) Int() (int32, bool) {
	if v.kind != KindInt {
		return 0, false
	}

	return v.num, true
}

// Str returns the text held by v and whether v is a Str.
func (v Value) Str() (string, bool) {
	if v.kind != KindStr {
		return "", false
	}

	return v.str, true
}

// String renders v the way scripts print it: Int in decimal, Str as-is.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(int64(v.num), 10)
	case KindStr:
		return v.str
	default:
		return ""
	}
}

// Equal reports whether v and w hold the same variant and payload.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}

	switch v.kind {
	case KindInt:
		return v.num == w.num
	case KindStr:
		return v.str == w.str
	default:
		return false
	}
}

// Native returns v as a Go int32 or string.
func (v Value) Native() any {
	switch v.kind {
	case KindInt:
		return v.num
	case KindStr:
		return v.str
	default:
		return nil
	}
}

// MarshalJSON encodes an Int as a JSON number and a Str as a JSON string.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

// MarshalYAML implements [yaml.InterfaceMarshaler] by returning the native
// payload.
//
// [yaml.InterfaceMarshaler]: https://pkg.go.dev/github.com/goccy/go-yaml#InterfaceMarshaler
func (v Value) MarshalYAML() (any, error) {
	return v.Native(), nil
}

// parseInt parses s as a literal 32-bit signed decimal integer. An optional
// leading sign is accepted; surrounding whitespace is not.
func parseInt(s string) (int32, bool) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}

	return int32(n), true
}

// typed converts raw input text to an Int when it is a literal integer and
// to a Str otherwise.
func typed(s string) Value {
	if n, ok := parseInt(s); ok {
		return Int(n)
	}

	return Str(s)
}
