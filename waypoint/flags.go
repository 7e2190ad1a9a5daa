package waypoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlagKind tells which variant a FlagValue holds.
type FlagKind uint8

// Flags are either booleans or numbers.
const (
	NoFlag FlagKind = iota
	BoolFlag
	NumberFlag
)

func (k FlagKind) String() string {
	switch k {
	case BoolFlag:
		return "boolean"
	case NumberFlag:
		return "number"
	}
	return "<none>"
}

// FlagKindFromString recognizes "boolean" and "number", the names used in
// flag definitions of a project configuration.
func FlagKindFromString(s string) FlagKind {
	switch s {
	case "boolean", "bool":
		return BoolFlag
	case "number":
		return NumberFlag
	}
	return NoFlag
}

// MarshalText writes a flag definition kind, "boolean" or "number".
func (k FlagKind) MarshalText() ([]byte, error) {
	if k == NoFlag {
		return nil, fmt.Errorf("cannot marshal flag kind %s", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText reads a flag definition kind.
func (k *FlagKind) UnmarshalText(text []byte) error {
	if *k = FlagKindFromString(string(text)); *k == NoFlag {
		return fmt.Errorf("unknown flag kind %q", text)
	}
	return nil
}

// FlagValue is a tagged value, either a bool or a float64. Flags are user
// metadata: the engine threads them through unchanged and never interprets them.
type FlagValue struct {
	kind FlagKind
	b    bool
	n    float64
}

// Bool creates a boolean flag value.
func Bool(b bool) FlagValue {
	return FlagValue{kind: BoolFlag, b: b}
}

// Number creates a numeric flag value.
func Number(n float64) FlagValue {
	return FlagValue{kind: NumberFlag, n: n}
}

// Kind returns the variant of f.
func (f FlagValue) Kind() FlagKind {
	return f.kind
}

// Bool returns the boolean value of f, if f is a boolean.
func (f FlagValue) Bool() (bool, bool) {
	return f.b, f.kind == BoolFlag
}

// Number returns the numeric value of f, if f is a number.
func (f FlagValue) Number() (float64, bool) {
	return f.n, f.kind == NumberFlag
}

// Equal compares two flag values.
func (f FlagValue) Equal(o FlagValue) bool {
	return f == o
}

func (f FlagValue) String() string {
	switch f.kind {
	case BoolFlag:
		return strconv.FormatBool(f.b)
	case NumberFlag:
		return strconv.FormatFloat(f.n, 'g', -1, 64)
	}
	return "<unset>"
}

// MarshalJSON writes the bare JSON boolean or number.
func (f FlagValue) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case BoolFlag:
		return json.Marshal(f.b)
	case NumberFlag:
		return json.Marshal(f.n)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a JSON boolean or number.
func (f *FlagValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = FlagValue{}
		return nil
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*f = Bool(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flag value must be boolean or number: %s", data)
	}
	*f = Number(n)
	return nil
}

// Flags is a bag of named flag values attached to a control point.
type Flags map[string]FlagValue

// Clone returns a copy of fl. The copy is never nil.
func (fl Flags) Clone() Flags {
	c := make(Flags, len(fl))
	for k, v := range fl {
		c[k] = v
	}
	return c
}
