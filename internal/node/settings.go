package node

import (
	"math"
	"strconv"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

// Value variants. Absent is the zero value.
const (
	Absent ValueKind = iota
	String
	Number
	Bool
	Mapping
)

// Value is a single settings entry.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	m    Settings
}

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: String, str: s} }

// NumberValue wraps f.
func NumberValue(f float64) Value { return Value{kind: Number, num: f} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// MapValue wraps m.
func MapValue(m Settings) Value { return Value{kind: Mapping, m: m} }

// Kind returns the variant held by v.
func (v Value) Kind() ValueKind { return v.kind }

// IsAbsent reports whether v carries no value.
func (v Value) IsAbsent() bool { return v.kind == Absent }

// Truthy follows the loose truthiness page-builder exports rely on:
// empty strings, zero numbers, false and absent values are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case String:
		return v.str != ""
	case Number:
		return v.num != 0 && !math.IsNaN(v.num)
	case Bool:
		return v.b
	case Mapping:
		return true
	}
	return false
}

// Text returns the string form of a string or number value, or "".
func (v Value) Text() string {
	switch v.kind {
	case String:
		return v.str
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return ""
}

// Number returns the numeric value of v. Numeric strings are parsed.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case Number:
		return v.num, true
	case String:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Map returns the nested settings of a mapping value, or nil.
func (v Value) Map() Settings {
	if v.kind != Mapping {
		return nil
	}
	return v.m
}

// Settings is the open bag of per-node options.
type Settings map[string]Value

// Get returns the value stored under key. A nil Settings is valid.
func (s Settings) Get(key string) Value {
	if s == nil {
		return Value{}
	}
	return s[key]
}

// Map returns the nested settings under key, or nil when key is not a mapping.
func (s Settings) Map(key string) Settings {
	return s.Get(key).Map()
}

// Path follows nested mappings, e.g. Path("image", "url").
func (s Settings) Path(keys ...string) Value {
	cur := s
	for i, k := range keys {
		v := cur.Get(k)
		if i == len(keys)-1 {
			return v
		}
		cur = v.Map()
		if cur == nil {
			return Value{}
		}
	}
	return Value{}
}

// First returns the text of the first truthy string or number among keys,
// or "". Use Path for nested lookups.
func (s Settings) First(keys ...string) string {
	for _, k := range keys {
		if t := s.Get(k).textIfTruthy(); t != "" {
			return t
		}
	}
	return ""
}

// textIfTruthy returns Text for truthy string and number values.
func (v Value) textIfTruthy() string {
	if !v.Truthy() {
		return ""
	}
	return v.Text()
}

// TextOr returns the text of v when it is a truthy string or number, or def.
func (v Value) TextOr(def string) string {
	if t := v.textIfTruthy(); t != "" {
		return t
	}
	return def
}

// settingsFromAny converts a decoded JSON object into Settings.
// Arrays and nulls have no variant and are dropped.
func settingsFromAny(raw map[string]any) Settings {
	s := make(Settings, len(raw))
	for k, v := range raw {
		if val, ok := valueFromAny(v); ok {
			s[k] = val
		}
	}
	return s
}

func valueFromAny(v any) (Value, bool) {
	switch t := v.(type) {
	case string:
		return StringValue(t), true
	case float64:
		return NumberValue(t), true
	case int:
		return NumberValue(float64(t)), true
	case int64:
		return NumberValue(float64(t)), true
	case bool:
		return BoolValue(t), true
	case map[string]any:
		return MapValue(settingsFromAny(t)), true
	}
	return Value{}, false
}
