package wirejson

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind enumerates the JSON value kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the wire-level name of the kind ("null", "object", ...).
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Member is one key/value pair of an object. Member order is preserved for
// output stability; lookup is always by key.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON tree node. The zero Value is null.
// Numbers keep their literal text (json.Number) so round-trips are byte-stable.
type Value struct {
	kind Kind
	b    bool
	lit  string // string payload, or number literal text
	arr  []Value
	obj  []Member
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: KindString, lit: s} }

// Number returns a JSON number carrying the given literal.
func Number(n json.Number) Value { return Value{kind: KindNumber, lit: string(n)} }

// Int returns a JSON number for an integer.
func Int(i int64) Value { return Value{kind: KindNumber, lit: strconv.FormatInt(i, 10)} }

// Float returns a JSON number for a float, using the canonical short form.
// NaN and infinities have no JSON number representation; they map to null so
// that encoding stays total and the output stays parseable.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, lit: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Array returns a JSON array over the given items.
func Array(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, arr: cp}
}

// Object returns a JSON object over the given members. Keys must be unique
// within one object; when they are not, the first occurrence wins so that
// encoding stays total.
func Object(members ...Member) Value {
	cp := make([]Member, 0, len(members))
	for _, m := range members {
		if _, dup := lookupMember(cp, m.Key); dup {
			continue
		}
		cp = append(cp, m)
	}
	return Value{kind: KindObject, obj: cp}
}

// Field pairs a key with a value for Object construction.
func Field(key string, v Value) Member { return Member{Key: key, Value: v} }

// Kind reports the node's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the node is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolValue returns the boolean payload; ok is false for other kinds.
func (v Value) BoolValue() (b bool, ok bool) { return v.b, v.kind == KindBool }

// StringValue returns the string payload; ok is false for other kinds.
func (v Value) StringValue() (s string, ok bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.lit, true
}

// NumberValue returns the number literal; ok is false for other kinds.
func (v Value) NumberValue() (n json.Number, ok bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return json.Number(v.lit), true
}

// Len returns the item count for arrays and the member count for objects.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Item returns the i-th array item.
func (v Value) Item(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Items returns a copy of the array items.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	cp := make([]Value, len(v.arr))
	copy(cp, v.arr)
	return cp
}

// Members returns a copy of the object members in declared order.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	cp := make([]Member, len(v.obj))
	copy(cp, v.obj)
	return cp
}

// Lookup finds an object member by key.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	return lookupMember(v.obj, key)
}

func lookupMember(ms []Member, key string) (Value, bool) {
	for _, m := range ms {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Equal reports structural equality. Object comparison is key-based (member
// order never affects semantics); arrays compare in order; numbers compare by
// literal text.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber, KindString:
		return v.lit == o.lit
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for _, m := range v.obj {
			ov, ok := lookupMember(o.obj, m.Key)
			if !ok || !m.Value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
