package manifest

import (
	"fmt"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindString
	KindFunc
	KindTable
)

// String returns the kind name as it appears in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "Nil"
	case KindBool:
		return "Boolean"
	case KindInt:
		return "Integer"
	case KindString:
		return "String"
	case KindFunc:
		return "Function"
	case KindTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Predicate is a deferred zero-argument boolean supplied by the
// manifest script, e.g. as the value of `enabled`.
type Predicate func() (bool, error)

// Value is one node of the dynamically typed configuration tree that
// the scripting engine hands to the normalizer. A Value is immutable
// once the tree has been built.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
	fn   Predicate
	tbl  *Table
}

// Nil returns the nil Value. The zero Value is also nil.
func Nil() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Func returns a Value carrying a deferred predicate.
func Func(p Predicate) Value { return Value{kind: KindFunc, fn: p} }

// TableValue returns a Value wrapping the given table.
func TableValue(t *Table) Value { return Value{kind: KindTable, tbl: t} }

// Kind returns the variant held by the value.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether the value is the nil variant.
func (v Value) IsNil() bool { return v.kind == KindNil }

// AsBool returns the boolean payload and whether the value holds one.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer payload and whether the value holds one.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsString returns the string payload and whether the value holds one.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsFunc returns the predicate payload and whether the value holds one.
func (v Value) AsFunc() (Predicate, bool) { return v.fn, v.kind == KindFunc }

// AsTable returns the table payload and whether the value holds one.
func (v Value) AsTable() (*Table, bool) { return v.tbl, v.kind == KindTable }

// String renders the value compactly for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return strconv.Quote(v.s)
	case KindFunc:
		return "function"
	case KindTable:
		return fmt.Sprintf("table(%d)", v.tbl.Len())
	default:
		return "unknown"
	}
}

// Pair is one key/value entry of a Table, in declaration order.
type Pair struct {
	Key Value
	Val Value
}

// Table is the table variant of Value: an ordered pair sequence with
// uniform key lookup for the integer (array-part) and string (map-part)
// keys of a scripting-engine table.
type Table struct {
	pairs  []Pair
	strIdx map[string]int
	intIdx map[int64]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		strIdx: make(map[string]int),
		intIdx: make(map[int64]int),
	}
}

// Append adds a key/value pair at the end of the table. A pair whose
// key is already present replaces the earlier value in place, keeping
// the original position; scripting-engine tables never produce
// duplicate keys, so this is a convenience for hand-built trees.
func (t *Table) Append(key, val Value) *Table {
	if i, ok := t.lookup(key); ok {
		t.pairs[i].Val = val
		return t
	}
	t.pairs = append(t.pairs, Pair{Key: key, Val: val})
	switch key.kind {
	case KindString:
		t.strIdx[key.s] = len(t.pairs) - 1
	case KindInt:
		t.intIdx[key.i] = len(t.pairs) - 1
	}
	return t
}

func (t *Table) lookup(key Value) (int, bool) {
	switch key.kind {
	case KindString:
		i, ok := t.strIdx[key.s]
		return i, ok
	case KindInt:
		i, ok := t.intIdx[key.i]
		return i, ok
	default:
		return 0, false
	}
}

// Len returns the number of pairs in the table.
func (t *Table) Len() int { return len(t.pairs) }

// Pairs returns the table entries in declaration order. The returned
// slice must not be modified.
func (t *Table) Pairs() []Pair { return t.pairs }

// Get returns the value bound to key, or the nil Value when absent.
// Only integer and string keys resolve.
func (t *Table) Get(key Value) Value {
	if i, ok := t.lookup(key); ok {
		return t.pairs[i].Val
	}
	return Nil()
}

// Field returns the value bound to a string key, or the nil Value.
func (t *Table) Field(name string) Value {
	if i, ok := t.strIdx[name]; ok {
		return t.pairs[i].Val
	}
	return Nil()
}

// Index returns the value bound to an integer key, or the nil Value.
// Table positions are 1-based, matching the scripting engine.
func (t *Table) Index(i int64) Value {
	if j, ok := t.intIdx[i]; ok {
		return t.pairs[j].Val
	}
	return Nil()
}
