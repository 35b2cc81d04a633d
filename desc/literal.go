package desc

import (
	"encoding/json"
	"math"
	"strconv"
)

// LiteralKind is the type of value a Literal holds.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
	LiteralNull
)

// Literal is a single string, number, boolean or null value.
// Literals are comparable and can be used as map keys.
type Literal struct {
	kind LiteralKind
	str  string
	num  float64
	b    bool
}

// Str returns a string literal.
func Str(s string) Literal { return Literal{kind: LiteralString, str: s} }

// Num returns a number literal. Negative zero is normalized to zero.
func Num(n float64) Literal {
	if n == 0 {
		n = 0
	}
	return Literal{kind: LiteralNumber, num: n}
}

// Bool returns a boolean literal.
func Bool(b bool) Literal { return Literal{kind: LiteralBoolean, b: b} }

// Null returns the null literal.
func Null() Literal { return Literal{kind: LiteralNull} }

// Kind returns the kind of value held.
func (l Literal) Kind() LiteralKind { return l.kind }

// StringValue returns the value of a string literal.
func (l Literal) StringValue() (string, bool) { return l.str, l.kind == LiteralString }

// NumberValue returns the value of a number literal.
func (l Literal) NumberValue() (float64, bool) { return l.num, l.kind == LiteralNumber }

// BoolValue returns the value of a boolean literal.
func (l Literal) BoolValue() (bool, bool) { return l.b, l.kind == LiteralBoolean }

// Value returns the literal as a Go value: string, float64, bool or nil.
func (l Literal) Value() any {
	switch l.kind {
	case LiteralString:
		return l.str
	case LiteralNumber:
		return l.num
	case LiteralBoolean:
		return l.b
	default:
		return nil
	}
}

// String renders the literal the way it is written in source.
func (l Literal) String() string {
	switch l.kind {
	case LiteralString:
		return strconv.Quote(l.str)
	case LiteralNumber:
		return FormatNumber(l.num)
	case LiteralBoolean:
		return strconv.FormatBool(l.b)
	default:
		return "null"
	}
}

// MarshalJSON implements json.Marshaler for Literal.
func (l Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Value())
}

// FormatNumber formats n the way JavaScript prints numbers: integers without
// exponent below 1e21, shortest round-trip representation otherwise.
func FormatNumber(n float64) string {
	if math.Abs(n) < 1e21 && n == math.Trunc(n) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// LiteralSet is an insertion-ordered set of literals.
type LiteralSet struct {
	items []Literal
}

// NewLiteralSet returns a set of the given literals, dropping duplicates and
// keeping first-seen order.
func NewLiteralSet(lits ...Literal) LiteralSet {
	seen := make(map[Literal]bool, len(lits))
	items := make([]Literal, 0, len(lits))
	for _, l := range lits {
		if seen[l] {
			continue
		}
		seen[l] = true
		items = append(items, l)
	}
	return LiteralSet{items: items}
}

// Len returns the number of literals in the set.
func (s LiteralSet) Len() int { return len(s.items) }

// Items returns the literals in insertion order.
func (s LiteralSet) Items() []Literal {
	out := make([]Literal, len(s.items))
	copy(out, s.items)
	return out
}

// Has reports whether l is a member of the set.
func (s LiteralSet) Has(l Literal) bool {
	for _, item := range s.items {
		if item == l {
			return true
		}
	}
	return false
}

// Equal reports whether both sets contain the same literals, regardless of order.
func (s LiteralSet) Equal(other LiteralSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for _, l := range s.items {
		if !other.Has(l) {
			return false
		}
	}
	return true
}

// MarshalJSON implements json.Marshaler for LiteralSet.
func (s LiteralSet) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}
