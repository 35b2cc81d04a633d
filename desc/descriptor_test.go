package desc

import (
	"math"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPrimitive, "primitive"},
		{KindConstant, "constant"},
		{KindConstantUnion, "constant_union"},
		{KindUnion, "union"},
		{KindIntersection, "intersection"},
		{KindArray, "array"},
		{KindTuple, "tuple"},
		{KindObject, "object"},
		{KindExternal, "external"},
		{Kind(999), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLiteral_String(t *testing.T) {
	tests := []struct {
		lit  Literal
		want string
	}{
		{Str("a\"b"), `"a\"b"`},
		{Num(1), "1"},
		{Num(-2.5), "-2.5"},
		{Num(1e21), "1e+21"},
		{Num(255), "255"},
		{Bool(true), "true"},
		{Null(), "null"},
	}
	for _, tt := range tests {
		if got := tt.lit.String(); got != tt.want {
			t.Errorf("Literal.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLiteral_NegativeZero(t *testing.T) {
	if Num(0) != Num(math.Copysign(0, -1)) {
		t.Error("Num(-0) should equal Num(0)")
	}
}

func TestLiteralSet(t *testing.T) {
	s := NewLiteralSet(Str("a"), Num(1), Str("a"), Null(), Num(1))
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	items := s.Items()
	want := []Literal{Str("a"), Num(1), Null()}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("Items()[%d] = %v, want %v", i, items[i], want[i])
		}
	}
	if !s.Has(Null()) || s.Has(Bool(false)) {
		t.Error("Has() reported wrong membership")
	}

	reordered := NewLiteralSet(Null(), Str("a"), Num(1))
	if !s.Equal(reordered) {
		t.Error("sets with the same members in different order should be equal")
	}
	if s.Equal(NewLiteralSet(Str("a"), Num(1))) {
		t.Error("sets of different size should not be equal")
	}
}

func TestObject_WithAndMerge(t *testing.T) {
	base := &Object{Properties: []Property{
		{Name: "a", Type: Number()},
		{Name: "b", Type: String()},
	}}

	updated := base.With(Property{Name: "a", Type: Boolean(), Optional: true})
	if p, _ := base.Lookup("a"); p.Type.(*Primitive).Name != PrimitiveNumber {
		t.Error("With() mutated the receiver")
	}
	if updated.Properties[0].Name != "a" || !updated.Properties[0].Optional {
		t.Errorf("With() should replace in place, got %+v", updated.Properties[0])
	}

	other := &Object{
		Properties: []Property{{Name: "c", Type: Number()}, {Name: "b", Type: Number()}},
		Index:      &Index{ValueType: String()},
	}
	merged := base.Merge(other)
	if len(merged.Properties) != 3 {
		t.Fatalf("len(Merge().Properties) = %d, want 3", len(merged.Properties))
	}
	names := []string{merged.Properties[0].Name, merged.Properties[1].Name, merged.Properties[2].Name}
	if names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("Merge() order = %v, want [a b c]", names)
	}
	if p, _ := merged.Lookup("b"); !Equal(p.Type, Number()) {
		t.Errorf("Merge() property b = %v, want number", p.Type)
	}
	if merged.Index == nil {
		t.Error("Merge() should take the index of the overlay")
	}
	if base.Index != nil {
		t.Error("Merge() mutated the receiver")
	}
}
