package desc

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name    string
		members []Descriptor
		want    Descriptor
	}{
		{
			name:    "single literal",
			members: []Descriptor{Const(Str("a"))},
			want:    Const(Str("a")),
		},
		{
			name:    "literals only",
			members: []Descriptor{Const(Str("a")), Const(Str("b")), Const(Num(1))},
			want:    ConstUnion(Str("a"), Str("b"), Num(1)),
		},
		{
			name:    "duplicate literals fold to constant",
			members: []Descriptor{Const(Str("a")), Const(Str("a"))},
			want:    Const(Str("a")),
		},
		{
			name:    "mixed",
			members: []Descriptor{String(), Const(Null()), Const(Bool(false))},
			want:    &Union{Types: []Descriptor{String(), ConstUnion(Null(), Bool(false))}},
		},
		{
			name:    "one literal among types",
			members: []Descriptor{Const(Str("nope")), Boolean()},
			want:    &Union{Types: []Descriptor{Boolean(), Const(Str("nope"))}},
		},
		{
			name: "nested unions flatten",
			members: []Descriptor{
				&Union{Types: []Descriptor{Number(), Const(Str("x"))}},
				&Union{Types: []Descriptor{String(), ConstUnion(Str("y"), Str("x"))}},
			},
			want: &Union{Types: []Descriptor{Number(), String(), ConstUnion(Str("x"), Str("y"))}},
		},
		{
			name:    "no literals",
			members: []Descriptor{Number(), String()},
			want:    &Union{Types: []Descriptor{Number(), String()}},
		},
		{
			name:    "single non literal collapses",
			members: []Descriptor{&Union{Types: []Descriptor{Number()}}},
			want:    Number(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fold(tt.members...)
			if !Equal(got, tt.want) {
				t.Errorf("Fold() = %s, want %s", mustJSON(t, got), mustJSON(t, tt.want))
			}
		})
	}
}

func TestFold_AtMostOneLiteralMember(t *testing.T) {
	got := Fold(Const(Num(1)), Number(), Const(Num(2)), String(), Const(Num(3)))
	u, ok := got.(*Union)
	if !ok {
		t.Fatalf("Fold() = %T, want *Union", got)
	}
	literalMembers := 0
	for _, m := range u.Types {
		switch m.(type) {
		case *Constant, *ConstantUnion:
			literalMembers++
		case *Union:
			t.Error("Fold() left a nested union")
		}
	}
	if literalMembers != 1 {
		t.Errorf("literal members = %d, want 1", literalMembers)
	}
}
