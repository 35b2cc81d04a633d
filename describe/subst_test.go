package describe

import (
	"testing"

	"github.com/broady/typedesc/desc"
	"github.com/broady/typedesc/syntax"
)

func TestSubstitution(t *testing.T) {
	k := &syntax.TypeParamDecl{Name: "K"}
	shadow := &syntax.TypeParamDecl{Name: "K"}
	v := &syntax.TypeParamDecl{Name: "V"}

	var empty *Substitution
	if _, ok := empty.Lookup(k); ok {
		t.Error("empty.Lookup(K) found a binding")
	}

	outer := empty.Bind(k, desc.String())
	inner := outer.Bind(shadow, desc.Number()).Bind(v, desc.Boolean())

	tests := []struct {
		name  string
		s     *Substitution
		param *syntax.TypeParamDecl
		want  desc.Descriptor
	}{
		{"outer K", outer, k, desc.String()},
		{"inner K", inner, k, desc.String()},
		{"inner shadowing K", inner, shadow, desc.Number()},
		{"inner V", inner, v, desc.Boolean()},
		{"outer V", outer, v, nil},
		{"outer shadowing K", outer, shadow, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.s.Lookup(tt.param)
			if tt.want == nil {
				if ok {
					t.Errorf("Lookup() = %v, want no binding", got)
				}
				return
			}
			if !ok || !desc.Equal(got, tt.want) {
				t.Errorf("Lookup() = %v, %v, want %v", got, ok, tt.want)
			}
		})
	}

	rebound := outer.Bind(k, desc.Boolean())
	if got, _ := rebound.Lookup(k); !desc.Equal(got, desc.Boolean()) {
		t.Errorf("rebound.Lookup(K) = %v, want boolean", got)
	}
	if got, _ := outer.Lookup(k); !desc.Equal(got, desc.String()) {
		t.Errorf("outer.Lookup(K) = %v after rebinding a child, want string", got)
	}
}
