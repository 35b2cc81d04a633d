package describe

import (
	"github.com/broady/typedesc/desc"
	"github.com/broady/typedesc/syntax"
)

// Substitution maps type parameters to the descriptors bound to them.
//
// A Substitution is immutable. Bind returns a child scope that shadows the
// parent for one parameter, so a scope handed to a nested description can
// never be observed changing. The nil *Substitution is the empty map.
type Substitution struct {
	parent *Substitution
	param  *syntax.TypeParamDecl
	value  desc.Descriptor
}

// Bind returns a child of s in which param is bound to value.
func (s *Substitution) Bind(param *syntax.TypeParamDecl, value desc.Descriptor) *Substitution {
	return &Substitution{parent: s, param: param, value: value}
}

// Lookup returns the innermost binding of param.
func (s *Substitution) Lookup(param *syntax.TypeParamDecl) (desc.Descriptor, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.param == param {
			return cur.value, true
		}
	}
	return nil, false
}
