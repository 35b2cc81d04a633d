package describe

import (
	"github.com/broady/typedesc/desc"
	"github.com/broady/typedesc/syntax"
)

// describeUnion folds the members of a union. The result is as flat as
// possible and carries all literal alternatives in a single member.
func (d *describer) describeUnion(n *syntax.Union, subst *Substitution) (desc.Descriptor, error) {
	if len(n.Types) == 1 {
		return d.describe(n.Types[0], subst)
	}
	members, err := d.describeAll(n.Types, subst)
	if err != nil {
		return nil, err
	}
	return desc.Fold(members...), nil
}

func (d *describer) describeIntersection(n *syntax.Intersection, subst *Substitution) (desc.Descriptor, error) {
	members, err := d.describeAll(n.Types, subst)
	if err != nil {
		return nil, err
	}
	return desc.Intersect(members...), nil
}

func (d *describer) describeAll(nodes []syntax.TypeNode, subst *Substitution) ([]desc.Descriptor, error) {
	out := make([]desc.Descriptor, 0, len(nodes))
	for _, n := range nodes {
		t, err := d.describe(n, subst)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
