package desc

// Fold builds the description of a union from already described members.
//
// Nested unions are flattened and every literal (from Constant and
// ConstantUnion members) is gathered into one set: no literals contribute
// nothing, one gives a Constant, two or more give a ConstantUnion. The literal
// part, if any, becomes the last member. A result with a single member is that
// member.
func Fold(members ...Descriptor) Descriptor {
	var others []Descriptor
	var lits []Literal

	var add func(Descriptor)
	add = func(d Descriptor) {
		switch d := d.(type) {
		case *Constant:
			lits = append(lits, d.Value)
		case *ConstantUnion:
			lits = append(lits, d.Values.items...)
		case *Union:
			for _, m := range d.Types {
				add(m)
			}
		default:
			others = append(others, d)
		}
	}
	for _, m := range members {
		add(m)
	}

	set := NewLiteralSet(lits...)
	switch set.Len() {
	case 0:
	case 1:
		others = append(others, Const(set.items[0]))
	default:
		others = append(others, &ConstantUnion{Values: set})
	}

	if len(others) == 1 {
		return others[0]
	}
	return &Union{Types: others}
}
