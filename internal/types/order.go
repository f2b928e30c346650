package types

// Order is the external TypeOrder/Solver collaborator (spec.md §1: "the
// low-level type representation and subtype-equivalence solver... assumed
// available as a black-box TypeOrder/Solver"). Narrowing only ever needs a
// single operation from it: subtype checking.
type Order interface {
	// IsSubtype reports whether a <: b under the full type system's rules
	// (including the gradual rule that Any is both a sub- and supertype of
	// everything).
	IsSubtype(a, b Type) bool
}

// DefaultOrder is a minimal, self-contained Order good enough to exercise
// and test the narrowing algebra in this package without a real external
// solver wired in: Never/Any follow the gradual rules, literals are
// subtypes of their own class, classes compare by identity, and unions
// distribute in both directions.
type DefaultOrder struct{}

func (DefaultOrder) IsSubtype(a, b Type) bool {
	return isSubtype(a, b)
}

func isSubtype(a, b Type) bool {
	if _, ok := a.(NeverType); ok {
		return true
	}
	if _, ok := b.(AnyType); ok {
		return true
	}
	if _, ok := a.(AnyType); ok {
		return true
	}

	if ua, ok := a.(*UnionType); ok {
		for _, m := range ua.Types {
			if !isSubtype(m, b) {
				return false
			}
		}
		return true
	}
	if ub, ok := b.(*UnionType); ok {
		for _, m := range ub.Types {
			if isSubtype(a, m) {
				return true
			}
		}
		return false
	}

	if la, ok := a.(*LitType); ok {
		if lb, ok := b.(*LitType); ok {
			return la.Equal(lb)
		}
		return isSubtype(literalClassType(la), b)
	}

	if ca, ok := a.(*ClassType); ok {
		if cb, ok := b.(*ClassType); ok {
			return ca.Class == cb.Class
		}
		return false
	}

	return a.Equal(b)
}

// literalClassType widens a literal to the ClassType it's a literal of,
// e.g. Literal[true] -> bool, Literal[Color.RED] -> Color.
func literalClassType(l *LitType) Type {
	switch l.Kind {
	case LitBool:
		return NewClassType(BoolClass)
	case LitInt:
		return NewClassType(IntClass)
	case LitStr:
		return NewClassType(StrClass)
	case LitEnum:
		return NewClassType(l.EnumClass)
	default:
		return AnyT
	}
}
