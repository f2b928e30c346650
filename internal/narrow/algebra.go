package narrow

import "github.com/brianjo/pyrefly/internal/types"

// Algebra implements intersect/subtract/intersects over the type lattice,
// the primitives every AtomicNarrowOp in atomic.go is built from. It needs
// only the subtype relation, so it closes over a types.Order rather than a
// full Narrower.
type Algebra struct {
	Order types.Order
}

// Intersect computes the narrowest type that is both a t and a filter,
// distributing over unions on either side so that narrowing a union only
// keeps the branches compatible with filter.
func (a Algebra) Intersect(t, filter types.Type) types.Type {
	if _, ok := t.(types.NeverType); ok {
		return types.Never
	}
	if _, ok := filter.(types.NeverType); ok {
		return types.Never
	}
	if _, ok := filter.(types.AnyType); ok {
		return t
	}
	if _, ok := t.(types.AnyType); ok {
		return filter
	}

	if ut, ok := t.(*types.UnionType); ok {
		members := make([]types.Type, 0, len(ut.Types))
		for _, m := range ut.Types {
			members = append(members, a.Intersect(m, filter))
		}
		return types.NewUnion(members...)
	}
	if uf, ok := filter.(*types.UnionType); ok {
		members := make([]types.Type, 0, len(uf.Types))
		for _, m := range uf.Types {
			members = append(members, a.Intersect(t, m))
		}
		return types.NewUnion(members...)
	}

	if a.Order.IsSubtype(t, filter) {
		return t
	}
	if a.Order.IsSubtype(filter, t) {
		return filter
	}
	if a.Intersects(t, filter) {
		return t
	}
	return types.Never
}

// Subtract computes the narrowest type that is a t but provably not a
// remove, distributing over a union t and dropping any branch that remove
// fully covers. Branches that merely overlap remove (without remove being a
// supertype) are kept whole: subtraction is conservative, only removing
// what's certain.
func (a Algebra) Subtract(t, remove types.Type) types.Type {
	if _, ok := t.(types.NeverType); ok {
		return types.Never
	}
	if _, ok := remove.(types.AnyType); ok {
		return types.Never
	}
	if _, ok := remove.(types.NeverType); ok {
		return t
	}

	if ut, ok := t.(*types.UnionType); ok {
		members := make([]types.Type, 0, len(ut.Types))
		for _, m := range ut.Types {
			members = append(members, a.Subtract(m, remove))
		}
		return types.NewUnion(members...)
	}
	if ur, ok := remove.(*types.UnionType); ok {
		result := t
		for _, m := range ur.Types {
			result = a.Subtract(result, m)
		}
		return result
	}

	if lt, ok := t.(*types.LitType); ok && lt.Kind == types.LitEnum {
		if lr, ok := remove.(*types.LitType); ok && lr.Kind == types.LitEnum && lr.EnumClass == lt.EnumClass {
			if lt.Equal(lr) {
				return types.Never
			}
			return t
		}
	}

	if a.Order.IsSubtype(t, remove) {
		return types.Never
	}
	return t
}

// Intersects reports whether a and b have any value in common, without
// computing the intersection itself. Any always intersects (gradual
// typing); Never never does; unions intersect if any pair of members does.
func (a Algebra) Intersects(x, y types.Type) bool {
	if _, ok := x.(types.NeverType); ok {
		return false
	}
	if _, ok := y.(types.NeverType); ok {
		return false
	}
	if _, ok := x.(types.AnyType); ok {
		return true
	}
	if _, ok := y.(types.AnyType); ok {
		return true
	}

	if ux, ok := x.(*types.UnionType); ok {
		for _, m := range ux.Types {
			if a.Intersects(m, y) {
				return true
			}
		}
		return false
	}
	if uy, ok := y.(*types.UnionType); ok {
		for _, m := range uy.Types {
			if a.Intersects(x, m) {
				return true
			}
		}
		return false
	}

	return a.Order.IsSubtype(x, y) || a.Order.IsSubtype(y, x)
}

// narrowEnumLimit is the member count above which SubtractEnumMember returns
// the enum class unchanged rather than a union of member literals.
const narrowEnumLimit = 100

// SubtractEnumMember removes one named member from an enum class type,
// returning the union of literals of every remaining member. Flag enums
// have overlapping bit-pattern members, so eliminating one tells us nothing
// about the others and the type is returned unchanged; so is an enum with
// more than narrowEnumLimit members.
func SubtractEnumMember(class *types.Class, member string) types.Type {
	if class.Enum == nil || class.Enum.IsFlag || len(class.Enum.Members) > narrowEnumLimit {
		return types.NewClassType(class)
	}
	remaining := make([]types.Type, 0, len(class.Enum.Members))
	for _, m := range class.Enum.Members {
		if m == member {
			continue
		}
		remaining = append(remaining, types.NewEnumLit(class, m, nil))
	}
	return types.NewUnion(remaining...)
}
