package narrow

import "github.com/brianjo/pyrefly/internal/types"

// atomicNarrow applies a single AtomicNarrowOp to a base type, returning the
// refined type. It never looks at attribute paths or the narrow-tree; the
// caller (Narrower.Narrow) is responsible for routing the result back onto
// the right path of a TypeInfo.
func (n *Narrower) atomicNarrow(base types.Type, op AtomicNarrowOp) types.Type {
	alg := Algebra{Order: n.Order}

	switch o := op.(type) {
	case IsOp:
		return alg.Intersect(base, n.Eval.Eval(o.Value))
	case IsNotOp:
		return n.narrowIsNot(base, o.Value)

	case IsInstanceOp:
		return alg.Intersect(base, n.classOf(o.Value))
	case IsNotInstanceOp:
		return alg.Subtract(base, n.classOf(o.Value))
	case IsSubclassOp:
		return alg.Intersect(base, n.typeFormOf(o.Value))
	case IsNotSubclassOp:
		return alg.Subtract(base, n.typeFormOf(o.Value))

	case IsTruthyOp:
		return n.narrowTruthy(base, true)
	case IsFalsyOp:
		return n.narrowTruthy(base, false)

	case EqOp:
		return n.narrowEq(alg, base, o.Value)
	case NotEqOp:
		return n.narrowNotEq(base, o.Value)

	case CallOp:
		return n.resolveNarrowingCall(alg, base, o.Func, o.Args, true)
	case NotCallOp:
		return n.resolveNarrowingCall(alg, base, o.Func, o.Args, false)

	case TypeGuardOp:
		return n.applyGuard(alg, base, o.Func, o.Args, true)
	case NotTypeGuardOp:
		// TypeGuard only tells us something positive; the negative branch
		// learns nothing (the narrowed set need not be a partition).
		return base
	case TypeIsOp:
		return n.applyGuard(alg, base, o.Func, o.Args, true)
	case NotTypeIsOp:
		return n.applyGuard(alg, base, o.Func, o.Args, false)

	default:
		return base
	}
}

// classOf evaluates the second argument of an isinstance/issubclass-style
// call (a class object or tuple thereof) to the type it denotes for
// narrowing purposes, unwrapping a TypeForm wrapper if present.
func (n *Narrower) classOf(arg Expr) types.Type {
	t := n.Eval.Eval(arg)
	if tf, ok := t.(*types.TypeFormType); ok {
		return tf.Type
	}
	return t
}

// typeFormOf is classOf's counterpart for issubclass, where the evaluated
// argument already denotes the class-object type itself.
func (n *Narrower) typeFormOf(arg Expr) types.Type {
	return n.classOf(arg)
}

// narrowIsNot implements the IsNot atom's per-disjunct rule: most disjuncts
// are left untouched, since only None, bool literals, and enum-member
// literals are safe to compare for narrowing by identity. A disjunct equal
// to one of those is dropped outright; a bool ClassType rewrites to the
// negated literal; a ClassType of the same enum as an enum-literal right
// side narrows by subtracting that member.
func (n *Narrower) narrowIsNot(base types.Type, value Expr) types.Type {
	right := n.Eval.Eval(value)
	return distributeOverUnion(base, func(t types.Type) types.Type {
		if isIdentitySafeLiteral(right) && t.Equal(right) {
			return types.Never
		}
		if ct, ok := t.(*types.ClassType); ok {
			if lit, ok := right.(*types.LitType); ok {
				if lit.Kind == types.LitBool && ct.IsBuiltin("bool") {
					return types.NewBoolLit(!lit.BoolValue)
				}
				if lit.Kind == types.LitEnum && lit.EnumClass == ct.Class {
					return SubtractEnumMember(lit.EnumClass, lit.EnumMember)
				}
			}
		}
		return t
	})
}

// isIdentitySafeLiteral reports whether v is one of the few values narrowing
// may compare by identity for is/is not: None, a bool literal, or an
// enum-member literal. int/str literals are excluded — is-comparisons
// against them don't reliably reflect equality, so they're never narrowed
// this way.
func isIdentitySafeLiteral(v types.Type) bool {
	if _, ok := v.(types.NoneType); ok {
		return true
	}
	lit, ok := v.(*types.LitType)
	return ok && (lit.Kind == types.LitBool || lit.Kind == types.LitEnum)
}

// narrowTruthy implements the shared IsTruthy/IsFalsy atom: each disjunct
// whose statically-known truthiness contradicts boolval is dropped, a plain
// bool disjunct is refined to the matching bool literal, and everything
// else (an object whose truthiness the lattice can't name) is kept as is.
func (n *Narrower) narrowTruthy(base types.Type, boolval bool) types.Type {
	return distributeOverUnion(base, func(t types.Type) types.Type {
		if v, known := asBool(t); known && v == !boolval {
			return types.Never
		}
		if ct, ok := t.(*types.ClassType); ok && ct.IsBuiltin("bool") {
			return types.NewBoolLit(boolval)
		}
		return t
	})
}

// asBool reports the statically-known truthiness of t: None and the
// zero/empty/false literals are falsy, nonzero/non-empty/true literals are
// truthy. Every other type's truthiness depends on runtime state the
// lattice doesn't track, so known is false.
func asBool(t types.Type) (value bool, known bool) {
	switch v := t.(type) {
	case types.NoneType:
		return false, true
	case *types.LitType:
		switch v.Kind {
		case types.LitBool:
			return v.BoolValue, true
		case types.LitInt:
			return v.IntValue != 0, true
		case types.LitStr:
			return v.StrValue != "", true
		}
	}
	return false, false
}

func (n *Narrower) narrowEq(alg Algebra, base types.Type, value Expr) types.Type {
	right := n.Eval.Eval(value)
	if !isLiteralOrNone(right) {
		return base
	}
	return alg.Intersect(base, right)
}

// narrowNotEq mirrors narrowEq's literal-or-None guard, then applies the
// same per-disjunct rewrite IsNot uses: NotEq and IsNot agree on every case
// the original checker distinguishes between identity and equality for
// (None, bool, enum-member), since those are exactly the values this
// lattice can compare precisely either way.
func (n *Narrower) narrowNotEq(base types.Type, value Expr) types.Type {
	right := n.Eval.Eval(value)
	if !isLiteralOrNone(right) {
		return base
	}
	return distributeOverUnion(base, func(t types.Type) types.Type {
		if t.Equal(right) {
			return types.Never
		}
		if ct, ok := t.(*types.ClassType); ok {
			if lit, ok := right.(*types.LitType); ok {
				if lit.Kind == types.LitBool && ct.IsBuiltin("bool") {
					return types.NewBoolLit(!lit.BoolValue)
				}
				if lit.Kind == types.LitEnum && lit.EnumClass == ct.Class {
					return SubtractEnumMember(lit.EnumClass, lit.EnumMember)
				}
			}
		}
		return t
	})
}

// isLiteralOrNone reports whether v is a literal or None, the only right-hand
// sides Eq/NotEq narrow against — an arbitrary non-literal object's equality
// tells the checker nothing about its type.
func isLiteralOrNone(v types.Type) bool {
	if _, ok := v.(types.NoneType); ok {
		return true
	}
	_, ok := v.(*types.LitType)
	return ok
}

// distributeOverUnion applies f to every member of a union (or to t itself,
// if it isn't one), rebuilding the result with NewUnion so the usual
// dedup/flatten/unit-element invariants apply to whatever f returns.
func distributeOverUnion(t types.Type, f func(types.Type) types.Type) types.Type {
	if u, ok := t.(*types.UnionType); ok {
		members := make([]types.Type, len(u.Types))
		for i, m := range u.Types {
			members[i] = f(m)
		}
		return types.NewUnion(members...)
	}
	return f(t)
}

// applyGuard narrows base against the declared type of a TypeGuard[T] or
// TypeIs[T] return, in the positive (want=true) or negated (want=false)
// direction. TypeIs intersects/subtracts like isinstance; TypeGuard only
// narrows the positive branch (see NotTypeGuardOp).
func (n *Narrower) applyGuard(alg Algebra, base types.Type, fn Expr, args []Expr, want bool) types.Type {
	ret := n.Eval.InvokeGuard(fn, args)
	var target types.Type
	switch r := ret.(type) {
	case *types.TypeGuardType:
		target = r.Type
	case *types.TypeIsType:
		target = r.Type
	default:
		return base
	}
	if want {
		return alg.Intersect(base, target)
	}
	return alg.Subtract(base, target)
}
