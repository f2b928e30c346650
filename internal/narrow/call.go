package narrow

import "github.com/brianjo/pyrefly/internal/types"

// resolveNarrowingCall implements "if isinstance(x, R):" written as a
// generic Call rather than surfaced by the parser as its own AST node.
// Only calls with at least two arguments are eligible for re-dispatch to
// isinstance/issubclass narrowing, and the class argument is always the
// second one (index 1) — matching the exact argument-position assumption
// the call-narrowing path in the original checker makes, rather than
// inspecting keyword arguments or arity beyond two. Calls that don't match
// this shape, or whose callee isn't isinstance/issubclass, fall through to
// TypeGuard/TypeIs re-dispatch and otherwise narrow nothing.
func (n *Narrower) resolveNarrowingCall(alg Algebra, base types.Type, fn Expr, args []Expr, want bool) types.Type {
	if len(args) >= 2 {
		switch n.Eval.CalleeKind(fn) {
		case CalleeIsInstanceBuiltin:
			if want {
				return alg.Intersect(base, n.classOf(args[1]))
			}
			return alg.Subtract(base, n.classOf(args[1]))
		case CalleeIsSubclassBuiltin:
			if want {
				return alg.Intersect(base, n.typeFormOf(args[1]))
			}
			return alg.Subtract(base, n.typeFormOf(args[1]))
		}
	}
	return n.applyGuard(alg, base, fn, args, want)
}
