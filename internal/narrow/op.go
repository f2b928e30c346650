// Package narrow implements flow-sensitive type narrowing: refining a
// TypeInfo under a conjunction/disjunction of predicates evaluated at a
// program point. The expression and attribute-resolution machinery this
// needs (evaluating a source-language expression to a Type, resolving
// "obj.attr"'s type) are external collaborators per spec.md §1 — this
// package only depends on the narrow Evaluator/AttributeResolver
// interfaces, never on a concrete parser or checker.
package narrow

import "github.com/brianjo/pyrefly/internal/types"

// Expr is an opaque source-language expression node. The narrow package
// never inspects it directly; it's only ever passed back into an Evaluator.
type Expr any

//sumtype:decl
// AtomicNarrowOp is one leaf predicate in a NarrowOp tree. Each positive
// form states its refinement in atomic.go; Not* forms apply the dual.
type AtomicNarrowOp interface {
	isAtomicNarrowOp()
}

func (IsOp) isAtomicNarrowOp()            {}
func (IsNotOp) isAtomicNarrowOp()         {}
func (IsInstanceOp) isAtomicNarrowOp()    {}
func (IsNotInstanceOp) isAtomicNarrowOp() {}
func (IsSubclassOp) isAtomicNarrowOp()    {}
func (IsNotSubclassOp) isAtomicNarrowOp() {}
func (IsTruthyOp) isAtomicNarrowOp()      {}
func (IsFalsyOp) isAtomicNarrowOp()       {}
func (EqOp) isAtomicNarrowOp()            {}
func (NotEqOp) isAtomicNarrowOp()         {}
func (CallOp) isAtomicNarrowOp()          {}
func (NotCallOp) isAtomicNarrowOp()       {}
func (TypeGuardOp) isAtomicNarrowOp()     {}
func (NotTypeGuardOp) isAtomicNarrowOp()  {}
func (TypeIsOp) isAtomicNarrowOp()        {}
func (NotTypeIsOp) isAtomicNarrowOp()     {}

type IsOp struct{ Value Expr }
type IsNotOp struct{ Value Expr }
type IsInstanceOp struct{ Value Expr }
type IsNotInstanceOp struct{ Value Expr }
type IsSubclassOp struct{ Value Expr }
type IsNotSubclassOp struct{ Value Expr }
type IsTruthyOp struct{}
type IsFalsyOp struct{}
type EqOp struct{ Value Expr }
type NotEqOp struct{ Value Expr }
type CallOp struct {
	Func Expr
	Args []Expr
}
type NotCallOp struct {
	Func Expr
	Args []Expr
}
type TypeGuardOp struct {
	Func Expr
	Args []Expr
}
type NotTypeGuardOp struct {
	Func Expr
	Args []Expr
}
type TypeIsOp struct {
	Func Expr
	Args []Expr
}
type NotTypeIsOp struct {
	Func Expr
	Args []Expr
}

//sumtype:decl
// NarrowOp is a tree of predicates: a single atomic refinement, possibly
// applied through an attribute path, combined with And/Or.
type NarrowOp interface {
	isNarrowOp()
}

func (*AtomicNode) isNarrowOp() {}
func (*AndNode) isNarrowOp()    {}
func (*OrNode) isNarrowOp()     {}

// AtomicNode applies a single AtomicNarrowOp, either to the type itself
// (Path == nil) or to the type at an attribute path (Path == ["a","b"] for
// "x.a.b").
type AtomicNode struct {
	Path []string
	Op   AtomicNarrowOp
}

// AndNode left-folds narrow() across its operands; an empty And is the
// identity (returns the input TypeInfo unchanged).
type AndNode struct {
	Ops []NarrowOp
}

// OrNode joins narrow() across its operands pointwise; an empty Or is
// Never.
type OrNode struct {
	Ops []NarrowOp
}

// CalleeKind classifies a callable expression for Call/NotCall re-dispatch.
type CalleeKind int

const (
	CalleeOrdinary CalleeKind = iota
	CalleeIsInstanceBuiltin
	CalleeIsSubclassBuiltin
)

// Evaluator is the external collaborator that evaluates expressions to
// types and identifies callee kinds (the checker's expr_infer/call_infer).
type Evaluator interface {
	// Eval infers the type of an expression at the current program point.
	Eval(expr Expr) types.Type
	// CalleeKind identifies whether fn is isinstance/issubclass or an
	// ordinary callable.
	CalleeKind(fn Expr) CalleeKind
	// InvokeGuard symbolically calls a user-defined narrowing function and
	// returns its return type. Used only to read off TypeGuard[T]/TypeIs[T]
	// from the return type; never has side effects on the program.
	InvokeGuard(fn Expr, args []Expr) types.Type
}

// AttributeResolver is the external collaborator resolving "base.attr"'s
// type outside of narrowing (the checker's attr_infer), used whenever a
// path isn't already recorded in a TypeInfo's narrow-tree.
type AttributeResolver interface {
	ResolveAttr(base types.Type, attr string) types.Type
}
