// Package types implements the subset of the gradual type lattice the
// checker narrows over: Never, Any, None, class types, literals (including
// enum members), unions, and the TypeGuard/TypeIs/TypeForm wrappers that
// user-defined narrowing functions return. Subtype checking itself is
// delegated to a TypeOrder, an external collaborator per spec.md §1 (the
// real subtype/equivalence solver is assumed available as a black box).
package types

import (
	"fmt"
	"strings"
)

//sumtype:decl
// Type is a tagged union over the lattice. Every variant is a small
// immutable value; the distribute-over-union traversals in internal/narrow
// type-switch on the variants directly.
type Type interface {
	isType()
	String() string
	// Equal reports structural equality: same shape and same literal
	// values. It does NOT consult a TypeOrder, so Equal(Any{}, Never{})
	// is false even under the gradual-typing subtype rule.
	Equal(other Type) bool
}

func (NeverType) isType()     {}
func (AnyType) isType()       {}
func (NoneType) isType()      {}
func (*ClassType) isType()    {}
func (*LitType) isType()      {}
func (*UnionType) isType()    {}
func (*TypeGuardType) isType() {}
func (*TypeIsType) isType()   {}
func (*TypeFormType) isType() {}

// NeverType is the bottom of the lattice: Never <: t for every t.
type NeverType struct{}

func (NeverType) String() string         { return "Never" }
func (NeverType) Equal(other Type) bool  { _, ok := other.(NeverType); return ok }

// Never is the sole Never value (it carries no data).
var Never Type = NeverType{}

// AnyType is the gradual top/bottom: t <: Any and Any <: t both hold.
type AnyType struct{}

func (AnyType) String() string        { return "Any" }
func (AnyType) Equal(other Type) bool { _, ok := other.(AnyType); return ok }

// AnyT is the sole Any value.
var AnyT Type = AnyType{}

// NoneType is the type of the None singleton.
type NoneType struct{}

func (NoneType) String() string        { return "None" }
func (NoneType) Equal(other Type) bool { _, ok := other.(NoneType); return ok }

// NoneT is the sole None value.
var NoneT Type = NoneType{}

// ClassType is an instantiation of a class, including builtins such as
// bool, int, and str, and user-defined classes such as enum types.
type ClassType struct {
	Class    *Class
	TypeArgs []Type
}

// NewClassType builds a ClassType with no type arguments.
func NewClassType(class *Class) *ClassType {
	return &ClassType{Class: class}
}

func (t *ClassType) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Class.Name
	}
	parts := make([]string, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Class.Name, strings.Join(parts, ", "))
}

func (t *ClassType) Equal(other Type) bool {
	o, ok := other.(*ClassType)
	if !ok || t.Class != o.Class || len(t.TypeArgs) != len(o.TypeArgs) {
		return false
	}
	for i := range t.TypeArgs {
		if !t.TypeArgs[i].Equal(o.TypeArgs[i]) {
			return false
		}
	}
	return true
}

// IsBuiltin reports whether this class type is the named builtin, e.g.
// t.IsBuiltin("bool").
func (t *ClassType) IsBuiltin(name string) bool {
	return t.Class.IsBuiltin && t.Class.Name == name
}

// UnionType is a deduplicated, order-irrelevant set of member types. Always
// construct via NewUnion, never with a literal &UnionType{...}, so the
// Union([]) = Never and Union([t]) = t invariants hold everywhere.
type UnionType struct {
	Types []Type
}

func (t *UnionType) String() string {
	parts := make([]string, len(t.Types))
	for i, m := range t.Types {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

func (t *UnionType) Equal(other Type) bool {
	o, ok := other.(*UnionType)
	if !ok || len(t.Types) != len(o.Types) {
		return false
	}
	used := make([]bool, len(o.Types))
	for _, m := range t.Types {
		found := false
		for i, om := range o.Types {
			if !used[i] && m.Equal(om) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// NewUnion builds a Union, applying the deduplication and unit-element
// invariants: Union([]) = Never, Union([t]) = t.
func NewUnion(ts ...Type) Type {
	deduped := make([]Type, 0, len(ts))
	for _, t := range ts {
		if _, isNever := t.(NeverType); isNever {
			continue
		}
		if u, isUnion := t.(*UnionType); isUnion {
			// Flatten nested unions so distribute-over-union never has to
			// recurse through them.
			for _, m := range u.Types {
				deduped = appendDeduped(deduped, m)
			}
			continue
		}
		deduped = appendDeduped(deduped, t)
	}
	switch len(deduped) {
	case 0:
		return Never
	case 1:
		return deduped[0]
	default:
		return &UnionType{Types: deduped}
	}
}

func appendDeduped(ts []Type, t Type) []Type {
	for _, existing := range ts {
		if existing.Equal(t) {
			return ts
		}
	}
	return append(ts, t)
}

// TypeGuardType is the return type of a user-defined TypeGuard[T] narrower.
type TypeGuardType struct{ Type Type }

func (t *TypeGuardType) String() string        { return "TypeGuard[" + t.Type.String() + "]" }
func (t *TypeGuardType) Equal(other Type) bool { o, ok := other.(*TypeGuardType); return ok && t.Type.Equal(o.Type) }

// TypeIsType is the return type of a user-defined TypeIs[T] narrower.
type TypeIsType struct{ Type Type }

func (t *TypeIsType) String() string        { return "TypeIs[" + t.Type.String() + "]" }
func (t *TypeIsType) Equal(other Type) bool { o, ok := other.(*TypeIsType); return ok && t.Type.Equal(o.Type) }

// TypeFormType is a first-class class object denoting the type it wraps,
// e.g. the result of accessing a class in a "type[X]" / issubclass context.
type TypeFormType struct{ Type Type }

func (t *TypeFormType) String() string        { return "type[" + t.Type.String() + "]" }
func (t *TypeFormType) Equal(other Type) bool { o, ok := other.(*TypeFormType); return ok && t.Type.Equal(o.Type) }
