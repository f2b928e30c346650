package types

// Class is the (simplified) representation of a class object the checker
// has resolved: enough to drive narrowing (identity, enum membership,
// flag-enum detection) without needing the full member/method table, which
// belongs to the external TypeOrder/Solver.
type Class struct {
	Name      string
	IsBuiltin bool
	// Enum, when non-nil, makes this class an enum class for the purposes
	// of narrowing (IsNot/NotEq enum-literal narrowing, subtract_enum_member).
	Enum *EnumInfo
}

// EnumInfo describes an enum class's members for subtract_enum_member.
type EnumInfo struct {
	// IsFlag marks an enum.Flag subclass: its members are not disjoint, so
	// narrowing away one member tells us nothing about the others.
	IsFlag  bool
	Members []string
}

// NewClass builds a plain (non-enum) class.
func NewClass(name string) *Class {
	return &Class{Name: name}
}

// NewBuiltinClass builds a builtin class such as "bool", "int", or "str".
func NewBuiltinClass(name string) *Class {
	return &Class{Name: name, IsBuiltin: true}
}

// NewEnumClass builds an enum class with the given members, in declaration
// order (subtract_enum_member's result preserves this order).
func NewEnumClass(name string, isFlag bool, members ...string) *Class {
	return &Class{Name: name, Enum: &EnumInfo{IsFlag: isFlag, Members: members}}
}

// BoolClass is the class bool literals widen to in DefaultOrder. Bool
// narrowing (IsTruthy/IsFalsy, IsNot/NotEq) recognizes any builtin class
// named "bool" via ClassType.IsBuiltin, not only this instance.
var BoolClass = NewBuiltinClass("bool")

// IntClass and StrClass are the widened classes of int and str literals,
// used by DefaultOrder when comparing a literal against a non-literal type.
var IntClass = NewBuiltinClass("int")
var StrClass = NewBuiltinClass("str")
