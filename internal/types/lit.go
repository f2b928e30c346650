package types

import "fmt"

// LitKind tags which kind of literal a LitType carries.
type LitKind int

const (
	LitBool LitKind = iota
	LitInt
	LitStr
	LitEnum
)

// LitType is a literal value type: a specific bool, int, string, or enum
// member (class + member name + underlying value).
type LitType struct {
	Kind LitKind

	BoolValue bool
	IntValue  int64
	StrValue  string

	EnumClass  *Class
	EnumMember string
	EnumValue  any
}

func NewBoolLit(b bool) *LitType   { return &LitType{Kind: LitBool, BoolValue: b} }
func NewIntLit(i int64) *LitType   { return &LitType{Kind: LitInt, IntValue: i} }
func NewStrLit(s string) *LitType  { return &LitType{Kind: LitStr, StrValue: s} }

// NewEnumLit builds Literal(Enum(class, member, value)).
func NewEnumLit(class *Class, member string, value any) *LitType {
	return &LitType{Kind: LitEnum, EnumClass: class, EnumMember: member, EnumValue: value}
}

func (t *LitType) String() string {
	switch t.Kind {
	case LitBool:
		return fmt.Sprintf("Literal[%t]", t.BoolValue)
	case LitInt:
		return fmt.Sprintf("Literal[%d]", t.IntValue)
	case LitStr:
		return fmt.Sprintf("Literal[%q]", t.StrValue)
	case LitEnum:
		return fmt.Sprintf("Literal[%s.%s]", t.EnumClass.Name, t.EnumMember)
	default:
		return "Literal(?)"
	}
}

func (t *LitType) Equal(other Type) bool {
	o, ok := other.(*LitType)
	if !ok || t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case LitBool:
		return t.BoolValue == o.BoolValue
	case LitInt:
		return t.IntValue == o.IntValue
	case LitStr:
		return t.StrValue == o.StrValue
	case LitEnum:
		return t.EnumClass == o.EnumClass && t.EnumMember == o.EnumMember
	default:
		return false
	}
}
