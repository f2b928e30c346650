package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeAtPathMissingReturnsFalse(t *testing.T) {
	info := NewTypeInfo(AnyT)
	_, ok := info.TypeAtPath([]string{"a", "b"})
	assert.False(t, ok)
}

func TestWithNarrowDoesNotAffectOriginal(t *testing.T) {
	strClass := NewBuiltinClass("str")
	base := NewTypeInfo(AnyT)
	narrowed := base.WithNarrow([]string{"x"}, NewClassType(strClass))

	_, ok := base.TypeAtPath([]string{"x"})
	assert.False(t, ok, "WithNarrow must not mutate the receiver")

	got, ok := narrowed.TypeAtPath([]string{"x"})
	require.True(t, ok)
	assert.True(t, got.Equal(NewClassType(strClass)))
}

func TestWithTyPreservesNarrowTree(t *testing.T) {
	intClass := NewBuiltinClass("int")
	boolClass := NewBuiltinClass("bool")

	base := NewTypeInfo(AnyT).WithNarrow([]string{"x"}, NewClassType(intClass))
	retyped := base.WithTy(NewClassType(boolClass))

	assert.True(t, retyped.Ty().Equal(NewClassType(boolClass)))
	got, ok := retyped.TypeAtPath([]string{"x"})
	require.True(t, ok)
	assert.True(t, got.Equal(NewClassType(intClass)))

	// Unrelated path still absent.
	_, ok = retyped.TypeAtPath([]string{"y"})
	assert.False(t, ok)
}

func TestJoinUnionsBaseTypes(t *testing.T) {
	intClass := NewBuiltinClass("int")
	strClass := NewBuiltinClass("str")

	joined := Join([]TypeInfo{
		NewTypeInfo(NewClassType(intClass)),
		NewTypeInfo(NewClassType(strClass)),
	})

	assert.True(t, joined.Ty().Equal(NewUnion(NewClassType(intClass), NewClassType(strClass))))
}

func TestJoinDropsPathsNotPresentInEveryBranch(t *testing.T) {
	intClass := NewBuiltinClass("int")

	onlyLeft := NewTypeInfo(AnyT).WithNarrow([]string{"x"}, NewClassType(intClass))
	onlyRight := NewTypeInfo(AnyT)

	joined := Join([]TypeInfo{onlyLeft, onlyRight})
	_, ok := joined.TypeAtPath([]string{"x"})
	assert.False(t, ok, "a path missing from one branch must be dropped, not defaulted to Any")
}

func TestJoinUnionsSharedPathAcrossBranches(t *testing.T) {
	intClass := NewBuiltinClass("int")
	strClass := NewBuiltinClass("str")

	left := NewTypeInfo(AnyT).WithNarrow([]string{"x"}, NewClassType(intClass))
	right := NewTypeInfo(AnyT).WithNarrow([]string{"x"}, NewClassType(strClass))

	joined := Join([]TypeInfo{left, right})
	got, ok := joined.TypeAtPath([]string{"x"})
	require.True(t, ok)
	assert.True(t, got.Equal(NewUnion(NewClassType(intClass), NewClassType(strClass))))
}

func TestJoinOfSingleInfoReturnsItUnchanged(t *testing.T) {
	intClass := NewBuiltinClass("int")
	info := NewTypeInfo(AnyT).WithNarrow([]string{"x"}, NewClassType(intClass))
	joined := Join([]TypeInfo{info})
	got, ok := joined.TypeAtPath([]string{"x"})
	require.True(t, ok)
	assert.True(t, got.Equal(NewClassType(intClass)))
}

func TestJoinOfNoneIsNever(t *testing.T) {
	joined := Join(nil)
	assert.Equal(t, Never, joined.Ty())
}
