package narrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianjo/pyrefly/internal/types"
)

// fakeEval lets tests associate arbitrary Expr values (plain strings here)
// with a Type, a CalleeKind, and a symbolic guard-invocation result.
type fakeEval struct {
	values  map[Expr]types.Type
	callees map[Expr]CalleeKind
	guards  map[Expr]types.Type
}

func newFakeEval() *fakeEval {
	return &fakeEval{
		values:  map[Expr]types.Type{},
		callees: map[Expr]CalleeKind{},
		guards:  map[Expr]types.Type{},
	}
}

func (f *fakeEval) Eval(e Expr) types.Type             { return f.values[e] }
func (f *fakeEval) CalleeKind(fn Expr) CalleeKind       { return f.callees[fn] }
func (f *fakeEval) InvokeGuard(fn Expr, _ []Expr) types.Type { return f.guards[fn] }

// fakeAttrs resolves "base.attr" via a flat map keyed by (base type string,
// attr name), enough to exercise the attribute-path narrowing paths.
type fakeAttrs struct {
	attrs map[string]types.Type
}

func (a *fakeAttrs) ResolveAttr(base types.Type, attr string) types.Type {
	if ty, ok := a.attrs[base.String()+"."+attr]; ok {
		return ty
	}
	return types.AnyT
}

var intClass = types.NewBuiltinClass("int")
var strClass = types.NewBuiltinClass("str")

func TestIntersectAnyIsIdentity(t *testing.T) {
	alg := Algebra{Order: types.DefaultOrder{}}
	assert.True(t, alg.Intersect(types.NewClassType(intClass), types.AnyT).Equal(types.NewClassType(intClass)))
}

func TestIntersectNeverIsNever(t *testing.T) {
	alg := Algebra{Order: types.DefaultOrder{}}
	assert.Equal(t, types.Never, alg.Intersect(types.Never, types.NewClassType(intClass)))
	assert.Equal(t, types.Never, alg.Intersect(types.NewClassType(intClass), types.Never))
}

func TestIntersectDistributesOverUnion(t *testing.T) {
	alg := Algebra{Order: types.DefaultOrder{}}
	u := types.NewUnion(types.NewClassType(intClass), types.NewClassType(strClass))
	got := alg.Intersect(u, types.NewClassType(strClass))
	assert.True(t, got.Equal(types.NewClassType(strClass)))
}

func TestSubtractDistributesOverUnion(t *testing.T) {
	alg := Algebra{Order: types.DefaultOrder{}}
	u := types.NewUnion(types.NewClassType(intClass), types.NewClassType(strClass), types.NoneT)
	got := alg.Subtract(u, types.NoneT)
	want := types.NewUnion(types.NewClassType(intClass), types.NewClassType(strClass))
	assert.True(t, got.Equal(want))
}

func TestSubtractAnyIsNever(t *testing.T) {
	alg := Algebra{Order: types.DefaultOrder{}}
	assert.Equal(t, types.Never, alg.Subtract(types.NewClassType(intClass), types.AnyT))
}

func TestIntersectsHandlesUnionAndAny(t *testing.T) {
	alg := Algebra{Order: types.DefaultOrder{}}
	assert.False(t, alg.Intersects(types.AnyT, types.Never), "nothing intersects Never, not even Any")
	assert.False(t, alg.Intersects(types.Never, types.NewClassType(intClass)))
	u := types.NewUnion(types.NewClassType(intClass), types.NewClassType(strClass))
	assert.True(t, alg.Intersects(u, types.NewClassType(strClass)))
}

func TestSubtractEnumMemberDropsOneMember(t *testing.T) {
	colorClass := types.NewEnumClass("Color", false, "RED", "GREEN", "BLUE")
	got := SubtractEnumMember(colorClass, "RED")
	want := types.NewUnion(
		types.NewEnumLit(colorClass, "GREEN", nil),
		types.NewEnumLit(colorClass, "BLUE", nil),
	)
	assert.True(t, got.Equal(want))
}

func TestSubtractEnumMemberFlagEnumUnchanged(t *testing.T) {
	flags := types.NewEnumClass("Flags", true, "A", "B")
	got := SubtractEnumMember(flags, "A")
	assert.True(t, got.Equal(types.NewClassType(flags)))
}

func TestNarrowIsInstancePositiveAndNegative(t *testing.T) {
	eval := newFakeEval()
	eval.values["RClass"] = types.NewClassType(intClass)
	n := NewNarrower(nil, eval, &fakeAttrs{})

	base := types.NewTypeInfo(types.NewUnion(types.NewClassType(intClass), types.NewClassType(strClass)))

	pos := n.Narrow(base, &AtomicNode{Op: IsInstanceOp{Value: "RClass"}})
	require.True(t, pos.Ty().Equal(types.NewClassType(intClass)))

	neg := n.Narrow(base, &AtomicNode{Op: IsNotInstanceOp{Value: "RClass"}})
	require.True(t, neg.Ty().Equal(types.NewClassType(strClass)))
}

func TestNarrowIsTruthyIsFalsy(t *testing.T) {
	eval := newFakeEval()
	n := NewNarrower(nil, eval, &fakeAttrs{})
	base := types.NewTypeInfo(types.NewClassType(types.NewBuiltinClass("bool")))

	truthy := n.Narrow(base, &AtomicNode{Op: IsTruthyOp{}})
	assert.True(t, truthy.Ty().Equal(types.NewBoolLit(true)))

	falsy := n.Narrow(base, &AtomicNode{Op: IsFalsyOp{}})
	assert.True(t, falsy.Ty().Equal(types.NewBoolLit(false)))
}

func TestNarrowIsNotBoolRewritesToNegatedLiteral(t *testing.T) {
	eval := newFakeEval()
	eval.values["true"] = types.NewBoolLit(true)
	n := NewNarrower(nil, eval, &fakeAttrs{})

	base := types.NewTypeInfo(types.NewClassType(types.NewBuiltinClass("bool")))
	got := n.Narrow(base, &AtomicNode{Op: IsNotOp{Value: "true"}})
	assert.True(t, got.Ty().Equal(types.NewBoolLit(false)))
}

func TestNarrowIsNotEnumSubtractsMember(t *testing.T) {
	colorClass := types.NewEnumClass("Color", false, "RED", "GREEN")
	eval := newFakeEval()
	eval.values["redLit"] = types.NewEnumLit(colorClass, "RED", nil)
	n := NewNarrower(nil, eval, &fakeAttrs{})

	base := types.NewTypeInfo(types.NewClassType(colorClass))
	got := n.Narrow(base, &AtomicNode{Op: IsNotOp{Value: "redLit"}})
	want := types.NewUnion(types.NewEnumLit(colorClass, "GREEN", nil))
	assert.True(t, got.Ty().Equal(want))
}

func TestNarrowIsNotLeavesNonIdentitySafeLiteralUnnarrowed(t *testing.T) {
	// is not comparisons against int/str literals aren't identity-safe, so
	// the original value must be left untouched rather than narrowed.
	eval := newFakeEval()
	eval.values["zero"] = types.NewIntLit(0)
	n := NewNarrower(nil, eval, &fakeAttrs{})

	base := types.NewTypeInfo(types.NewClassType(intClass))
	got := n.Narrow(base, &AtomicNode{Op: IsNotOp{Value: "zero"}})
	assert.True(t, got.Ty().Equal(types.NewClassType(intClass)))
}

func TestNarrowEqIgnoresNonLiteralRight(t *testing.T) {
	eval := newFakeEval()
	eval.values["obj"] = types.NewClassType(types.NewClass("Widget"))
	n := NewNarrower(nil, eval, &fakeAttrs{})

	base := types.NewTypeInfo(types.NewClassType(intClass))
	got := n.Narrow(base, &AtomicNode{Op: EqOp{Value: "obj"}})
	assert.True(t, got.Ty().Equal(types.NewClassType(intClass)), "comparing to a non-literal, non-None value must not narrow")
}

func TestNarrowNotEqIgnoresNonLiteralRight(t *testing.T) {
	eval := newFakeEval()
	eval.values["obj"] = types.NewClassType(types.NewClass("Widget"))
	n := NewNarrower(nil, eval, &fakeAttrs{})

	base := types.NewTypeInfo(types.NewClassType(intClass))
	got := n.Narrow(base, &AtomicNode{Op: NotEqOp{Value: "obj"}})
	assert.True(t, got.Ty().Equal(types.NewClassType(intClass)), "comparing to a non-literal, non-None value must not narrow")
}

func TestNarrowNotEqBoolRewritesToNegatedLiteral(t *testing.T) {
	eval := newFakeEval()
	eval.values["true"] = types.NewBoolLit(true)
	n := NewNarrower(nil, eval, &fakeAttrs{})

	base := types.NewTypeInfo(types.NewClassType(types.NewBuiltinClass("bool")))
	got := n.Narrow(base, &AtomicNode{Op: NotEqOp{Value: "true"}})
	assert.True(t, got.Ty().Equal(types.NewBoolLit(false)))
}

func TestNarrowEqNotEqEnum(t *testing.T) {
	colorClass := types.NewEnumClass("Color", false, "RED", "GREEN")
	eval := newFakeEval()
	eval.values["redLit"] = types.NewEnumLit(colorClass, "RED", nil)
	n := NewNarrower(nil, eval, &fakeAttrs{})

	base := types.NewTypeInfo(types.NewClassType(colorClass))
	eq := n.Narrow(base, &AtomicNode{Op: EqOp{Value: "redLit"}})
	assert.True(t, eq.Ty().Equal(types.NewEnumLit(colorClass, "RED", nil)))

	notEq := n.Narrow(base, &AtomicNode{Op: NotEqOp{Value: "redLit"}})
	want := types.NewUnion(types.NewEnumLit(colorClass, "GREEN", nil))
	assert.True(t, notEq.Ty().Equal(want))
}

func TestAndNodeFoldsLeftToRight(t *testing.T) {
	eval := newFakeEval()
	eval.values["RInt"] = types.NewClassType(intClass)
	n := NewNarrower(nil, eval, &fakeAttrs{})
	base := types.NewTypeInfo(types.NewUnion(types.NewClassType(intClass), types.NoneT))

	and := &AndNode{Ops: []NarrowOp{
		&AtomicNode{Op: IsNotOp{Value: "none"}},
		&AtomicNode{Op: IsInstanceOp{Value: "RInt"}},
	}}
	eval.values["none"] = types.NoneT
	got := n.Narrow(base, and)
	assert.True(t, got.Ty().Equal(types.NewClassType(intClass)))
}

func TestOrNodeJoinsBranches(t *testing.T) {
	eval := newFakeEval()
	eval.values["RInt"] = types.NewClassType(intClass)
	eval.values["RStr"] = types.NewClassType(strClass)
	n := NewNarrower(nil, eval, &fakeAttrs{})
	base := types.NewTypeInfo(types.NewUnion(types.NewClassType(intClass), types.NewClassType(strClass), types.NoneT))

	or := &OrNode{Ops: []NarrowOp{
		&AtomicNode{Op: IsInstanceOp{Value: "RInt"}},
		&AtomicNode{Op: IsInstanceOp{Value: "RStr"}},
	}}
	got := n.Narrow(base, or)
	want := types.NewUnion(types.NewClassType(intClass), types.NewClassType(strClass))
	assert.True(t, got.Ty().Equal(want))
}

func TestAttributePathNarrowing(t *testing.T) {
	eval := newFakeEval()
	eval.values["none"] = types.NoneT
	attrs := &fakeAttrs{attrs: map[string]types.Type{
		"Foo.bar": types.NewUnion(types.NewClassType(intClass), types.NoneT),
	}}
	n := NewNarrower(nil, eval, attrs)

	fooClass := types.NewBuiltinClass("Foo")
	base := types.NewTypeInfo(types.NewClassType(fooClass))

	got := n.Narrow(base, &AtomicNode{Path: []string{"bar"}, Op: IsNotOp{Value: "none"}})
	refined, ok := got.TypeAtPath([]string{"bar"})
	require.True(t, ok)
	assert.True(t, refined.Equal(types.NewClassType(intClass)))
	// The base type at the root is untouched by an attribute-path narrow.
	assert.True(t, got.Ty().Equal(types.NewClassType(fooClass)))
}

func TestResolveNarrowingCallRequiresTwoArgs(t *testing.T) {
	eval := newFakeEval()
	eval.callees["isinstance"] = CalleeIsInstanceBuiltin
	eval.values["RInt"] = types.NewClassType(intClass)
	n := NewNarrower(nil, eval, &fakeAttrs{})
	alg := Algebra{Order: types.DefaultOrder{}}

	base := types.NewUnion(types.NewClassType(intClass), types.NewClassType(strClass))

	// Only one argument: not eligible for isinstance re-dispatch, falls
	// through to guard resolution (no guard registered, so unchanged).
	got := n.resolveNarrowingCall(alg, base, "isinstance", []Expr{"x"}, true)
	assert.True(t, got.Equal(base))

	got2 := n.resolveNarrowingCall(alg, base, "isinstance", []Expr{"x", "RInt"}, true)
	assert.True(t, got2.Equal(types.NewClassType(intClass)))
}

func TestApplyTypeGuardOnlyNarrowsPositiveBranch(t *testing.T) {
	eval := newFakeEval()
	eval.guards["is_int"] = &types.TypeGuardType{Type: types.NewClassType(intClass)}
	n := NewNarrower(nil, eval, &fakeAttrs{})
	base := types.NewTypeInfo(types.NewUnion(types.NewClassType(intClass), types.NewClassType(strClass)))

	pos := n.Narrow(base, &AtomicNode{Op: TypeGuardOp{Func: "is_int"}})
	assert.True(t, pos.Ty().Equal(types.NewClassType(intClass)))

	neg := n.Narrow(base, &AtomicNode{Op: NotTypeGuardOp{Func: "is_int"}})
	assert.True(t, neg.Ty().Equal(base.Ty()))
}

func TestApplyTypeIsNarrowsBothBranches(t *testing.T) {
	eval := newFakeEval()
	eval.guards["is_int"] = &types.TypeIsType{Type: types.NewClassType(intClass)}
	n := NewNarrower(nil, eval, &fakeAttrs{})
	base := types.NewTypeInfo(types.NewUnion(types.NewClassType(intClass), types.NewClassType(strClass)))

	pos := n.Narrow(base, &AtomicNode{Op: TypeIsOp{Func: "is_int"}})
	assert.True(t, pos.Ty().Equal(types.NewClassType(intClass)))

	neg := n.Narrow(base, &AtomicNode{Op: NotTypeIsOp{Func: "is_int"}})
	assert.True(t, neg.Ty().Equal(types.NewClassType(strClass)))
}
