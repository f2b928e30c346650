package narrow

import "github.com/brianjo/pyrefly/internal/types"

// Narrower walks a NarrowOp tree against a TypeInfo, threading through the
// external collaborators (a subtype Order, an expression Evaluator, and an
// AttributeResolver) that the algebra and atomic ops need.
type Narrower struct {
	Order types.Order
	Eval  Evaluator
	Attrs AttributeResolver
}

// NewNarrower builds a Narrower over the given collaborators. order may be
// nil, in which case types.DefaultOrder{} is used.
func NewNarrower(order types.Order, eval Evaluator, attrs AttributeResolver) *Narrower {
	if order == nil {
		order = types.DefaultOrder{}
	}
	return &Narrower{Order: order, Eval: eval, Attrs: attrs}
}

// Narrow refines info under op, returning the TypeInfo to use on the branch
// where op is known to hold.
func (n *Narrower) Narrow(info types.TypeInfo, op NarrowOp) types.TypeInfo {
	switch o := op.(type) {
	case *AtomicNode:
		return n.narrowAtomicNode(info, o)
	case *AndNode:
		result := info
		for _, sub := range o.Ops {
			result = n.Narrow(result, sub)
		}
		return result
	case *OrNode:
		if len(o.Ops) == 0 {
			return types.NewTypeInfo(types.Never)
		}
		branches := make([]types.TypeInfo, len(o.Ops))
		for i, sub := range o.Ops {
			branches[i] = n.Narrow(info, sub)
		}
		return types.Join(branches)
	default:
		return info
	}
}

func (n *Narrower) narrowAtomicNode(info types.TypeInfo, node *AtomicNode) types.TypeInfo {
	if len(node.Path) == 0 {
		refined := n.atomicNarrow(info.Ty(), node.Op)
		return info.WithTy(refined)
	}
	base := n.GetAttributeType(info, node.Path)
	refined := n.atomicNarrow(base, node.Op)
	return info.WithNarrow(node.Path, refined)
}

// GetAttributeType resolves the type at a dotted attribute path against
// info: the leaf first consults info's narrow-tree (an exact entry for the
// full path), falling back to the attribute-resolution collaborator; any
// intermediate component is always resolved through the collaborator,
// since only leaf refinements are recorded in the narrow-tree.
func (n *Narrower) GetAttributeType(info types.TypeInfo, path []string) types.Type {
	if len(path) == 0 {
		return info.Ty()
	}
	if ty, ok := info.TypeAtPath(path); ok {
		return ty
	}
	base := info.Ty()
	for _, component := range path[:len(path)-1] {
		base = n.Attrs.ResolveAttr(base, component)
	}
	return n.Attrs.ResolveAttr(base, path[len(path)-1])
}
