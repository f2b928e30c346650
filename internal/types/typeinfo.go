package types

import (
	"strings"

	"github.com/tidwall/btree"
)

// TypeInfo pairs a base type with a finite mapping from attribute-name-path
// ("a.b.c") to a refined type, as narrowed by predicates evaluated along
// that path. TypeInfo values are created once per binding site and replaced
// wholesale (never mutated) by WithTy/WithNarrow — the narrow-tree map is
// copy-on-write so unaffected branches are shared between the old and new
// TypeInfo.
type TypeInfo struct {
	ty         Type
	narrowTree btree.Map[string, Type]
}

// NewTypeInfo builds a TypeInfo with no attribute refinements.
func NewTypeInfo(ty Type) TypeInfo {
	return TypeInfo{ty: ty}
}

// Ty returns the base type.
func (t TypeInfo) Ty() Type {
	return t.ty
}

func joinPath(path []string) string {
	return strings.Join(path, ".")
}

// TypeAtPath returns the refined type stored for path, if one has been
// recorded by an earlier narrowing. The leaf lookup in attribute-path
// narrowing consults this before falling back to the attribute-resolution
// collaborator.
func (t TypeInfo) TypeAtPath(path []string) (Type, bool) {
	return t.narrowTree.Get(joinPath(path))
}

// WithTy returns a new TypeInfo with the base type replaced and the
// narrow-tree carried over unchanged (structural sharing: the btree.Map is
// copy-on-write internally).
func (t TypeInfo) WithTy(ty Type) TypeInfo {
	return TypeInfo{ty: ty, narrowTree: *t.narrowTree.Copy()}
}

// WithNarrow returns a new TypeInfo with the refined type stored at path,
// leaving the base type and every other path untouched.
func (t TypeInfo) WithNarrow(path []string, refined Type) TypeInfo {
	next := t.narrowTree.Copy()
	next.Set(joinPath(path), refined)
	return TypeInfo{ty: t.ty, narrowTree: *next}
}

// Join computes the pointwise join of several TypeInfos produced by
// narrowing the same base TypeInfo under the branches of an Or: the base
// type is the lattice union of every branch's base type, and each
// attribute path present in every branch is unioned across branches. A path
// missing from any one branch carries no information in the join (dropped),
// since that branch contributes no refinement at the path.
func Join(infos []TypeInfo) TypeInfo {
	if len(infos) == 0 {
		return NewTypeInfo(Never)
	}
	if len(infos) == 1 {
		return infos[0]
	}

	tys := make([]Type, len(infos))
	for i, info := range infos {
		tys[i] = info.ty
	}

	counts := map[string]int{}
	byPath := map[string][]Type{}
	for _, info := range infos {
		info.narrowTree.Scan(func(path string, ty Type) bool {
			counts[path]++
			byPath[path] = append(byPath[path], ty)
			return true
		})
	}

	result := TypeInfo{ty: NewUnion(tys...)}
	for path, ts := range byPath {
		if counts[path] != len(infos) {
			continue
		}
		result.narrowTree.Set(path, NewUnion(ts...))
	}
	return result
}
