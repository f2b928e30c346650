// Package module implements module resolution: turning a dotted module name
// into a concrete ModulePath by walking an ordered list of search roots, and
// memoizing that resolution per loader configuration.
package module

import "strings"

// Name is an ordered, non-empty sequence of identifier components, e.g.
// "foo.bar.baz" -> ["foo", "bar", "baz"]. It's backed by the dotted string
// rather than a slice so that Name — and every struct embedding it,
// including Handle — stays comparable and usable directly as a Go map key;
// Components splits on demand instead of caching a slice field.
type Name struct {
	dotted string
}

// NewName parses a dotted module name such as "foo.bar.baz". Panics if s is
// empty; callers at the boundary (config/import-statement parsing) must
// reject empty names before constructing a Name.
func NewName(s string) Name {
	if s == "" {
		panic("module.NewName: empty module name")
	}
	return Name{dotted: s}
}

// NewNameFromParts builds a Name directly from its components.
func NewNameFromParts(parts ...string) Name {
	if len(parts) == 0 {
		panic("module.NewNameFromParts: no components")
	}
	return Name{dotted: strings.Join(parts, ".")}
}

// FirstComponent returns the leading identifier, e.g. "foo" for "foo.bar".
func (n Name) FirstComponent() string {
	if i := strings.IndexByte(n.dotted, '.'); i >= 0 {
		return n.dotted[:i]
	}
	return n.dotted
}

// Components returns the full, ordered sequence of identifiers.
func (n Name) Components() []string {
	return strings.Split(n.dotted, ".")
}

// String renders the dotted form, e.g. "foo.bar.baz".
func (n Name) String() string {
	return n.dotted
}

// Equal reports whether two names have the same dotted form.
func (n Name) Equal(other Name) bool {
	return n.dotted == other.dotted
}

// WithStubsSuffix returns a new Name with "-stubs" appended to the first
// component, e.g. "foo.bar" -> "foo-stubs.bar". Used by the stub overlay
// search (see FindInSitePackages).
func (n Name) WithStubsSuffix() Name {
	first := n.FirstComponent()
	rest := n.dotted[len(first):] // "" or ".bar.baz..."
	return Name{dotted: first + "-stubs" + rest}
}
