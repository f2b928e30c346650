package module

//sumtype:decl
// Path identifies where a module's source lives. Only FileSystemPath,
// MemoryPath, and NamespacePath correspond to a real path the user can be
// shown; BundledTypeshedPath is an opaque reference into bundled stubs.
type Path interface {
	isModulePath()
	// DisplayPath returns the path to show in diagnostics, or "" for
	// bundled stubs (callers should show the bundled id instead).
	DisplayPath() string
	String() string
}

func (FileSystemPath) isModulePath()      {}
func (MemoryPath) isModulePath()          {}
func (NamespacePath) isModulePath()       {}
func (BundledTypeshedPath) isModulePath() {}

// FileSystemPath is a module backed by a real file on disk.
type FileSystemPath struct {
	Path string
}

func (p FileSystemPath) DisplayPath() string { return p.Path }
func (p FileSystemPath) String() string      { return p.Path }

// MemoryPath is a module whose contents are an in-memory editor buffer
// overlaying (or standing in for) a path.
type MemoryPath struct {
	Path string
}

func (p MemoryPath) DisplayPath() string { return p.Path }
func (p MemoryPath) String() string      { return p.Path + " (in-memory)" }

// NamespacePath is a namespace package: a directory with no __init__ file.
// Per the open question in DESIGN.md, this carries only the first of
// possibly several namespace directories discovered across search roots.
type NamespacePath struct {
	Path string
}

func (p NamespacePath) DisplayPath() string { return p.Path }
func (p NamespacePath) String() string      { return p.Path + " (namespace)" }

// BundledTypeshedPath is an opaque reference into bundled stubs, with no
// real filesystem path to show the user.
type BundledTypeshedPath struct {
	ID string
}

func (p BundledTypeshedPath) DisplayPath() string { return "" }
func (p BundledTypeshedPath) String() string      { return "bundled:" + p.ID }
