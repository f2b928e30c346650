// Package analysis implements the incremental, transactional analysis
// state: a global Handle -> CompiledArtifact map, advanced by committable
// transactions (the single in-flight writer) and observed through
// non-committable transactions (arbitrarily many readers over a snapshot).
// Per-handle checking itself — producing bindings, solved types, and
// diagnostics from a module's AST — is an external collaborator (spec.md
// §1 places the parser and the type solver out of scope); this package
// depends only on the Compiler interface in compiler.go.
package analysis

import (
	"github.com/brianjo/pyrefly/internal/module"
)

// Diagnostic is a single reported type error, positioned by byte offset
// into the module's source (the concrete text range/severity model lives
// with the external parser/solver; this is the minimal shape AnalysisState
// and the LSP layer need to route and display one).
type Diagnostic struct {
	Message string
	Offset  int
	Length  int
}

// Binding is a retained name -> declaration-site association, populated
// only when a handle is checked to module.RequireEverything (go-to-
// definition, hover, and completion all read off this).
type Binding struct {
	Name   string
	Offset int
	Type   string // rendered type, e.g. via types.Type.String()
}

// CompiledArtifact is the per-handle result retained in AnalysisState.
// Which of Diagnostics/Bindings are populated depends on Satisfied: an
// artifact computed only to RequireExports carries neither.
type CompiledArtifact struct {
	Handle      module.Handle
	Satisfied   module.Require
	Diagnostics []Diagnostic
	Bindings    []Binding
	Exports     map[string]string // name -> rendered export type, always populated

	// Generation is the AnalysisState commit counter as of when this
	// artifact was last (re)computed, mirroring gopls's GlobalSnapshotID:
	// recorded so a transaction can tell "already fresh as of generation G"
	// without rehashing Deps.
	Generation uint64

	// Deps is the set of handles this artifact's checking resolved an
	// import to, used to compute the transitive dirty closure when a
	// dependency's on-disk or in-memory contents change.
	Deps []module.Handle
}
