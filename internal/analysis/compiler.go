package analysis

import "github.com/brianjo/pyrefly/internal/module"

// CompileInput is everything a Compiler needs to check one handle: its
// resolved source (from disk or the in-memory overlay) and the exports of
// every dependency resolved so far in this transaction (widened to Any for
// any dependency still inside an unconverged cycle).
type CompileInput struct {
	Handle        module.Handle
	Source        string
	DepExports    map[module.Handle]map[string]string
	Require       module.Require
}

// CompileOutput is the result of checking one handle to Require.
type CompileOutput struct {
	Exports     map[string]string
	Diagnostics []Diagnostic
	Bindings    []Binding
	Deps        []module.Handle
}

// Compiler is the external collaborator that actually parses and checks a
// module (spec.md §1: the parser and the type solver are out of scope of
// this package). AnalysisState and Transaction only coordinate *when* and
// *how often* Compile is called — never what it does.
type Compiler interface {
	Compile(in CompileInput) (CompileOutput, error)
}
