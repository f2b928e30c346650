package main

import (
	"os"
	"runtime"

	"github.com/brianjo/pyrefly/internal/analysis"
	"github.com/brianjo/pyrefly/internal/module"
)

func platformName() string { return runtime.GOOS }

// diskSourceLoader implements analysis.SourceLoader by reading a
// FileSystemPath straight off disk. MemoryPath, NamespacePath, and
// BundledTypeshedPath have no on-disk file to read by this route — a
// transaction serves MemoryPath contents from its overlay before ever
// calling ReadDisk, namespace packages have no single file, and bundled
// typeshed stubs are an opaque id the loader that resolved them already
// embedded the contents for.
type diskSourceLoader struct{}

func (diskSourceLoader) ReadDisk(path module.Path) (string, error) {
	fsPath, ok := path.(module.FileSystemPath)
	if !ok {
		return "", nil
	}
	contents, err := os.ReadFile(fsPath.Path)
	if err != nil {
		return "", err
	}
	return string(contents), nil
}

// stubCompiler stands in for the parser + type solver spec.md §1 scopes out
// as external collaborators: it reports every module as having no errors
// and no exports rather than performing any real checking. A production
// build wires a real Compiler here; this one exists so the CLI, the LSP
// event loop, and AnalysisState's transaction machinery can be exercised
// end-to-end without one.
type stubCompiler struct{}

func (stubCompiler) Compile(in analysis.CompileInput) (analysis.CompileOutput, error) {
	return analysis.CompileOutput{Exports: map[string]string{}}, nil
}
