package lsp

import (
	"sync/atomic"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianjo/pyrefly/internal/analysis"
	"github.com/brianjo/pyrefly/internal/module"
)

type fakeCompiler struct {
	calls   atomic.Int64
	compile func(in analysis.CompileInput) (analysis.CompileOutput, error)
}

func (c *fakeCompiler) Compile(in analysis.CompileInput) (analysis.CompileOutput, error) {
	c.calls.Add(1)
	return c.compile(in)
}

type fakeSources struct{ byPath map[string]string }

func (s *fakeSources) ReadDisk(path module.Path) (string, error) {
	return s.byPath[path.DisplayPath()], nil
}

func testRuntime() module.RuntimeMetadata {
	return module.RuntimeMetadata{PythonVersion: [3]int{3, 12, 0}, Platform: "linux"}
}

func TestHandleForURIUsesFileSystemPathAndSharedLoader(t *testing.T) {
	state := analysis.NewAnalysisState(&fakeCompiler{}, &fakeSources{byPath: map[string]string{}})
	s := NewServer(state, testRuntime())

	h := s.handleForURI(protocol.DocumentUri("file:///repo/pkg/mod.py"))
	assert.Equal(t, "/repo/pkg/mod.py", h.ModulePath.DisplayPath())
	assert.Equal(t, "repo.pkg.mod", h.Name.String())
	assert.Equal(t, testRuntime(), h.RuntimeMetadata)
	assert.True(t, h.Loader.Equal(s.loaderID()), "the handle must carry the server's shared LoaderID")
}

func TestSetLoaderConfigChangesFutureHandles(t *testing.T) {
	state := analysis.NewAnalysisState(&fakeCompiler{}, &fakeSources{byPath: map[string]string{}})
	s := NewServer(state, testRuntime())

	before := s.handleForURI(protocol.DocumentUri("file:///repo/mod.py"))
	s.setLoaderConfig(module.NewLoaderConfig([]string{"/repo/src"}, nil))
	after := s.handleForURI(protocol.DocumentUri("file:///repo/mod.py"))

	assert.False(t, before.Loader.Equal(after.Loader), "changing the loader config must produce a distinct LoaderID")
}

func TestWithQueryTransactionReusesCachedArtifactOnSecondCall(t *testing.T) {
	compiler := &fakeCompiler{compile: func(in analysis.CompileInput) (analysis.CompileOutput, error) {
		return analysis.CompileOutput{
			Bindings: []analysis.Binding{{Name: "x", Offset: 0, Type: "int"}},
		}, nil
	}}
	state := analysis.NewAnalysisState(compiler, &fakeSources{byPath: map[string]string{"/repo/mod.py": "x = 1"}})
	s := NewServer(state, testRuntime())
	h := s.handleForURI(protocol.DocumentUri("file:///repo/mod.py"))

	var names []string
	require.NoError(t, s.withQueryTransaction(h, func(tx *analysis.Transaction) {
		names = tx.Completion(h, "")
	}))
	assert.Equal(t, []string{"x"}, names)
	// One exports pass (already at its fixed point: the module exports
	// nothing) plus the final pass at RequireEverything.
	assert.Equal(t, int64(2), compiler.calls.Load())

	names = nil
	require.NoError(t, s.withQueryTransaction(h, func(tx *analysis.Transaction) {
		names = tx.Completion(h, "")
	}))
	assert.Equal(t, []string{"x"}, names)
	assert.Equal(t, int64(2), compiler.calls.Load(), "second query against an unchanged handle should reuse the saved transaction's cached artifact")
}
