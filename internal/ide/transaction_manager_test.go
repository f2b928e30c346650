package ide

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianjo/pyrefly/internal/analysis"
	"github.com/brianjo/pyrefly/internal/module"
)

type fakeCompiler struct{}

func (fakeCompiler) Compile(in analysis.CompileInput) (analysis.CompileOutput, error) {
	return analysis.CompileOutput{Exports: map[string]string{"source": in.Source}}, nil
}

type fakeSources struct{ byPath map[string]string }

func (s *fakeSources) ReadDisk(path module.Path) (string, error) {
	return s.byPath[path.DisplayPath()], nil
}

func testHandle(name string) module.Handle {
	loader := module.NewLoaderID(module.NewLoaderConfig(nil, nil))
	return module.NewHandle(
		module.NewName(name),
		module.FileSystemPath{Path: name + ".py"},
		module.RuntimeMetadata{PythonVersion: [3]int{3, 12, 0}, Platform: "linux"},
		loader,
	)
}

func TestGetPossiblyCommittableReturnsCommittableWhenFree(t *testing.T) {
	state := analysis.NewAnalysisState(fakeCompiler{}, &fakeSources{byPath: map[string]string{}})
	mgr := NewTransactionManager()

	tx := mgr.GetPossiblyCommittableTransaction(state, module.RequireErrors, analysis.NoopSubscriber{})
	require.True(t, tx.IsCommittable())
	state.DropTransaction(tx)
}

func TestGetPossiblyCommittableFallsBackToSavedWhenBusy(t *testing.T) {
	state := analysis.NewAnalysisState(fakeCompiler{}, &fakeSources{byPath: map[string]string{}})
	mgr := NewTransactionManager()

	inFlight, ok := state.TryNewCommittableTransaction(module.RequireErrors, analysis.NoopSubscriber{})
	require.True(t, ok)
	defer state.DropTransaction(inFlight)

	saved := state.Transaction()
	mgr.Save(saved)

	tx := mgr.GetPossiblyCommittableTransaction(state, module.RequireErrors, analysis.NoopSubscriber{})
	assert.False(t, tx.IsCommittable())
	assert.Same(t, saved, tx, "the saved non-committable transaction should be reused while a recheck is in flight")
}

func TestSaveRejectsCommittableTransaction(t *testing.T) {
	state := analysis.NewAnalysisState(fakeCompiler{}, &fakeSources{byPath: map[string]string{}})
	mgr := NewTransactionManager()

	tx, ok := state.TryNewCommittableTransaction(module.RequireErrors, analysis.NoopSubscriber{})
	require.True(t, ok)
	defer state.DropTransaction(tx)

	assert.Panics(t, func() { mgr.Save(tx) })
}

func TestPendingOverlayAppliedToReusedSnapshot(t *testing.T) {
	h := testHandle("m")
	state := analysis.NewAnalysisState(fakeCompiler{}, &fakeSources{byPath: map[string]string{"m.py": "disk"}})
	mgr := NewTransactionManager()

	saved := state.Transaction()
	mgr.Save(saved)

	edited := "edited in memory"
	mgr.NoteOverlayChange([]analysis.MemoryEntry{{Path: "m.py", Contents: &edited}})

	tx := mgr.NonCommittableTransaction(state)
	require.Same(t, saved, tx)
	require.NoError(t, tx.Run(context.Background(), []module.Handle{h}))
	info, ok := tx.GetModuleInfo(h)
	require.True(t, ok)
	assert.Equal(t, "edited in memory", info.Exports["source"])
}
