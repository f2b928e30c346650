package analysis

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/brianjo/pyrefly/internal/module"
	"github.com/brianjo/pyrefly/internal/set"
)

// MemoryEntry stages one path's in-memory overlay: Contents == nil removes
// the overlay (reverting to on-disk contents), matching set_memory's
// Option<contents> semantics in spec.md §4.4.
type MemoryEntry struct {
	Path     string
	Contents *string
}

// Transaction is a scoped view of AnalysisState: a snapshot of artifacts
// and overlay as of its creation, plus staged writes accumulated by
// SetMemory/InvalidateDisk/Run. A committable Transaction's writes are
// moved into the canonical state by AnalysisState.CommitTransaction; a
// non-committable Transaction's writes are visible only to itself and are
// discarded when it's dropped.
type Transaction struct {
	state       *AnalysisState
	committable bool
	require     module.Require
	subscriber  Subscriber
	released    bool

	artifacts map[module.Handle]*CompiledArtifact
	overlay   map[string]string

	memorySet    map[string]string
	memoryDelete set.Set[string]
	invalidated  set.Set[string]
}

// IsCommittable reports whether this transaction can advance the canonical
// state via AnalysisState.CommitTransaction.
func (t *Transaction) IsCommittable() bool { return t.committable }

// SetMemory stages in-memory overlay changes for the given paths. It's
// also how internal/ide's TransactionManager catches a reused saved
// transaction up on edits that happened after it was saved: calling it
// again with entries already applied is idempotent.
func (t *Transaction) SetMemory(entries []MemoryEntry) {
	for _, e := range entries {
		if e.Contents == nil {
			delete(t.overlay, e.Path)
			t.memoryDelete.Add(e.Path)
			delete(t.memorySet, e.Path)
			continue
		}
		t.overlay[e.Path] = *e.Contents
		t.memorySet[e.Path] = *e.Contents
		t.memoryDelete.Remove(e.Path)
	}
}

// InvalidateDisk marks the on-disk contents at these paths as stale,
// forcing Run to recompute any handle whose ModulePath resolves to one of
// them rather than reusing a cached artifact.
func (t *Transaction) InvalidateDisk(paths []string) {
	for _, p := range paths {
		t.invalidated.Add(p)
	}
}

// isDirty reports whether h itself must be recomputed rather than reusing
// its cached artifact: it has never been computed, was computed below the
// currently required level, or its path was explicitly invalidated. Handles
// that are stale only because a dependency is dirty are not detected here;
// Run adds them afterwards via expandToDependents.
func (t *Transaction) isDirty(h module.Handle) bool {
	a, ok := t.artifacts[h]
	if !ok {
		return true
	}
	if !a.Satisfied.Satisfies(t.require) {
		return true
	}
	if t.invalidated.Contains(h.ModulePath.DisplayPath()) {
		return true
	}
	return false
}

// dependents returns every handle in this transaction's snapshot whose
// recorded Deps includes target, scanning the artifact map directly rather
// than maintaining a separate reverse index — the snapshot is already a
// full clone, so there's no shared state to protect here.
func (t *Transaction) dependents(target module.Handle) []module.Handle {
	var out []module.Handle
	for h, a := range t.artifacts {
		for _, d := range a.Deps {
			if d == target {
				out = append(out, h)
				break
			}
		}
	}
	return out
}

// expandToDependents grows a dirty set to its transitive dirty closure:
// every handle that (directly or transitively) imports something already
// dirty must be recomputed too, since its cached exports were derived from
// the stale version. Matches spec.md §4.4's dirty-closure requirement.
func (t *Transaction) expandToDependents(dirty []module.Handle) []module.Handle {
	seen := set.FromSlice(dirty)
	queue := append([]module.Handle(nil), dirty...)
	for i := 0; i < len(queue); i++ {
		for _, dep := range t.dependents(queue[i]) {
			if seen.VisitOnce(dep) {
				queue = append(queue, dep)
			}
		}
	}
	return queue
}

// readSource returns the text to check for h: the in-memory overlay if
// present, else the on-disk contents via the AnalysisState's SourceLoader.
func (t *Transaction) readSource(h module.Handle) (string, error) {
	if contents, ok := t.overlay[h.ModulePath.DisplayPath()]; ok {
		return contents, nil
	}
	return t.state.sources.ReadDisk(h.ModulePath)
}

// Run computes each handle to at least t.require, reusing cached artifacts
// where possible. Handles are fixed-pointed together as one batch: exports
// are recomputed in passes (each dependency's exports taken from the
// previous pass, or Any-widened on the first pass for anything not yet in
// the canonical state) until two consecutive passes agree, then errors and
// bindings are computed once against the converged exports. Within a pass,
// independent handles run concurrently via errgroup; passes themselves are
// sequential, which is what makes a handle's view of its cyclic peers'
// exports stable within that pass.
func (t *Transaction) Run(ctx context.Context, handles []module.Handle) error {
	dirty := make([]module.Handle, 0, len(handles))
	for _, h := range handles {
		if t.isDirty(h) {
			dirty = append(dirty, h)
		}
	}
	if len(dirty) == 0 {
		return nil
	}
	dirty = t.expandToDependents(dirty)

	guesses := make(map[module.Handle]map[string]string, len(dirty))
	for _, h := range dirty {
		guesses[h] = t.currentExports(h)
	}

	maxPasses := len(dirty) + 2
	for pass := 0; pass < maxPasses; pass++ {
		next, err := t.compilePass(ctx, dirty, guesses, module.RequireExports)
		if err != nil {
			return err
		}
		converged := exportsConverged(guesses, next)
		nextGuesses := make(map[module.Handle]map[string]string, len(next))
		for h, a := range next {
			nextGuesses[h] = a.Exports
		}
		guesses = nextGuesses
		if converged {
			break
		}
	}

	final, err := t.compilePass(ctx, dirty, guesses, t.require)
	if err != nil {
		return err
	}
	nextGen := t.nextGeneration()
	for h, out := range final {
		out.Generation = nextGen
		t.artifacts[h] = out
		t.subscriber.OnRecompute(h)
	}
	return nil
}

// nextGeneration is the AnalysisState generation counter value this
// transaction's artifacts will carry once committed. Safe to read ahead of
// the actual commit: a committable Transaction holds the single writer slot
// for its whole lifetime, so no other commit can advance s.generation in
// between. Non-committable transactions never advance the canonical
// generation at all, so their artifacts are stamped 0.
func (t *Transaction) nextGeneration() uint64 {
	if !t.committable {
		return 0
	}
	return t.state.currentGeneration() + 1
}

// currentExports is the fixed point loop's initial guess for h: its
// last-known exports, or an empty map for a handle with no prior artifact.
// An empty guess is exactly the "widen to Any" rule from spec.md §4.4 —
// CompileInput.DepExports maps h to an empty export map, and a Compiler that
// finds no export for an imported name is expected to type it Any rather
// than fail.
func (t *Transaction) currentExports(h module.Handle) map[string]string {
	if a, ok := t.artifacts[h]; ok {
		return a.Exports
	}
	return map[string]string{}
}

// compilePass compiles every handle in dirty concurrently (bounded by
// GOMAXPROCS) against the fixed guesses snapshot, returning the resulting
// artifacts without installing them into t.artifacts.
func (t *Transaction) compilePass(ctx context.Context, dirty []module.Handle, guesses map[module.Handle]map[string]string, require module.Require) (map[module.Handle]*CompiledArtifact, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	results := make(map[module.Handle]*CompiledArtifact, len(dirty))
	var mu sync.Mutex

	for _, h := range dirty {
		h := h
		g.Go(func() error {
			source, err := t.readSource(h)
			if err != nil {
				return err
			}
			depExports := make(map[module.Handle]map[string]string, len(guesses))
			for dep, exports := range guesses {
				depExports[dep] = exports
			}
			out, err := t.state.compiler.Compile(CompileInput{
				Handle:     h,
				Source:     source,
				DepExports: depExports,
				Require:    require,
			})
			if err != nil {
				return err
			}
			artifact := &CompiledArtifact{
				Handle:      h,
				Satisfied:   require,
				Diagnostics: out.Diagnostics,
				Bindings:    out.Bindings,
				Exports:     out.Exports,
				Deps:        out.Deps,
			}
			mu.Lock()
			results[h] = artifact
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func exportsConverged(prev map[module.Handle]map[string]string, next map[module.Handle]*CompiledArtifact) bool {
	for h, a := range next {
		if !stringMapsEqual(prev[h], a.Exports) {
			return false
		}
	}
	return true
}

func stringMapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// GetLoads retrieves recorded diagnostics for the given handles.
func (t *Transaction) GetLoads(handles []module.Handle) map[module.Handle][]Diagnostic {
	out := make(map[module.Handle][]Diagnostic, len(handles))
	for _, h := range handles {
		if a, ok := t.artifacts[h]; ok {
			out[h] = a.Diagnostics
		}
	}
	return out
}

// GetModuleInfo returns the retained artifact for h, if any.
func (t *Transaction) GetModuleInfo(h module.Handle) (*CompiledArtifact, bool) {
	a, ok := t.artifacts[h]
	return a, ok
}

// GetBindings returns h's retained bindings, which are only populated when
// h was last computed at module.RequireEverything.
func (t *Transaction) GetBindings(h module.Handle) ([]Binding, bool) {
	a, ok := t.artifacts[h]
	if !ok {
		return nil, false
	}
	return a.Bindings, true
}

// GetSolutions returns h's solved export types.
func (t *Transaction) GetSolutions(h module.Handle) (map[string]string, bool) {
	a, ok := t.artifacts[h]
	if !ok {
		return nil, false
	}
	return a.Exports, true
}
