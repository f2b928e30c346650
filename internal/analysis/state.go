package analysis

import (
	"context"
	"maps"
	"sync"

	"github.com/sasha-s/go-deadlock"

	"github.com/brianjo/pyrefly/internal/module"
	"github.com/brianjo/pyrefly/internal/set"
)

// AnalysisState owns the canonical Handle -> CompiledArtifact map and
// coordinates transactions against it. One committable transaction may be
// in flight at a time; any number of non-committable transactions may read
// a snapshot concurrently. writerSlot is a 1-buffered channel acting as the
// single-writer token: held (empty) while a committable transaction
// exists, refilled on commit or drop.
type AnalysisState struct {
	mu        deadlock.RWMutex
	artifacts map[module.Handle]*CompiledArtifact
	generation uint64

	overlayMu sync.Mutex
	overlay   map[string]string // DisplayPath -> contents

	writerSlot chan struct{}

	compiler Compiler
	sources  SourceLoader
}

// NewAnalysisState builds an empty AnalysisState, ready to accept
// transactions. compiler performs the actual per-handle checking; sources
// reads on-disk contents when no in-memory overlay is present.
func NewAnalysisState(compiler Compiler, sources SourceLoader) *AnalysisState {
	slot := make(chan struct{}, 1)
	slot <- struct{}{}
	return &AnalysisState{
		artifacts:  map[module.Handle]*CompiledArtifact{},
		overlay:    map[string]string{},
		writerSlot: slot,
		compiler:   compiler,
		sources:    sources,
	}
}

// Transaction returns a fresh non-committable snapshot: reads see the
// canonical state and overlay as of this call, and never change underfoot
// even if a commit happens concurrently.
func (s *AnalysisState) Transaction() *Transaction {
	return s.snapshot(false, module.RequireExports, NoopSubscriber{})
}

// TransactionAt is Transaction but at an explicit Require level, for callers
// that need more than exports out of a non-committable snapshot — IDE
// queries (hover, definition, completion) need RequireEverything's retained
// bindings, not just the exports level Transaction defaults to.
func (s *AnalysisState) TransactionAt(require module.Require) *Transaction {
	return s.snapshot(false, require, NoopSubscriber{})
}

// TryNewCommittableTransaction returns a committable transaction if no
// recheck is currently in flight, else (nil, false).
func (s *AnalysisState) TryNewCommittableTransaction(require module.Require, sub Subscriber) (*Transaction, bool) {
	select {
	case <-s.writerSlot:
		return s.snapshot(true, require, sub), true
	default:
		return nil, false
	}
}

// NewCommittableTransaction blocks until a committable transaction is
// obtainable (or ctx is done).
func (s *AnalysisState) NewCommittableTransaction(ctx context.Context, require module.Require, sub Subscriber) (*Transaction, error) {
	select {
	case <-s.writerSlot:
		return s.snapshot(true, require, sub), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *AnalysisState) snapshot(committable bool, require module.Require, sub Subscriber) *Transaction {
	s.mu.RLock()
	artifacts := maps.Clone(s.artifacts)
	s.mu.RUnlock()

	s.overlayMu.Lock()
	overlay := maps.Clone(s.overlay)
	s.overlayMu.Unlock()

	if sub == nil {
		sub = NoopSubscriber{}
	}
	return &Transaction{
		state:        s,
		committable:  committable,
		require:      require,
		subscriber:   sub,
		artifacts:    artifacts,
		overlay:      overlay,
		memorySet:    map[string]string{},
		memoryDelete: set.NewSet[string](),
		invalidated:  set.NewSet[string](),
	}
}

// currentGeneration reads the commit counter.
func (s *AnalysisState) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// CommitTransaction atomically installs t's staged writes (overlay changes
// and recomputed artifacts) into the canonical state and releases the
// writer slot. Paths marked with InvalidateDisk only affect Run within t;
// the invalidations themselves are not carried into the canonical state.
// Commits are totally ordered: only one
// CommitTransaction can be running at a time, enforced by the writer slot
// t already holds.
func (s *AnalysisState) CommitTransaction(t *Transaction) error {
	if !t.committable || t.released {
		return errNotCommittable
	}

	s.overlayMu.Lock()
	for path := range t.memoryDelete {
		delete(s.overlay, path)
	}
	for path, contents := range t.memorySet {
		s.overlay[path] = contents
	}
	s.overlayMu.Unlock()

	s.mu.Lock()
	s.generation++
	for h, a := range t.artifacts {
		s.artifacts[h] = a
	}
	s.mu.Unlock()

	t.released = true
	s.writerSlot <- struct{}{}
	return nil
}

// DropTransaction releases a committable transaction's writer slot without
// installing its staged writes, e.g. when a request handler abandons a
// recheck partway through.
func (s *AnalysisState) DropTransaction(t *Transaction) {
	if !t.committable || t.released {
		return
	}
	t.released = true
	s.writerSlot <- struct{}{}
}

