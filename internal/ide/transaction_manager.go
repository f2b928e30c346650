// Package ide implements the TransactionManager: the policy layer between
// the LSP event loop and AnalysisState that decides whether a request gets
// a committable or non-committable transaction, and reuses a saved
// non-committable one across interactive queries so hover/completion don't
// each pay for a fresh snapshot.
package ide

import (
	"sync"

	"github.com/brianjo/pyrefly/internal/analysis"
	"github.com/brianjo/pyrefly/internal/module"
)

// TransactionManager holds at most one saved non-committable transaction,
// per spec.md §4.5. It is safe for concurrent use, though in the LSP
// server's single-threaded event loop it's only ever touched from one
// goroutine at a time plus the background recheck goroutine (didSave).
type TransactionManager struct {
	mu      sync.Mutex
	saved   *analysis.Transaction
	pending []analysis.MemoryEntry
}

// NewTransactionManager builds an empty TransactionManager.
func NewTransactionManager() *TransactionManager {
	return &TransactionManager{}
}

// GetPossiblyCommittableTransaction implements get_possibly_committable_transaction:
// if no recheck is in flight, it obtains and returns a committable
// transaction, dropping any saved non-committable. Otherwise it returns a
// non-committable transaction — the saved one if present, else a fresh
// snapshot. Either way, every overlay edit noted since a transaction was
// last handed out is applied to the one returned.
func (m *TransactionManager) GetPossiblyCommittableTransaction(state *analysis.AnalysisState, require module.Require, sub analysis.Subscriber) *analysis.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tx, ok := state.TryNewCommittableTransaction(require, sub); ok {
		m.saved = nil
		m.applyPendingLocked(tx)
		return tx
	}

	tx := m.saved
	if tx == nil {
		tx = state.TransactionAt(require)
	}
	m.applyPendingLocked(tx)
	return tx
}

// NonCommittableTransaction implements non_commitable_transaction at the
// exports level: the saved transaction if present, else a fresh snapshot,
// always caught up on pending overlay edits.
func (m *TransactionManager) NonCommittableTransaction(state *analysis.AnalysisState) *analysis.Transaction {
	return m.nonCommittableAt(state, module.RequireExports)
}

// NonCommittableTransactionAt is NonCommittableTransaction at an explicit
// Require level. LSP IDE queries call this with module.RequireEverything so
// the retained bindings hover/definition/completion need are populated.
func (m *TransactionManager) NonCommittableTransactionAt(state *analysis.AnalysisState, require module.Require) *analysis.Transaction {
	return m.nonCommittableAt(state, require)
}

func (m *TransactionManager) nonCommittableAt(state *analysis.AnalysisState, require module.Require) *analysis.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := m.saved
	if tx == nil {
		tx = state.TransactionAt(require)
	}
	m.applyPendingLocked(tx)
	return tx
}

func (m *TransactionManager) applyPendingLocked(tx *analysis.Transaction) {
	if len(m.pending) > 0 {
		tx.SetMemory(m.pending)
		m.pending = nil
	}
}

// Save stashes a non-committable transaction for reuse by a later
// interactive request. It is a programming error to save a committable
// transaction — callers must commit or drop those instead.
func (m *TransactionManager) Save(t *analysis.Transaction) {
	if t.IsCommittable() {
		panic("ide: TransactionManager.Save called with a committable transaction")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = t
	m.pending = nil
}

// NoteOverlayChange records an in-memory buffer edit that happened outside
// of any transaction (e.g. a didChange notification handled before the
// next request needs a transaction). The edit is applied to whichever
// transaction is next handed out, so a reused saved snapshot never serves
// stale editor buffers even though its base artifacts may be stale.
func (m *TransactionManager) NoteOverlayChange(entries []analysis.MemoryEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, entries...)
}

// Drop releases the saved transaction without applying it anywhere,
// e.g. when the server is shutting down.
func (m *TransactionManager) Drop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = nil
	m.pending = nil
}
