package lsp

import (
	"context"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/brianjo/pyrefly/internal/analysis"
	"github.com/brianjo/pyrefly/internal/module"
)

const recheckTimeout = 5 * time.Second

// recheck notes the given document's contents as an overlay and runs a
// transaction to RequireErrors for its Handle, publishing whatever
// diagnostics result. It tries for a committable transaction first so a
// successful recheck becomes the new canonical state other requests build
// on; if one is already in flight (another recheck holding the writer
// slot) it falls back to a local,
// uncommitted recheck and saves that instead, matching
// get_possibly_committable_transaction's documented fallback.
func (s *Server) recheck(lspContext *glsp.Context, uri protocol.DocumentUri, contents string) {
	// recheck always runs detached via "go s.recheck(...)" from a
	// didOpen/didChange/didSave handler, outside glsp's own request-dispatch
	// goroutine — glsp.Handle only recovers panics on the synchronous path,
	// so an unrecovered panic here would crash the whole process.
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("recheck of %s panicked: %v", uri, r)
		}
	}()

	h := s.handleForURI(uri)
	path := h.ModulePath.DisplayPath()

	s.txMgr.NoteOverlayChange([]analysis.MemoryEntry{{Path: path, Contents: &contents}})

	tx := s.txMgr.GetPossiblyCommittableTransaction(s.state, module.RequireErrors, analysis.NoopSubscriber{})

	ctx, cancel := context.WithTimeout(context.Background(), recheckTimeout)
	defer cancel()

	if err := tx.Run(ctx, []module.Handle{h}); err != nil {
		s.log.Errorf("recheck of %s failed: %s", path, err)
		if tx.IsCommittable() {
			s.state.DropTransaction(tx)
		} else {
			s.txMgr.Save(tx)
		}
		return
	}

	if tx.IsCommittable() {
		if err := s.state.CommitTransaction(tx); err != nil {
			s.log.Errorf("commit of %s failed: %s", path, err)
		}
	} else {
		s.txMgr.Save(tx)
	}

	s.publishDiagnostics(lspContext, uri, tx, h)
}

func (s *Server) publishDiagnostics(lspContext *glsp.Context, uri protocol.DocumentUri, tx *analysis.Transaction, h module.Handle) {
	info, ok := tx.GetModuleInfo(h)
	diagnostics := []protocol.Diagnostic{}
	if ok {
		text := s.documentText(uri)
		for _, d := range info.Diagnostics {
			severity := protocol.DiagnosticSeverityError
			source := serverName
			start := offsetToPosition(text, d.Offset)
			end := offsetToPosition(text, d.Offset+d.Length)
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range:    protocol.Range{Start: start, End: end},
				Severity: &severity,
				Source:   &source,
				Message:  d.Message,
			})
		}
	}

	go lspContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (s *Server) documentText(uri protocol.DocumentUri) string {
	s.docsMu.Lock()
	defer s.docsMu.Unlock()
	return s.docs[uri].Text
}
