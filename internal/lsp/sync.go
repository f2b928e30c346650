package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/brianjo/pyrefly/internal/analysis"
)

const pythonLanguageID = "python"

func (s *Server) textDocumentDidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docsMu.Lock()
	s.docs[params.TextDocument.URI] = params.TextDocument
	s.docsMu.Unlock()

	if params.TextDocument.LanguageID == pythonLanguageID {
		go s.recheck(context, params.TextDocument.URI, params.TextDocument.Text)
	}
	return nil
}

func (s *Server) textDocumentDidChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.docsMu.Lock()
	doc := s.docs[params.TextDocument.URI]
	s.docsMu.Unlock()

	var latest string
	for _, change := range params.ContentChanges {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			latest = change.Text
		default:
			return fmt.Errorf("incremental text document changes are not supported")
		}
	}

	doc.Version = params.TextDocument.Version
	doc.Text = latest
	s.docsMu.Lock()
	s.docs[params.TextDocument.URI] = doc
	s.docsMu.Unlock()

	if doc.LanguageID == pythonLanguageID {
		go s.recheck(context, params.TextDocument.URI, latest)
	}
	return nil
}

func (s *Server) textDocumentDidSave(context *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.docsMu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	s.docsMu.Unlock()
	if !ok || doc.LanguageID != pythonLanguageID {
		return nil
	}

	text := doc.Text
	if params.Text != nil {
		text = *params.Text
	}

	go s.withProgress(context, "pyrefly: checking "+string(params.TextDocument.URI), func() {
		s.recheck(context, params.TextDocument.URI, text)
	})
	return nil
}

func (s *Server) textDocumentDidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docsMu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.docsMu.Unlock()

	h := s.handleForURI(params.TextDocument.URI)
	s.txMgr.NoteOverlayChange([]analysis.MemoryEntry{{Path: h.ModulePath.DisplayPath(), Contents: nil}})

	go lspContextNotifyEmptyDiagnostics(context, params.TextDocument.URI)
	return nil
}

func lspContextNotifyEmptyDiagnostics(context *glsp.Context, uri protocol.DocumentUri) {
	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
}
