package lsp

import (
	"context"
	"fmt"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/brianjo/pyrefly/internal/analysis"
	"github.com/brianjo/pyrefly/internal/module"
)

const commandInlayHints = "pyrefly.inlayHints"
const queryTimeout = 2 * time.Second

// withQueryTransaction obtains the saved non-committable transaction (or a
// fresh snapshot), runs h to RequireEverything so retained bindings are
// populated, hands it to query, and saves it back for the next interactive
// request — the "obtain, answer, save" pattern every read-only LSP request
// shares.
func (s *Server) withQueryTransaction(h module.Handle, query func(tx *analysis.Transaction)) error {
	tx := s.txMgr.NonCommittableTransactionAt(s.state, module.RequireEverything)
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	if err := tx.Run(ctx, []module.Handle{h}); err != nil {
		s.txMgr.Save(tx)
		return err
	}
	query(tx)
	s.txMgr.Save(tx)
	return nil
}

func (s *Server) textDocumentDefinition(context *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	h := s.handleForURI(params.TextDocument.URI)
	text := s.documentText(params.TextDocument.URI)
	offset := positionToOffset(text, params.Position)

	var location *protocol.Location
	err := s.withQueryTransaction(h, func(tx *analysis.Transaction) {
		b, ok := tx.GotoDefinition(h, offset)
		if !ok {
			return
		}
		pos := offsetToPosition(text, b.Offset)
		location = &protocol.Location{
			URI:   params.TextDocument.URI,
			Range: protocol.Range{Start: pos, End: pos},
		}
	})
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return location, nil
}

func (s *Server) textDocumentHover(context *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	h := s.handleForURI(params.TextDocument.URI)
	text := s.documentText(params.TextDocument.URI)
	offset := positionToOffset(text, params.Position)

	var hover *protocol.Hover
	err := s.withQueryTransaction(h, func(tx *analysis.Transaction) {
		summary, ok := tx.Hover(h, offset)
		if !ok {
			return
		}
		hover = &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindPlainText,
				Value: summary,
			},
		}
	})
	if err != nil {
		return nil, err
	}
	return hover, nil
}

func (s *Server) textDocumentCompletion(context *glsp.Context, params *protocol.CompletionParams) (any, error) {
	h := s.handleForURI(params.TextDocument.URI)
	text := s.documentText(params.TextDocument.URI)
	offset := positionToOffset(text, params.Position)
	prefix := currentWordPrefix(text, offset)

	var items []protocol.CompletionItem
	err := s.withQueryTransaction(h, func(tx *analysis.Transaction) {
		for _, name := range tx.Completion(h, prefix) {
			items = append(items, protocol.CompletionItem{Label: name})
		}
	})
	if err != nil {
		return nil, err
	}
	return protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

// currentWordPrefix returns the identifier characters immediately before
// offset, the token Completion filters bindings by.
func currentWordPrefix(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}
	start := offset
	for start > 0 {
		c := text[start-1]
		isIdent := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isIdent {
			break
		}
		start--
	}
	return text[start:offset]
}

// workspaceExecuteCommand handles pyrefly.inlayHints: the Language Server
// Protocol version this server implements (3.16) predates textDocument/
// inlayHint (added in 3.17), so inline type hints are exposed as a custom
// command instead of a standard request.
func (s *Server) workspaceExecuteCommand(context *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	if params.Command != commandInlayHints {
		return nil, fmt.Errorf("unknown command: %s", params.Command)
	}
	if len(params.Arguments) != 1 {
		return nil, fmt.Errorf("pyrefly.inlayHints expects exactly one argument (a document uri)")
	}
	uri, ok := params.Arguments[0].(string)
	if !ok {
		return nil, fmt.Errorf("pyrefly.inlayHints argument must be a document uri string")
	}

	h := s.handleForURI(protocol.DocumentUri(uri))
	text := s.documentText(protocol.DocumentUri(uri))

	var out []inlayHintResult
	err := s.withQueryTransaction(h, func(tx *analysis.Transaction) {
		for _, hint := range tx.InlayHints(h) {
			out = append(out, inlayHintResult{
				Position: offsetToPosition(text, hint.Offset),
				Label:    hint.Label,
			})
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type inlayHintResult struct {
	Position protocol.Position `json:"position"`
	Label    string            `json:"label"`
}
