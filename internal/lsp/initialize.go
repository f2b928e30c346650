package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/brianjo/pyrefly/internal/module"
)

func (s *Server) initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.Capabilities.Workspace != nil && params.Capabilities.Workspace.Configuration != nil {
		s.clientSupportsConfiguration = *params.Capabilities.Workspace.Configuration
	}

	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = protocol.TextDocumentSyncKindFull
	capabilities.DefinitionProvider = true
	capabilities.HoverProvider = true
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"."},
	}
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{commandInlayHints},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &serverVersion,
		},
	}, nil
}

// initialized fetches the client's "pyrefly" settings section via a single
// unscoped workspace/configuration request, the one point in the session
// where the server asks the client for loader configuration (search paths,
// site-package paths) rather than reading it off disk itself — per
// module.LoaderConfig's doc comment, that's an external collaborator's job.
// Workspace folders are not queried individually.
func (s *Server) initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	if !s.clientSupportsConfiguration {
		return nil
	}
	s.refreshLoaderConfig(context, "")
	return nil
}

type pythonSettings struct {
	SearchPath      []string `json:"searchPath"`
	SitePackagePath []string `json:"sitePackagePath"`
}

// refreshLoaderConfig sends workspace/configuration scoped to folderURI (or
// unscoped, if folderURI is "") and rebuilds the shared LoaderID from the
// reply. A single LoaderID is shared across every Handle this server
// builds: true per-folder isolation would need one LoaderID per workspace
// folder, keyed by folder URI, which this server does not yet track
// separately.
func (s *Server) refreshLoaderConfig(context *glsp.Context, folderURI string) {
	section := "pyrefly"
	item := protocol.ConfigurationItem{Section: &section}
	if folderURI != "" {
		item.ScopeURI = &folderURI
	}

	var results []pythonSettings
	if err := context.Call(protocol.ServerWorkspaceConfiguration, protocol.ConfigurationParams{
		Items: []protocol.ConfigurationItem{item},
	}, &results); err != nil {
		s.log.Warningf("workspace/configuration request failed: %s", err)
		return
	}
	if len(results) == 0 {
		return
	}

	settings := results[0]
	s.setLoaderConfig(module.NewLoaderConfig(settings.SearchPath, settings.SitePackagePath))
}

func (s *Server) workspaceDidChangeConfiguration(context *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	s.refreshLoaderConfig(context, "")
	return nil
}
