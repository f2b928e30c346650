package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	glsp_server "github.com/tliron/glsp/server"

	"github.com/brianjo/pyrefly/internal/analysis"
	"github.com/brianjo/pyrefly/internal/lsp"
	"github.com/brianjo/pyrefly/internal/module"
)

const serverName = "pyrefly"

var (
	searchPath      []string
	sitePackagePath []string
	pythonVersion   string
	configPath      string
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Start the language server over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		logLevel := 1
		if verbose {
			logLevel = 3
		}
		commonlog.Configure(logLevel, nil)

		cfg, err := resolveLoaderConfig(configPath, searchPath, sitePackagePath)
		if err != nil {
			return err
		}
		runtime, err := parseRuntimeMetadata(pythonVersion)
		if err != nil {
			return err
		}

		state := analysis.NewAnalysisState(stubCompiler{}, diskSourceLoader{})
		server := lsp.NewServer(state, runtime)
		server.SetInitialLoaderConfig(cfg)

		glspServer := glsp_server.NewServer(server, serverName, false)
		return glspServer.RunStdio()
	},
}

func init() {
	lspCmd.Flags().StringArrayVar(&searchPath, "search-path", nil, "directory to search for first-party modules (repeatable)")
	lspCmd.Flags().StringArrayVar(&sitePackagePath, "site-package-path", nil, "directory to search for third-party packages (repeatable)")
	lspCmd.Flags().StringVar(&pythonVersion, "python-version", "3.12.0", "target Python version, as major.minor.micro")
	lspCmd.Flags().StringVar(&configPath, "config", "pyrefly.yaml", "project config file (search_path, site_package_path, use_untyped_imports)")
	rootCmd.AddCommand(lspCmd)
}

// resolvePaths prefers repeatable CLI flags over the matching environment
// variable, which is split on the platform's path list separator —
// PYREFLY_SEARCH_PATH/PYREFLY_SITE_PACKAGE_PATH are how an editor extension
// that doesn't speak workspace/configuration can still configure search
// roots at process startup.
func resolvePaths(flagValues []string, envVar string) []string {
	if len(flagValues) > 0 {
		return flagValues
	}
	if raw := os.Getenv(envVar); raw != "" {
		return strings.Split(raw, string(os.PathListSeparator))
	}
	return nil
}

func parseRuntimeMetadata(version string) (module.RuntimeMetadata, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return module.RuntimeMetadata{}, fmt.Errorf("--python-version must be major.minor.micro, got %q", version)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return module.RuntimeMetadata{}, fmt.Errorf("--python-version must be major.minor.micro, got %q", version)
		}
		nums[i] = n
	}
	return module.RuntimeMetadata{PythonVersion: nums, Platform: platformName()}, nil
}
