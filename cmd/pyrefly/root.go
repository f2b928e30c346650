package main

import (
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "pyrefly",
	Short:   "An incremental type checker and language server for a gradually-typed scripting language",
	Long: "pyrefly checks a project's modules incrementally, caching each module's\n" +
		"checked artifact and recomputing only what a change invalidates. Run\n" +
		"without a subcommand's help text via 'pyrefly lsp' to start the language\n" +
		"server over stdio.",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
