package main

import "testing"

func TestRootCommandHasLspSubcommand(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "lsp" {
			found = true
			break
		}
	}
	if !found {
		t.Error("root command should have an 'lsp' subcommand")
	}
}

func TestRootCommandMetadata(t *testing.T) {
	if rootCmd.Use != "pyrefly" {
		t.Errorf("expected Use=%q, got %q", "pyrefly", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("root command should have a short description")
	}
}

func TestVerboseFlagRegistered(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("verbose")
	if f == nil {
		t.Fatal("verbose flag not registered")
	}
	if f.Shorthand != "v" {
		t.Errorf("verbose shorthand should be 'v', got %q", f.Shorthand)
	}
}
