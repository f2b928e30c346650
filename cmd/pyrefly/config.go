package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brianjo/pyrefly/internal/module"
)

// fileConfig mirrors the subset of module.LoaderConfig's fields a project can
// set from a checked-in YAML file rather than repeating on every invocation.
// Field names and yaml tags match module.LoaderConfig's own tags exactly, so
// the two stay in sync by construction.
type fileConfig struct {
	SearchRoots     []string `yaml:"search_path"`
	SitePackagePath []string `yaml:"site_package_path"`
	RejectUntyped   bool     `yaml:"use_untyped_imports"`
}

// loadConfigFile reads and parses a pyrefly project config file. A missing
// path is not an error: the CLI falls back to flags/environment alone.
func loadConfigFile(path string) (*fileConfig, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}

// resolveLoaderConfig builds the effective LoaderConfig for a run: explicit
// CLI flags win, then the PYREFLY_SEARCH_PATH/PYREFLY_SITE_PACKAGE_PATH
// environment variables, then the project config file. searchPath and
// sitePackagePath are the flag-parsed values (possibly empty); configPath is
// the --config flag's value.
func resolveLoaderConfig(configPath string, searchPath, sitePackagePath []string) (*module.LoaderConfig, error) {
	file, err := loadConfigFile(configPath)
	if err != nil {
		return nil, err
	}

	roots := searchPath
	if len(roots) == 0 {
		roots = resolvePaths(nil, "PYREFLY_SEARCH_PATH")
	}
	if len(roots) == 0 {
		roots = file.SearchRoots
	}

	sites := sitePackagePath
	if len(sites) == 0 {
		sites = resolvePaths(nil, "PYREFLY_SITE_PACKAGE_PATH")
	}
	if len(sites) == 0 {
		sites = file.SitePackagePath
	}

	cfg := module.NewLoaderConfig(roots, sites)
	cfg.RejectUntyped = file.RejectUntyped
	return cfg, nil
}
