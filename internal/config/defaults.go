// Package config provides centralized configuration defaults for jejemonly.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFile represents the structure of config.toml
type ConfigFile struct {
	Defaults Defaults `toml:"defaults"`
}

// Defaults holds all default values
type Defaults struct {
	LexiconDir     string  `toml:"lexicon_dir"`
	FuzzyThreshold float64 `toml:"fuzzy_threshold"`
	MaxSuggestDist int     `toml:"max_suggest_distance"`
	FoldASCII      bool    `toml:"fold_ascii"`
	JSON           bool    `toml:"json"`
	Confidence     bool    `toml:"confidence"`
	Trace          bool    `toml:"trace"`
	Quiet          bool    `toml:"quiet"`
	Verbose        bool    `toml:"verbose"`
	Metrics        bool    `toml:"metrics"`
}

// Hardcoded fallback defaults (used if config.toml not found)
var fallbackDefaults = Defaults{
	LexiconDir:     "lexicon",
	FuzzyThreshold: 0.6,
	MaxSuggestDist: 2,
	FoldASCII:      false,
	JSON:           false,
	Confidence:     false,
	Trace:          false,
	Quiet:          false,
	Verbose:        false,
	Metrics:        true,
}

// loaded holds the parsed config (nil if not loaded yet)
var loaded *ConfigFile

// Load reads config.toml from the project root
func Load() *ConfigFile {
	if loaded != nil {
		return loaded
	}

	// Try to find config.toml by walking up from executable or cwd
	paths := []string{
		"config.toml",
		"../config.toml",
		"../../config.toml",
	}

	// Also try from executable location
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(dir, "config.toml"),
			filepath.Join(dir, "..", "config.toml"),
			filepath.Join(dir, "..", "..", "config.toml"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			var cfg ConfigFile
			if _, err := toml.DecodeFile(path, &cfg); err == nil {
				loaded = &cfg
				return loaded
			}
		}
	}

	// Return fallback if config.toml not found
	loaded = &ConfigFile{Defaults: fallbackDefaults}
	return loaded
}

// Convenience accessors that load config on first access
var (
	DefaultLexiconDir     = func() string { return Load().Defaults.LexiconDir }
	DefaultFuzzyThreshold = func() float64 { return Load().Defaults.FuzzyThreshold }
	DefaultMaxSuggestDist = func() int { return Load().Defaults.MaxSuggestDist }
	DefaultFoldASCII      = func() bool { return Load().Defaults.FoldASCII }
	DefaultJSON           = func() bool { return Load().Defaults.JSON }
	DefaultConfidence     = func() bool { return Load().Defaults.Confidence }
	DefaultTrace          = func() bool { return Load().Defaults.Trace }
	DefaultQuiet          = func() bool { return Load().Defaults.Quiet }
	DefaultVerbose        = func() bool { return Load().Defaults.Verbose }
	DefaultMetrics        = func() bool { return Load().Defaults.Metrics }
)
