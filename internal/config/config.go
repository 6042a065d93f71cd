// Package config loads persisted CLI defaults for dumptriage. It never
// feeds the core pipeline directly; the CLI wrapper reads it to seed flag
// defaults, and flags always take precedence over a persisted value.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Config holds user-configurable defaults for the extraction budget. Every
// field mirrors a builder.BuildOptions field. A field missing from the file
// keeps its built-in default, so an empty JSON object is harmless; a field
// set explicitly to zero is passed to the CLI as a zero flag default.
type Config struct {
	MaxStringsToCapture int `json:"max_strings_to_capture"`
	MaxStringLength     int `json:"max_string_length"`
	HeapStringLimit     int `json:"heap_string_limit"`
	HeapHistogramCount  int `json:"heap_histogram_count"`
	MaxStackFrames      int `json:"max_stack_frames"`
	TopStackThreads     int `json:"top_stack_threads"`
}

// Default returns the built-in defaults used when no config file exists.
func Default() Config {
	return Config{
		MaxStringsToCapture: 200,
		MaxStringLength:     2048,
		HeapStringLimit:     0,
		HeapHistogramCount:  20,
		MaxStackFrames:      30,
		TopStackThreads:     5,
	}
}

// Path returns ~/.config/dumptriage/config.json (or $XDG_CONFIG_HOME).
// Returns "" if the home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "" // refuse to fall back to /tmp
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "dumptriage", "config.json")
}

// Load reads the persisted config, falling back to Default on any error
// (missing file, unreadable home directory, malformed JSON).
func Load() Config {
	cfg := Default()
	p := Path()
	if p == "" {
		return cfg
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("dumptriage: warning: config parse error: %v", err)
		return Default()
	}
	return cfg
}

// Save persists cfg to Path, creating the parent directory as needed.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
