package cbor

import (
	gosettings "github.com/bnclabs/gosettings"
)

// Settings is the free-form, string-keyed configuration map the teacher's
// transport and tag factories are seeded from (settings.go, defaults.go:
// DefaultSettings(start, end) Settings). This module reuses
// gosettings.Settings directly rather than redeclaring an equivalent map
// type, and adds the keys OptionsFromSettings understands alongside the
// ones golog.SetLogger already reads ("log.level", "log.file").
type Settings = gosettings.Settings

// DefaultSettings returns the configuration gofast-style callers normally
// start from: canonical output, strict (duplicate-rejecting) map keys, and
// error-level logging.
func DefaultSettings() Settings {
	return Settings{
		"canonical":   true,
		"strict-keys": true,
		"max-depth":   1000,
		"max-length":  64 << 20, // 64MiB ceiling on a single length-prefixed read
		"log.level":   "error",
		"log.file":    "",
	}
}

// OptionsFromSettings builds an *Options from a Settings map, the way the
// teacher builds a *Transport from a Settings map in NewTransport. Keys not
// present fall back to DefaultOptions()'s values.
func OptionsFromSettings(s Settings) *Options {
	opts := DefaultOptions()
	if v, ok := s["canonical"].(bool); ok {
		opts.Canonical = v
	}
	if v, ok := s["strict-keys"].(bool); ok {
		opts.StrictKeys = v
	}
	if v, ok := s["max-depth"].(int); ok {
		opts.MaxDepth = v
	}
	switch v := s["max-length"].(type) {
	case int:
		opts.MaxLength = int64(v)
	case int64:
		opts.MaxLength = v
	}
	return opts
}
