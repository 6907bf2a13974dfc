// Package config loads, validates, and normalizes photoforge configuration.
//
// Configuration lives in a TOML file (default ~/.config/photoforge/config.toml,
// falling back to ./photoforge.toml). Values decode over repository defaults,
// then path fields are tilde-expanded and the result validated. Commands load
// config exactly once through the CLI command context.
package config
