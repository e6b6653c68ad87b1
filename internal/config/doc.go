// Package config loads, normalizes, and validates gedcompare configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the GEDCOMPARE_DATA_DIR environment fallback. Files
// are looked up at the --config path, then ~/.config/gedcompare/config.toml,
// then ./gedcompare.toml.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical encoding names, and clear validation errors.
package config
