// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for haven.
//
// Settings are read from a TOML file with sensible defaults, environment
// variable overrides, and field-level validation.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (HAVEN_*)
//   - ~/.haven/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A Watcher can be attached to reload the global config when the file
// changes on disk.
package config
