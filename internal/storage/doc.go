// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for haven.
//
// A single SQLite database under the haven data directory holds two
// tables: a key-value table used by the session layer for the access
// token, and a message archive so past conversations survive restarts.
// SQLite supports one writer at a time, so the pool is capped at a
// single connection.
package storage
