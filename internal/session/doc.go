// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the access token for the lifetime of the
// process. The token lives in one place only: protected screens read
// it from here, and the login flow writes it here. At rest the token
// is sealed with AES-256-GCM under a key derived from a local secret
// file, so a copied database does not leak the credential.
package session
