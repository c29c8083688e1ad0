// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login implements the sign-in screen: username and password
// fields, login and registration submission, and result handling.
package login
