// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth drives the authentication state machine.
//
// The controller moves between four states: anonymous, authenticating,
// authenticated, and failed. Screens subscribe to transitions instead
// of polling; the login flow and the logout key are the only writers.
// Registration is a separate operation that never changes the state,
// a new account still has to log in.
package auth
