// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chart renders the mood trend as a terminal line chart.
//
// Renderer instances are single-use: each dataset gets a fresh
// instance, and the previous one is destroyed before its replacement
// is created. The Adapter enforces that ordering and tracks the
// create and destroy counts so leaks are observable.
package chart
