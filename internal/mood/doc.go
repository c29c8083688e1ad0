// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mood holds the sentiment history behind the trend chart.
//
// The history is fetched once per login and replaced wholesale on
// each refresh; points from a previous session never mix with the
// current one. The chart consumes the derived plot points, not the
// raw history.
package mood
