// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// MOOD POINT TYPE
// =============================================================================

// MoodPoint is one historical sentiment event from the trend endpoint,
// carried verbatim: a timestamp, the sentiment label, and the confidence
// the analyzer assigned in [0,1].
type MoodPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"`
}

// SignedConfidence folds the sentiment label into the confidence value:
// +confidence for POSITIVE, -confidence for NEGATIVE. The result is in
// [-1,1] and exists purely so the trend fits a single plot axis.
func (p MoodPoint) SignedConfidence() float64 {
	if p.Sentiment == SentimentNegative {
		return -p.Confidence
	}
	return p.Confidence
}

// =============================================================================
// PLOT POINT TYPE
// =============================================================================

// PlotPoint is a plot-ready (label, value) pair derived from a MoodPoint.
type PlotPoint struct {
	Label string
	Value float64
}

// DateLabelLayout is the calendar-date format used for plot labels.
const DateLabelLayout = "2006-01-02"

// DerivePlotPoints maps a mood series to plot points, preserving order.
// The label is the point's calendar date; the value is the signed
// confidence.
func DerivePlotPoints(points []MoodPoint) []PlotPoint {
	out := make([]PlotPoint, 0, len(points))
	for _, p := range points {
		out = append(out, PlotPoint{
			Label: p.Timestamp.Format(DateLabelLayout),
			Value: p.SignedConfidence(),
		})
	}
	return out
}
