// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chart

import (
	"github.com/jeranaias/haven-tui/internal/model"
)

// SeriesTitle heads every trend chart.
const SeriesTitle = "Sentiment Confidence"

// Renderer draws one chart instance. Instances are single-use: a
// renderer is built around one dataset, renders any number of times,
// and is destroyed when the dataset changes. Render after Destroy
// returns the empty string.
type Renderer interface {
	Render(width int) string
	Destroy()
}

// Factory builds a renderer for a dataset.
type Factory func(points []model.PlotPoint, height int) Renderer

// =============================================================================
// ADAPTER
// =============================================================================

// Adapter owns the live renderer. SetData destroys the previous
// instance before creating the next, never the other way around, so
// at most one instance exists at a time.
type Adapter struct {
	factory  Factory
	height   int
	current  Renderer
	creates  int
	destroys int
}

// NewAdapter creates an adapter with the given factory.
func NewAdapter(factory Factory, height int) *Adapter {
	return &Adapter{factory: factory, height: height}
}

// SetData replaces the dataset. The old renderer is destroyed first,
// then a fresh one is created for the new points. An empty series is a
// no-op: the prior chart, if any, stays up.
func (a *Adapter) SetData(points []model.PlotPoint) {
	if len(points) == 0 {
		return
	}
	if a.current != nil {
		a.current.Destroy()
		a.destroys++
	}
	a.current = a.factory(points, a.height)
	a.creates++
}

// Render draws the current chart, or nothing when no dataset has been
// set.
func (a *Adapter) Render(width int) string {
	if a.current == nil {
		return ""
	}
	return a.current.Render(width)
}

// Teardown destroys the live renderer, typically when the chart panel
// closes or the session ends.
func (a *Adapter) Teardown() {
	if a.current == nil {
		return
	}
	a.current.Destroy()
	a.destroys++
	a.current = nil
}

// Creates returns how many renderer instances have been created.
func (a *Adapter) Creates() int { return a.creates }

// Destroys returns how many renderer instances have been destroyed.
func (a *Adapter) Destroys() int { return a.destroys }

// Live reports whether a renderer instance currently exists.
func (a *Adapter) Live() bool { return a.current != nil }

// Height returns the configured chart height in rows.
func (a *Adapter) Height() int { return a.height }

// SetHeight changes the height used for renderers created from now
// on. A live renderer keeps its size until the next SetData.
func (a *Adapter) SetHeight(height int) { a.height = height }
