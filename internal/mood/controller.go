// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mood

import (
	"sync"

	"github.com/jeranaias/haven-tui/internal/model"
)

// Controller owns the fetched sentiment history.
type Controller struct {
	mu     sync.RWMutex
	points []model.MoodPoint
	loaded bool
}

// NewController creates an empty controller. NeedsFetch is true until
// the first Replace.
func NewController() *Controller {
	return &Controller{}
}

// NeedsFetch reports whether the history has not been loaded this
// session. The root model checks it on the authenticated transition
// so the trend is fetched exactly once per login.
func (c *Controller) NeedsFetch() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.loaded
}

// Replace swaps in a freshly fetched history. The previous points are
// discarded entirely, never merged.
func (c *Controller) Replace(points []model.MoodPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points = append([]model.MoodPoint(nil), points...)
	c.loaded = true
}

// Reset drops the history, typically on logout, so the next login
// fetches again.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points = nil
	c.loaded = false
}

// Points returns a snapshot of the history, oldest first.
func (c *Controller) Points() []model.MoodPoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.MoodPoint(nil), c.points...)
}

// PlotPoints returns the chart-ready series derived from the history.
func (c *Controller) PlotPoints() []model.PlotPoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.DerivePlotPoints(c.points)
}

// Latest returns the most recent point, if any.
func (c *Controller) Latest() (model.MoodPoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.points) == 0 {
		return model.MoodPoint{}, false
	}
	return c.points[len(c.points)-1], true
}

// Len returns the number of points held.
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.points)
}

// CountBySentiment tallies points carrying the given label.
func (c *Controller) CountBySentiment(s model.Sentiment) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	for _, p := range c.points {
		if p.Sentiment == s {
			count++
		}
	}
	return count
}
