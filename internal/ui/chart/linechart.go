// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chart

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/haven-tui/internal/model"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
	"github.com/jeranaias/haven-tui/internal/util"
)

// =============================================================================
// LINE CHART
// =============================================================================

// LineChart plots signed confidence over time. The y domain is fixed
// at [-1, 1] regardless of the data, so charts from different
// sessions compare visually.
type LineChart struct {
	points    []model.PlotPoint
	height    int
	destroyed bool
}

// NewLineChart builds a chart for the given series. Implements
// Factory.
func NewLineChart(points []model.PlotPoint, height int) Renderer {
	if height < 4 {
		height = 4
	}
	return &LineChart{
		points: append([]model.PlotPoint(nil), points...),
		height: height,
	}
}

// Destroy releases the dataset. The chart renders nothing afterwards.
func (c *LineChart) Destroy() {
	c.points = nil
	c.destroyed = true
}

// yAxisWidth fits labels like "-1.0 ".
const yAxisWidth = 5

// Render draws the chart at the given total width.
func (c *LineChart) Render(width int) string {
	if c.destroyed {
		return ""
	}
	if width < yAxisWidth+8 {
		width = yAxisWidth + 8
	}

	var b strings.Builder
	b.WriteString(styles.ChartTitle.Render(SeriesTitle))
	b.WriteString("\n")

	if len(c.points) == 0 {
		b.WriteString(styles.Muted.Render("No mood data yet. Start chatting to build your trend."))
		return b.String()
	}

	plotWidth := width - yAxisWidth
	grid := c.plot(plotWidth)

	for row := 0; row < c.height; row++ {
		b.WriteString(styles.ChartAxis.Render(c.yLabel(row)))
		b.WriteString(grid[row])
		b.WriteString("\n")
	}

	b.WriteString(styles.ChartAxis.Render(strings.Repeat(" ", yAxisWidth) + strings.Repeat("─", plotWidth)))
	b.WriteString("\n")
	b.WriteString(c.xLabels(plotWidth))

	return b.String()
}

// yLabel returns the axis label for a grid row: 1.0 at the top, 0.0
// at the midline, -1.0 at the bottom.
func (c *LineChart) yLabel(row int) string {
	var label string
	switch row {
	case 0:
		label = " 1.0"
	case c.height - 1:
		label = "-1.0"
	case c.midRow():
		label = " 0.0"
	}
	return util.PadRight(label, yAxisWidth)
}

func (c *LineChart) midRow() int {
	return (c.height - 1) / 2
}

// rowFor maps a value in [-1, 1] to a grid row.
func (c *LineChart) rowFor(value float64) int {
	clamped := math.Max(-1, math.Min(1, value))
	row := int(math.Round((1 - clamped) / 2 * float64(c.height-1)))
	if row < 0 {
		row = 0
	}
	if row > c.height-1 {
		row = c.height - 1
	}
	return row
}

// plot rasterizes the series into height rows of plotWidth cells.
func (c *LineChart) plot(plotWidth int) []string {
	type cell struct {
		ch       rune
		positive bool
		marker   bool
	}
	cells := make([][]cell, c.height)
	for i := range cells {
		cells[i] = make([]cell, plotWidth)
		for j := range cells[i] {
			cells[i][j] = cell{ch: ' '}
		}
	}

	// Baseline at 0
	mid := c.midRow()
	for j := 0; j < plotWidth; j++ {
		cells[mid][j] = cell{ch: '·'}
	}

	// Column position for point i
	colFor := func(i int) int {
		if len(c.points) == 1 {
			return plotWidth / 2
		}
		return i * (plotWidth - 1) / (len(c.points) - 1)
	}

	// Connect consecutive points with vertical runs
	for i := 1; i < len(c.points); i++ {
		fromRow := c.rowFor(c.points[i-1].Value)
		toRow := c.rowFor(c.points[i].Value)
		col := colFor(i)
		lo, hi := fromRow, toRow
		if lo > hi {
			lo, hi = hi, lo
		}
		for row := lo; row <= hi; row++ {
			if !cells[row][col].marker {
				cells[row][col] = cell{ch: '│', positive: c.points[i].Value >= 0}
			}
		}
	}

	// Markers drawn last so they win over connectors
	for i, p := range c.points {
		row := c.rowFor(p.Value)
		col := colFor(i)
		cells[row][col] = cell{ch: '●', positive: p.Value >= 0, marker: true}
	}

	rows := make([]string, c.height)
	for i := range cells {
		var row strings.Builder
		for _, cl := range cells[i] {
			switch {
			case cl.ch == ' ':
				row.WriteRune(' ')
			case cl.ch == '·':
				row.WriteString(styles.ChartAxis.Render("·"))
			case cl.positive:
				row.WriteString(styles.ChartPositive.Render(string(cl.ch)))
			default:
				row.WriteString(styles.ChartNegative.Render(string(cl.ch)))
			}
		}
		rows[i] = row.String()
	}
	return rows
}

// xLabels renders the first and last date under the axis.
func (c *LineChart) xLabels(plotWidth int) string {
	first := c.points[0].Label
	last := c.points[len(c.points)-1].Label

	line := strings.Repeat(" ", yAxisWidth)
	if len(c.points) == 1 || first == last {
		return styles.ChartAxis.Render(line + first)
	}

	gap := plotWidth - runewidth.StringWidth(first) - runewidth.StringWidth(last)
	if gap < 1 {
		gap = 1
	}
	return styles.ChartAxis.Render(line + first + strings.Repeat(" ", gap) + last)
}

// Summary renders a one-line recap shown under the chart.
func Summary(points []model.MoodPoint) string {
	if len(points) == 0 {
		return ""
	}
	positive := 0
	sum := 0.0
	for _, p := range points {
		if p.Sentiment == model.SentimentPositive {
			positive++
		}
		sum += p.SignedConfidence()
	}
	total := len(points)
	return styles.Muted.Render(
		util.IntToString(total) + " entries · " +
			util.PercentString(float64(positive)/float64(total)) + " positive · avg " +
			util.FloatToStringPrec(sum/float64(total), 2))
}
