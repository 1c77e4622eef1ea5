// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ormtab

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	chartBarWidth = 8
	chartGap      = 12
)

// Chart draws a grouped bar chart of the median duration of every
// metric key, one bar per version, and saves it to path. The image
// format is chosen by path's extension, as for plot.Plot.Save.
// Versions with no samples for a key have no bar.
func (r *Report) Chart(path string) error {
	rows := r.Rows()
	if len(rows) == 0 {
		return fmt.Errorf("chart %s: no data", path)
	}

	p := plot.New()
	p.Title.Text = "Median duration by key"
	p.Y.Label.Text = "median (ms)"
	p.X.Tick.Label.Rotation = math.Pi / 4

	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Key.String()
	}

	nv := len(r.Versions)
	width := vg.Points(chartBarWidth)
	for j, version := range r.Versions {
		values := make(plotter.Values, len(rows))
		for i, row := range rows {
			if s := row.Summaries[j]; s != nil {
				values[i] = s.Median
			}
		}
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return fmt.Errorf("chart %s: %w", path, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(j)
		// Center the group of bars on each tick.
		bars.Offset = width * vg.Length(2*j-nv+1) / 2
		p.Add(bars)
		p.Legend.Add(version, bars)
	}
	p.Legend.Top = true
	p.NominalX(names...)

	w := vg.Points(float64(len(rows)*(nv*chartBarWidth+chartGap) + 120))
	if err := p.Save(w, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("chart %s: %w", path, err)
	}
	return nil
}
