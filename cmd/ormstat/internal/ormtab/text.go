// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ormtab

import (
	"fmt"
	"io"

	"github.com/ormperf/ormstat/cmd/ormstat/internal/texttab"
	"github.com/ormperf/ormstat/ormmath"
)

const (
	modelTitle = "Performance Report by Model load"
	sqlTitle   = "Performance Report by Raw SQL"

	// Minimum widths of the label and value columns.
	modelLabelWidth = 5
	sqlLabelWidth   = 11
	valueWidth      = 5

	groupMargin = " │ "
)

// ToText renders r as two fixed-width tables: durations by model,
// then durations by table and operation.
func (r *Report) ToText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", modelTitle); err != nil {
		return err
	}
	o := r.textHeader("Model", modelLabelWidth)
	for _, row := range r.Models {
		o.Row().Cell(row.Label())
		r.textValues(o, row)
	}
	o.Rule('=')
	if err := o.Format(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", sqlTitle); err != nil {
		return err
	}
	o = r.textHeader("Table", sqlLabelWidth)
	nv := len(r.Versions)
	for _, g := range r.Groups {
		o.Row().Cell(g.Table + ":")
		// Carry the group separators through the table's
		// heading row.
		for i := range ormmath.Stats {
			o.Col(1+i*nv).Cell("", texttab.LeftMargin(groupMargin))
		}
		for _, row := range g.Rows {
			o.Row().Cell("  - " + row.Label())
			r.textValues(o, row)
		}
	}
	o.Rule('=')
	return o.Format(w)
}

// textHeader starts a table with a column group per statistic and a
// column per version within each group.
func (r *Report) textHeader(label string, labelWidth int) *texttab.Table {
	o := new(texttab.Table)
	nv := len(r.Versions)

	o.SetMinWidth(0, labelWidth)
	for col := 1; col <= len(ormmath.Stats)*nv; col++ {
		o.SetMinWidth(col, valueWidth)
	}

	o.Rule('=')
	o.Row()
	for i, st := range ormmath.Stats {
		o.Col(1+i*nv).Span(nv, st.String(), texttab.Center, texttab.LeftMargin(groupMargin))
	}
	o.Row().Cell(label)
	for range ormmath.Stats {
		for j, v := range r.Versions {
			o.Cell(v, texttab.Right, versionMargin(j))
		}
	}
	o.Rule('-')
	return o
}

func (r *Report) textValues(o *texttab.Table, row *Row) {
	for _, st := range ormmath.Stats {
		for j, s := range row.Summaries {
			o.Cell(s.Format(st), texttab.Right, versionMargin(j))
		}
	}
}

func versionMargin(j int) texttab.CellOption {
	if j == 0 {
		return texttab.LeftMargin(groupMargin)
	}
	return texttab.LeftMargin(" ")
}
