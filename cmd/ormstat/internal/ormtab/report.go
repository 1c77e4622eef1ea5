// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ormtab

import (
	"github.com/ormperf/ormstat/ormlog"
	"github.com/ormperf/ormstat/ormmath"
)

// A Report is the summarized form of a Builder, ready for rendering.
type Report struct {
	// Versions is the column order of every row.
	Versions []string

	// Models has one row per model label, in ascending order.
	Models []*Row

	// Groups has one group per table, in ascending order.
	Groups []*RowGroup
}

// A Row summarizes one metric key across versions.
type Row struct {
	Key ormlog.Key

	// Summaries has one entry per Report.Versions. An entry is
	// nil if there were no samples for that version.
	Summaries []*ormmath.Summary
}

// A RowGroup holds the rows of one table, one per operation in order
// of first observation.
type RowGroup struct {
	Table string
	Rows  []*Row
}

// Label returns the display label of r within its table.
func (r *Row) Label() string {
	switch k := r.Key.(type) {
	case ormlog.ModelKey:
		return k.Label
	case ormlog.SQLKey:
		return k.Op.String()
	}
	panic("ormtab: unknown key type")
}

// ToReport summarizes every series in b for the given versions.
func (b *Builder) ToReport(versions []string) *Report {
	r := &Report{Versions: versions}
	for _, label := range b.Models() {
		r.Models = append(r.Models, newRow(ormlog.ModelKey{Label: label}, b.models[label], versions))
	}
	for _, table := range b.Tables() {
		g := b.tables[table]
		rg := &RowGroup{Table: table}
		for _, op := range g.ops {
			rg.Rows = append(rg.Rows, newRow(ormlog.SQLKey{Table: table, Op: op}, g.byOp[op], versions))
		}
		r.Groups = append(r.Groups, rg)
	}
	return r
}

func newRow(key ormlog.Key, s *Series, versions []string) *Row {
	row := &Row{Key: key, Summaries: make([]*ormmath.Summary, len(versions))}
	for i, v := range versions {
		if values := s.Values(v); len(values) > 0 {
			row.Summaries[i] = ormmath.Summarize(values)
		}
	}
	return row
}

// Rows returns every row of r, models first.
func (r *Report) Rows() []*Row {
	rows := append([]*Row(nil), r.Models...)
	for _, g := range r.Groups {
		rows = append(rows, g.Rows...)
	}
	return rows
}
