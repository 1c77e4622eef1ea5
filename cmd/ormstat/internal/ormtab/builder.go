// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ormtab aggregates ORM timing samples and presents them as
// per-version comparison tables.
package ormtab

import (
	"sort"

	"github.com/ormperf/ormstat/internal/querylog"
	"github.com/ormperf/ormstat/ormlog"
)

// A Builder accumulates durations by metric key and version.
//
// Durations are kept in the order they were added. A key is present
// only if at least one sample referenced it.
type Builder struct {
	models map[string]*Series
	tables map[string]*Group
}

// A Series holds the durations of one metric key, by version.
type Series struct {
	byVersion map[string]*Durations
}

// Durations is an ordered list of durations in milliseconds.
type Durations struct {
	Values []float64
}

// A Group holds the series of one table, by operation.
type Group struct {
	// ops is the operations in order of first observation.
	ops  []ormlog.Op
	byOp map[ormlog.Op]*Series
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		models: make(map[string]*Series),
		tables: make(map[string]*Group),
	}
}

// Add adds the duration of s to the series for its key and version.
func (b *Builder) Add(s ormlog.Sample) {
	var series *Series
	switch k := s.Key.(type) {
	case ormlog.ModelKey:
		series = b.Model(k.Label)
	case ormlog.SQLKey:
		series = b.Table(k.Table).Op(k.Op)
	default:
		panic("ormtab: unknown key type")
	}
	d := series.Version(s.Version)
	d.Values = append(d.Values, s.Duration)
}

// Ingest offers rec's statement to queries if rec is raw SQL, then
// classifies rec and adds it to b. It reports whether rec was added;
// raw SQL of an unrecognized shape is not.
func (b *Builder) Ingest(rec *ormlog.Record, queries querylog.Recorder) (bool, error) {
	if rec.IsSQL() && queries != nil {
		if err := queries.Record(rec.Version, rec.Detail); err != nil {
			return false, err
		}
	}
	s, ok := rec.Sample()
	if !ok {
		return false, nil
	}
	b.Add(s)
	return true, nil
}

// Model returns the series for model label, creating it if
// necessary.
func (b *Builder) Model(label string) *Series {
	s, ok := b.models[label]
	if !ok {
		s = newSeries()
		b.models[label] = s
	}
	return s
}

// Table returns the group for table, creating it if necessary.
func (b *Builder) Table(table string) *Group {
	g, ok := b.tables[table]
	if !ok {
		g = &Group{byOp: make(map[ormlog.Op]*Series)}
		b.tables[table] = g
	}
	return g
}

// LookupModel returns the series for model label, or nil.
func (b *Builder) LookupModel(label string) *Series {
	return b.models[label]
}

// LookupTable returns the group for table, or nil.
func (b *Builder) LookupTable(table string) *Group {
	return b.tables[table]
}

// Models returns the model labels in b in ascending order.
func (b *Builder) Models() []string {
	return sortedKeys(b.models)
}

// Tables returns the table names in b in ascending order.
func (b *Builder) Tables() []string {
	return sortedKeys(b.tables)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge appends everything in o to b, as if o's samples had been
// added to b after b's own.
func (b *Builder) Merge(o *Builder) {
	for label, s := range o.models {
		b.Model(label).merge(s)
	}
	for table, og := range o.tables {
		g := b.Table(table)
		for _, op := range og.ops {
			g.Op(op).merge(og.byOp[op])
		}
	}
}

// Op returns the series for op, creating it if necessary.
func (g *Group) Op(op ormlog.Op) *Series {
	s, ok := g.byOp[op]
	if !ok {
		s = newSeries()
		g.byOp[op] = s
		g.ops = append(g.ops, op)
	}
	return s
}

// Ops returns the operations in g in order of first observation.
func (g *Group) Ops() []ormlog.Op {
	return g.ops
}

// LookupOp returns the series for op, or nil.
func (g *Group) LookupOp(op ormlog.Op) *Series {
	return g.byOp[op]
}

func newSeries() *Series {
	return &Series{byVersion: make(map[string]*Durations)}
}

// Version returns the durations for version, creating them if
// necessary.
func (s *Series) Version(version string) *Durations {
	d, ok := s.byVersion[version]
	if !ok {
		d = new(Durations)
		s.byVersion[version] = d
	}
	return d
}

// Values returns the durations for version, or nil if there are none.
func (s *Series) Values(version string) []float64 {
	if d, ok := s.byVersion[version]; ok {
		return d.Values
	}
	return nil
}

func (s *Series) merge(o *Series) {
	for version, od := range o.byVersion {
		d := s.Version(version)
		d.Values = append(d.Values, od.Values...)
	}
}
