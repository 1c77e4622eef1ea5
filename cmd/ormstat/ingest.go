// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/ormperf/ormstat/cmd/ormstat/internal/ormtab"
	"github.com/ormperf/ormstat/internal/querylog"
	"github.com/ormperf/ormstat/ormlog"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// An ingester reads inputs into a Builder and writes each version's
// raw SQL to queries.
type ingester struct {
	log     *logrus.Logger
	queries *querylog.Writer
	jobs    int
}

// run reads every input and returns the filled Builder. Each
// version's query file is closed as soon as that version's last input
// has been read.
func (g *ingester) run(ctx context.Context, inputs []ormlog.Input) (*ormtab.Builder, error) {
	defer g.queries.CloseAll()

	var b *ormtab.Builder
	var err error
	if g.jobs > 1 && len(inputs) > 1 {
		b, err = g.parallel(ctx, inputs)
	} else {
		b, err = g.sequential(ctx, inputs)
	}
	if err != nil {
		return nil, err
	}
	if err := g.queries.CloseAll(); err != nil {
		return nil, err
	}
	return b, nil
}

// lastInputs maps each version to the index of its last input.
func lastInputs(inputs []ormlog.Input) map[string]int {
	last := make(map[string]int)
	for i, in := range inputs {
		last[in.Version] = i
	}
	return last
}

func (g *ingester) sequential(ctx context.Context, inputs []ormlog.Input) (*ormtab.Builder, error) {
	b := ormtab.NewBuilder()
	last := lastInputs(inputs)
	i := 0
	unclassified := 0
	f := &ormlog.Files{
		Inputs:     inputs,
		AllowStdin: true,
		Context:    ctx,
		Done: func(in ormlog.Input, r *ormlog.Reader) error {
			g.logInput(in, r, unclassified)
			unclassified = 0
			defer func() { i++ }()
			if last[in.Version] == i {
				return g.closeVersion(in.Version)
			}
			return nil
		},
	}
	defer f.Close()
	for f.Scan() {
		rec := f.Record()
		ok, err := b.Ingest(rec, g.queries)
		if err != nil {
			return nil, err
		}
		if !ok && rec.IsSQL() {
			unclassified++
			g.logUnclassified(rec)
		}
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

// A part is what one input contributes in a parallel run.
type part struct {
	b       *ormtab.Builder
	queries querylog.Buffer
}

// parallel reads up to g.jobs inputs at once, each into its own part,
// then merges the parts in input order. The merged Builder and the
// query files are the same as those of a sequential run.
func (g *ingester) parallel(ctx context.Context, inputs []ormlog.Input) (*ormtab.Builder, error) {
	parts := make([]*part, len(inputs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.jobs)
	for i, in := range inputs {
		i, in := i, in
		eg.Go(func() error {
			p := &part{b: ormtab.NewBuilder()}
			unclassified := 0
			f := &ormlog.Files{
				Inputs:     []ormlog.Input{in},
				AllowStdin: true,
				Context:    ctx,
				Done: func(in ormlog.Input, r *ormlog.Reader) error {
					g.logInput(in, r, unclassified)
					return nil
				},
			}
			defer f.Close()
			for f.Scan() {
				rec := f.Record()
				ok, err := p.b.Ingest(rec, &p.queries)
				if err != nil {
					return err
				}
				if !ok && rec.IsSQL() {
					unclassified++
					g.logUnclassified(rec)
				}
			}
			if err := f.Err(); err != nil {
				return err
			}
			parts[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	b := ormtab.NewBuilder()
	last := lastInputs(inputs)
	for i, p := range parts {
		b.Merge(p.b)
		if err := p.queries.ReplayTo(g.queries); err != nil {
			return nil, err
		}
		if v := inputs[i].Version; last[v] == i {
			if err := g.closeVersion(v); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

func (g *ingester) closeVersion(version string) error {
	if !g.queries.Enabled() {
		return nil
	}
	if err := g.queries.Close(version); err != nil {
		return fmt.Errorf("query log for %s: %w", version, err)
	}
	g.log.WithField("version", version).Infof("wrote %s", g.queries.Path(version))
	return nil
}

func (g *ingester) logInput(in ormlog.Input, r *ormlog.Reader, unclassified int) {
	g.log.WithFields(logrus.Fields{
		"version":      in.Version,
		"lines":        r.Lines,
		"skipped":      r.Skipped,
		"unclassified": unclassified,
	}).Infof("read %s", in.Path)
}

func (g *ingester) logUnclassified(rec *ormlog.Record) {
	if !g.log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	file, line := rec.Pos()
	g.log.WithField("version", rec.Version).Debugf("%s:%d: unclassified SQL: %s", file, line, rec.Detail)
}
