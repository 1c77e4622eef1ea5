// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ormstat compares ORM query timings between application versions.
//
// Usage:
//
//	ormstat [flags] version=log [version=log ...]
//
// Each input is a development log from a Rails-style ORM, labeled with
// the version that produced it. Ormstat collects every line that
// carries a timing in milliseconds, such as
//
//	  User Load (0.8ms)  SELECT "users".* FROM "users" WHERE "users"."id" = $1
//	  SQL (2.0ms)  INSERT INTO "orders" ("amount") VALUES (6) RETURNING "id"
//
// and prints two tables that compare the versions side by side. The
// first has one row per model load label. The second has one group
// per table written by raw SQL statements, with one row per
// operation: insert, delete, update or select. For every version each
// row shows the sample count, minimum, maximum, mean, median and
// sample standard deviation of the durations, or "-" where there is
// nothing to show. Raw SQL of any other shape, such as BEGIN, is not
// counted.
//
// An argument with no "=" is a bare version V and reads V.txt.
// Several inputs may carry the same version; versions are shown in
// order of first appearance. The path "-" reads standard input, paths
// ending in .gz or .zst are decompressed, and gs://bucket/object paths
// are read from Google Cloud Storage.
//
// Ormstat also writes every raw SQL statement of each version that
// has no bind placeholders ("$") to <version>-queries.txt in the query
// directory, one statement per line in log order. Running ormstat
// again replaces these files.
//
// The flags are:
//
//	-config file
//		read settings from a YAML, JSON, TOML or .env file
//		(default $ORMSTAT_CONFIG)
//	-format text|csv|json|html
//		report format (default text)
//	-queries dir
//		directory for query files; empty disables them (default ".")
//	-j n
//		read up to n inputs concurrently (default 1)
//	-chart file
//		also draw a bar chart of medians to file (.svg, .png, .pdf)
//	-v level
//		diagnostic log level (default warn)
//
// Every setting may also be given in the environment as
// ORMSTAT_QUERY_DIR, ORMSTAT_FORMAT, ORMSTAT_JOBS, ORMSTAT_CHART and
// ORMSTAT_LOG_LEVEL. Flags override the environment, which overrides
// the config file.
//
// Ormstat exits with status 2 for usage errors and 1 if any input
// cannot be read, in which case it prints no report.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/ormperf/ormstat/cmd/ormstat/internal/ormtab"
	"github.com/ormperf/ormstat/internal/config"
	"github.com/ormperf/ormstat/internal/querylog"
	"github.com/ormperf/ormstat/ormlog"
	"github.com/sirupsen/logrus"
)

var exit = os.Exit // replaced during testing

func main() {
	log.SetPrefix("ormstat: ")
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := ormstat(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if errors.Is(err, flag.ErrHelp) {
		exit(2)
	} else if err != nil {
		log.Print(err)
		var uerr *usageError
		if errors.As(err, &uerr) {
			exit(2)
		}
		exit(1)
	}
}

// A usageError reports bad command-line arguments or settings.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func ormstat(ctx context.Context, w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("ormstat", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: ormstat [flags] version=log [version=log ...]\n")
		flags.PrintDefaults()
	}
	flagConfig := flags.String("config", os.Getenv("ORMSTAT_CONFIG"), "read settings from `file`")
	flagFormat := flags.String("format", "", "report `format`: "+strings.Join(config.Formats, ", "))
	flagQueries := flags.String("queries", "", "write query files to `dir`; empty disables them")
	flagJobs := flags.Int("j", 0, "read up to `n` inputs concurrently")
	flagChart := flags.String("chart", "", "draw a chart of medians to `file`")
	flagLevel := flags.String("v", "", "diagnostic log `level`")
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return &usageError{err}
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		return &usageError{err}
	}
	// Only flags given explicitly override the loaded settings.
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *flagFormat
		case "queries":
			cfg.QueryDir = *flagQueries
		case "j":
			cfg.Jobs = *flagJobs
		case "chart":
			cfg.Chart = *flagChart
		case "v":
			cfg.LogLevel = *flagLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return &usageError{err}
	}
	logger := newLogger(wErr, cfg.LogLevel)

	inputs, err := ormlog.ParseInputs(flags.Args())
	if err != nil {
		return &usageError{err}
	}
	versions := ormlog.Versions(inputs)
	if len(versions) < 2 {
		flags.Usage()
		return &usageError{fmt.Errorf("need inputs for at least two versions, got %d", len(versions))}
	}

	g := &ingester{
		log:     logger,
		queries: querylog.NewWriter(cfg.QueryDir),
		jobs:    cfg.Jobs,
	}
	b, err := g.run(ctx, inputs)
	if err != nil {
		return err
	}

	report := b.ToReport(versions)
	var buf bytes.Buffer
	if err := renderers[cfg.Format](report, &buf); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}

	if cfg.Chart != "" {
		if err := report.Chart(cfg.Chart); err != nil {
			return err
		}
		logger.Infof("wrote %s", cfg.Chart)
	}
	return nil
}

// renderers maps each of config.Formats to its report renderer.
var renderers = map[string]func(*ormtab.Report, io.Writer) error{
	"text": (*ormtab.Report).ToText,
	"csv":  (*ormtab.Report).ToCSV,
	"json": (*ormtab.Report).ToJSON,
	"html": (*ormtab.Report).ToHTML,
}

// newLogger returns a logger that writes to w at the named level.
// An unknown level selects info.
func newLogger(w io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		l.SetLevel(logrus.InfoLevel)
		l.Warnf("unknown log level %q, using info", level)
		return l
	}
	l.SetLevel(lvl)
	return l
}
