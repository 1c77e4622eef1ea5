// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package querylog writes the raw SQL statements seen in each version's
// logs to a per-version side file, so they can be replayed or
// inspected later.
package querylog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// A Recorder accepts raw SQL statement text for a version.
type Recorder interface {
	Record(version, detail string) error
}

// Excluded reports whether detail contains an unbound parameter
// placeholder and should not be recorded.
func Excluded(detail string) bool {
	return strings.Contains(detail, "$")
}

// Path returns the side file for version in dir.
func Path(dir, version string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, version)
	return filepath.Join(dir, name+"-queries.txt")
}

// A Writer appends statements to one file per version. Each file is
// truncated when it is first opened during a run.
//
// A Writer with an empty directory records nothing.
type Writer struct {
	dir   string
	sinks map[string]*sink
	done  map[string]bool
}

type sink struct {
	f *os.File
	w *bufio.Writer
}

// NewWriter returns a Writer that creates its files in dir.
func NewWriter(dir string) *Writer {
	return &Writer{
		dir:   dir,
		sinks: make(map[string]*sink),
		done:  make(map[string]bool),
	}
}

// Enabled reports whether w writes any files.
func (w *Writer) Enabled() bool {
	return w.dir != ""
}

// Path returns the file that holds version's statements.
func (w *Writer) Path(version string) string {
	return Path(w.dir, version)
}

// sink returns the open sink for version, opening it if necessary.
func (w *Writer) sink(version string) (*sink, error) {
	if s, ok := w.sinks[version]; ok {
		return s, nil
	}
	if w.done[version] {
		return nil, fmt.Errorf("query log for %s already closed", version)
	}
	f, err := os.Create(w.Path(version))
	if err != nil {
		return nil, err
	}
	s := &sink{f, bufio.NewWriter(f)}
	w.sinks[version] = s
	return s, nil
}

// Record appends detail to version's file unless it is Excluded.
func (w *Writer) Record(version, detail string) error {
	if !w.Enabled() || Excluded(detail) {
		return nil
	}
	s, err := w.sink(version)
	if err != nil {
		return err
	}
	if _, err := s.w.WriteString(detail); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Close flushes and closes version's file. If nothing was recorded
// for version, Close still leaves an empty file behind.
func (w *Writer) Close(version string) error {
	if !w.Enabled() || w.done[version] {
		return nil
	}
	s, err := w.sink(version)
	if err != nil {
		return err
	}
	delete(w.sinks, version)
	w.done[version] = true
	err = s.w.Flush()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// CloseAll closes every file still open. It is safe to call after
// Close.
func (w *Writer) CloseAll() error {
	var first error
	for version := range w.sinks {
		if err := w.Close(version); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// A Buffer holds recorded statements in memory until they are
// replayed into another Recorder.
type Buffer struct {
	entries []entry
}

type entry struct {
	version, detail string
}

// Record appends detail to b unless it is Excluded.
func (b *Buffer) Record(version, detail string) error {
	if !Excluded(detail) {
		b.entries = append(b.entries, entry{version, detail})
	}
	return nil
}

// Len returns the number of statements in b.
func (b *Buffer) Len() int {
	return len(b.entries)
}

// ReplayTo records every statement in b into r, in order.
func (b *Buffer) ReplayTo(r Recorder) error {
	for _, e := range b.entries {
		if err := r.Record(e.version, e.detail); err != nil {
			return err
		}
	}
	return nil
}
