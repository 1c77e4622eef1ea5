// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ormlog

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// An Input is one log source labeled with a version tag.
type Input struct {
	Version string
	Path    string
}

// ParseInputs parses command-line input arguments. Each argument is
// either version=path, or a bare version, which reads "version.txt".
func ParseInputs(args []string) ([]Input, error) {
	var inputs []Input
	for _, arg := range args {
		version, path, found := strings.Cut(arg, "=")
		if !found {
			path = version + ".txt"
		}
		if version == "" {
			return nil, fmt.Errorf("input %q: empty version", arg)
		}
		if path == "" {
			return nil, fmt.Errorf("input %q: empty path", arg)
		}
		inputs = append(inputs, Input{version, path})
	}
	return inputs, nil
}

// Versions returns the distinct version tags of inputs in order of
// first appearance.
func Versions(inputs []Input) []string {
	var versions []string
	seen := make(map[string]bool)
	for _, in := range inputs {
		if !seen[in.Version] {
			seen[in.Version] = true
			versions = append(versions, in.Version)
		}
	}
	return versions
}

// A Files reads records from a sequence of inputs.
//
// Each input is opened when the previous one has been read to
// completion, and is closed before the next one is opened or when
// Scan stops because of an error.
type Files struct {
	// Inputs is the list of inputs to read, in order.
	Inputs []Input

	// AllowStdin indicates that the path "-" should be treated as
	// stdin.
	AllowStdin bool

	// Context is used to open remote inputs. If nil,
	// context.Background is used.
	Context context.Context

	// Done, if non-nil, is called after each input has been read
	// to completion and closed. If it returns an error, Scan stops
	// with that error.
	Done func(in Input, r *Reader) error

	// pos is the index of the next input to open.
	pos int

	reader Reader
	cur    Input
	file   io.ReadCloser
	err    error
}

// Scan advances to the next record in the sequence of inputs and
// reports whether a record was read. The caller should use the Record
// method to get the record. If Scan reaches the end of the input
// sequence, or if an error occurs, it returns false. In this case,
// the caller should use the Err method to check for errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}

	for {
		if f.file == nil {
			if f.pos >= len(f.Inputs) {
				return false
			}
			f.cur = f.Inputs[f.pos]
			f.pos++

			ctx := f.Context
			if ctx == nil {
				ctx = context.Background()
			}
			file, err := open(ctx, f.cur.Path, f.AllowStdin)
			if err != nil {
				f.err = err
				return false
			}
			f.file = file
			f.reader.Reset(file, f.cur.Path, f.cur.Version)
		}

		if f.reader.Scan() {
			return true
		}
		err := f.reader.Err()
		cerr := f.file.Close()
		f.file = nil
		if err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", f.cur.Path, cerr)
		}
		if err != nil {
			f.err = err
			return false
		}
		if f.Done != nil {
			if err := f.Done(f.cur, &f.reader); err != nil {
				f.err = err
				return false
			}
		}
	}
}

// Close closes the current input, if one is open, and ends the
// sequence: later calls to Scan return false. Callers that may stop
// before Scan returns false should defer Close.
func (f *Files) Close() error {
	f.pos = len(f.Inputs)
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

// Record returns the record that was just read by Scan.
// See Reader.Record.
func (f *Files) Record() *Record {
	return f.reader.Record()
}

// Input returns the input the current record was read from.
func (f *Files) Input() Input {
	return f.cur
}

// Err returns the error that stopped Scan, if any.
// If Scan stopped because it read each input to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}
