// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ormlog reads timing events from ORM application logs.
//
// The recognized line shape is
//
//	<anything> <LABEL> [Load] (<FLOAT>ms) <DETAIL>
//
// where LABEL is either "SQL", for a raw statement, or a model name.
// Lines of any other shape are ignored, since these logs are
// interleaved with unrelated output. So are lines longer than 16 MiB,
// which are counted as skipped.
package ormlog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// A Reader reads timed records from an ORM log.
//
// Its API is modeled on bufio.Scanner. A Reader retains ownership of
// the Record it returns; callers should copy anything they need to
// retain past the next call to Scan.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	br   *bufio.Reader
	line []byte
	long bool // line exceeded maxLineSize and was dropped
	err  error

	rec Record

	// Lines and Skipped count lines read and lines that did not
	// match the record pattern since the last Reset.
	Lines, Skipped int
}

// A SyntaxError represents a matched line whose captured fields could
// not be decoded.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// maxLineSize is the longest line the Reader matches. SQL details
// with large IN lists run well past bufio's default buffer size.
var maxLineSize = 16 << 20

// lineRe captures the label, duration and detail of a line. The
// prefix is optional and lazy so the label is the left-most token
// that is followed by a duration.
var lineRe = regexp.MustCompile(`^(?:.*?\s)??(\S+)\s+(?:Load\s+)?\(([0-9]+(?:\.[0-9]*)?|\.[0-9]+)ms\)\s+(.+)$`)

// NewReader constructs a reader for the log in r. fileName is used in
// error messages and record positions; version tags every record.
func NewReader(r io.Reader, fileName, version string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, version)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName, version string) {
	if r.br == nil {
		r.br = bufio.NewReader(ior)
	} else {
		r.br.Reset(ior)
	}
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	r.rec = Record{Version: version, fileName: fileName}
	r.Lines, r.Skipped = 0, 0
}

// Scan advances the reader to the next record and reports whether a
// record was read. Lines that do not match, and lines longer than
// maxLineSize, are skipped.
// If Scan reaches EOF or an error occurs, it returns false, in which
// case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.readLine() {
		r.Lines++
		r.rec.line++
		if r.long {
			r.Skipped++
			continue
		}
		label, dur, detail, ok, err := Parse(string(r.line))
		if err != nil {
			r.err = &SyntaxError{r.rec.fileName, r.rec.line, err.Error()}
			return false
		}
		if !ok {
			r.Skipped++
			continue
		}
		r.rec.Label, r.rec.Duration, r.rec.Detail = label, dur, detail
		return true
	}
	return false
}

// readLine reads the next line, without its line ending, into r.line.
// A line longer than maxLineSize is read to its end and dropped, with
// r.long set. readLine returns false at EOF or on a read error, which
// it records in r.err.
func (r *Reader) readLine() bool {
	r.line = r.line[:0]
	r.long = false
	read := false
	for {
		frag, more, err := r.br.ReadLine()
		if err != nil {
			if err != io.EOF {
				r.err = err
				return false
			}
			return read
		}
		read = true
		if !r.long {
			if len(r.line)+len(frag) > maxLineSize {
				r.long = true
				r.line = r.line[:0]
			} else {
				r.line = append(r.line, frag...)
			}
		}
		if !more {
			return true
		}
	}
}

// Record returns the record that was just read by Scan.
func (r *Reader) Record() *Record {
	return &r.rec
}

// Err returns the first error encountered by the Reader.
func (r *Reader) Err() error {
	return r.err
}

// Parse matches a single log line. It returns ok == false if the line
// is not a timed record. A non-nil error means the line matched but
// its duration could not be decoded.
func Parse(line string) (label string, duration float64, detail string, ok bool, err error) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return "", 0, "", false, nil
	}
	duration, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", 0, "", false, fmt.Errorf("bad duration %q: %w", m[2], err)
	}
	return m[1], duration, m[3], true, nil
}
