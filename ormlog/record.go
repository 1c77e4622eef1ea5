// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ormlog

import "fmt"

// SQLLabel is the label an ORM logger uses for raw statements, as
// opposed to model loads.
const SQLLabel = "SQL"

// A Record is a single timed event matched in a log.
type Record struct {
	// Version is the version tag of the input this record was
	// read from.
	Version string

	// Label is the token preceding the duration. It is either
	// SQLLabel or a model name.
	Label string

	// Duration is the logged duration in milliseconds.
	Duration float64

	// Detail is the remainder of the line after the duration.
	Detail string

	fileName string
	line     int
}

// Pos returns the file name and line number of r.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// IsSQL reports whether r is a raw SQL record.
func (r *Record) IsSQL() bool {
	return r.Label == SQLLabel
}

// Sample classifies r into a Sample. For raw SQL records, ok is false
// if the statement's shape is not recognized.
func (r *Record) Sample() (s Sample, ok bool) {
	s = Sample{Version: r.Version, Duration: r.Duration}
	if !r.IsSQL() {
		s.Key = ModelKey{r.Label}
		return s, true
	}
	op, table, ok := Classify(r.Detail)
	if !ok {
		return Sample{}, false
	}
	s.Key = SQLKey{table, op}
	return s, true
}

// A Sample is a classified timing event ready for aggregation.
type Sample struct {
	Version  string
	Duration float64
	Key      Key
}

// A Key identifies the bucket a Sample is aggregated under. It is
// either a ModelKey or an SQLKey.
type Key interface {
	isKey()
	String() string
}

// ModelKey buckets model load events by model name.
type ModelKey struct {
	Label string
}

// SQLKey buckets raw statements by target table and operation.
type SQLKey struct {
	Table string
	Op    Op
}

func (ModelKey) isKey() {}
func (SQLKey) isKey()   {}

func (k ModelKey) String() string { return k.Label }

func (k SQLKey) String() string { return k.Table + "/" + k.Op.String() }

// An Op is the kind of a raw SQL statement.
type Op int

const (
	OpInsert Op = 1 + iota
	OpDelete
	OpUpdate
	OpSelect
)

var opNames = [...]string{
	OpInsert: "insert",
	OpDelete: "delete",
	OpUpdate: "update",
	OpSelect: "select",
}

func (o Op) String() string {
	if o > 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", int(o))
}
