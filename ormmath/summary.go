// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ormmath computes summary statistics over samples of query
// durations.
//
// The standard deviation reported is the sample standard deviation,
// which divides the sum of squared deviations by n-1. It is undefined
// for a single measurement.
package ormmath

import (
	"sort"
	"strconv"

	"github.com/aclements/go-moremath/stats"
)

// Placeholder is the display form of an absent or undefined value.
const Placeholder = "-"

// A Summary summarizes a sample of durations.
//
// A nil *Summary means there were no samples. Its methods treat it as
// absent.
type Summary struct {
	Count    int
	Min, Max float64
	Mean     float64
	Median   float64

	// HasStdDev indicates that StdDev is defined. It is false
	// when Count is 1.
	HasStdDev bool
	StdDev    float64
}

// Summarize computes the Summary of values. values must be non-empty
// and is not modified.
func Summarize(values []float64) *Summary {
	if len(values) == 0 {
		panic("ormmath: Summarize of empty sample")
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	sample := stats.Sample{Xs: sorted, Sorted: true}

	s := &Summary{Count: len(sorted)}
	s.Min, s.Max = sample.Bounds()
	s.Mean = sample.Mean()
	s.Median = median(sorted)
	if s.Count > 1 {
		s.HasStdDev = true
		s.StdDev = sample.StdDev()
	}
	return s
}

// median averages the elements at (n-1)/2 and n/2 of sorted, which
// are the same element when n is odd.
func median(sorted []float64) float64 {
	n := len(sorted)
	return (sorted[(n-1)/2] + sorted[n/2]) / 2
}

// A Stat names one of the statistics in a Summary.
type Stat int

const (
	Count Stat = iota
	Min
	Max
	Mean
	Median
	StdDev
)

// Stats lists every Stat in display order.
var Stats = []Stat{Count, Min, Max, Mean, Median, StdDev}

var statNames = [...]string{
	Count:  "count",
	Min:    "min",
	Max:    "max",
	Mean:   "mean",
	Median: "median",
	StdDev: "stdev",
}

func (st Stat) String() string {
	return statNames[st]
}

// Value returns the value of statistic st, and false if s is absent
// or st is undefined for s.
func (s *Summary) Value(st Stat) (float64, bool) {
	if s == nil {
		return 0, false
	}
	switch st {
	case Count:
		return float64(s.Count), true
	case Min:
		return s.Min, true
	case Max:
		return s.Max, true
	case Mean:
		return s.Mean, true
	case Median:
		return s.Median, true
	case StdDev:
		return s.StdDev, s.HasStdDev
	}
	panic("ormmath: unknown Stat " + strconv.Itoa(int(st)))
}

// Format formats statistic st for display. Counts are integers and
// everything else has two digits after the decimal point. Absent and
// undefined values format as Placeholder.
func (s *Summary) Format(st Stat) string {
	v, ok := s.Value(st)
	if !ok {
		return Placeholder
	}
	if st == Count {
		return strconv.Itoa(s.Count)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
