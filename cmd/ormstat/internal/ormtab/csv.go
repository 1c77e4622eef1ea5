// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ormtab

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ormperf/ormstat/ormlog"
	"github.com/ormperf/ormstat/ormmath"
)

// ToCSV renders r as CSV with one record per metric key and version.
// Values are written at full precision. Absent and undefined values
// are empty.
func (r *Report) ToCSV(w io.Writer) error {
	o := csv.NewWriter(w)
	header := []string{"kind", "name", "operation", "version"}
	for _, st := range ormmath.Stats {
		header = append(header, st.String())
	}
	o.Write(header)

	for _, row := range r.Rows() {
		var kind, name, op string
		switch k := row.Key.(type) {
		case ormlog.ModelKey:
			kind, name = "model", k.Label
		case ormlog.SQLKey:
			kind, name, op = "sql", k.Table, k.Op.String()
		}
		for i, s := range row.Summaries {
			rec := []string{kind, name, op, r.Versions[i]}
			for _, st := range ormmath.Stats {
				v, ok := s.Value(st)
				switch {
				case !ok:
					rec = append(rec, "")
				case st == ormmath.Count:
					rec = append(rec, strconv.Itoa(s.Count))
				default:
					rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
				}
			}
			o.Write(rec)
		}
	}
	o.Flush()
	return o.Error()
}
