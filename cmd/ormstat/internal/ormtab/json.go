// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ormtab

import (
	"io"

	"github.com/ormperf/ormstat/ormmath"
	"github.com/valyala/fastjson"
)

// ToJSON renders r as a single JSON object:
//
//	{"versions": [...],
//	 "models": [{"model": name, "stats": {version: summary|null}}],
//	 "tables": [{"table": name, "operations": [{"operation": op, "stats": ...}]}]}
//
// A summary is an object with one field per statistic. An undefined
// standard deviation is null.
func (r *Report) ToJSON(w io.Writer) error {
	var a fastjson.Arena

	versions := a.NewArray()
	for i, v := range r.Versions {
		versions.SetArrayItem(i, a.NewString(v))
	}

	models := a.NewArray()
	for i, row := range r.Models {
		o := a.NewObject()
		o.Set("model", a.NewString(row.Label()))
		o.Set("stats", r.jsonStats(&a, row))
		models.SetArrayItem(i, o)
	}

	tables := a.NewArray()
	for i, g := range r.Groups {
		ops := a.NewArray()
		for j, row := range g.Rows {
			o := a.NewObject()
			o.Set("operation", a.NewString(row.Label()))
			o.Set("stats", r.jsonStats(&a, row))
			ops.SetArrayItem(j, o)
		}
		o := a.NewObject()
		o.Set("table", a.NewString(g.Table))
		o.Set("operations", ops)
		tables.SetArrayItem(i, o)
	}

	doc := a.NewObject()
	doc.Set("versions", versions)
	doc.Set("models", models)
	doc.Set("tables", tables)

	buf := doc.MarshalTo(nil)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}

func (r *Report) jsonStats(a *fastjson.Arena, row *Row) *fastjson.Value {
	stats := a.NewObject()
	for i, s := range row.Summaries {
		if s == nil {
			stats.Set(r.Versions[i], a.NewNull())
			continue
		}
		o := a.NewObject()
		for _, st := range ormmath.Stats {
			v, ok := s.Value(st)
			switch {
			case !ok:
				o.Set(st.String(), a.NewNull())
			case st == ormmath.Count:
				o.Set(st.String(), a.NewNumberInt(s.Count))
			default:
				o.Set(st.String(), a.NewNumberFloat64(v))
			}
		}
		stats.Set(r.Versions[i], o)
	}
	return stats
}
