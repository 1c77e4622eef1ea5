// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ormtab

import (
	"io"

	"github.com/google/safehtml/template"
	"github.com/ormperf/ormstat/ormmath"
)

const htmlText = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>ORM Performance Comparison</title>
<style>
.ormstat { border-collapse: collapse; margin-bottom: 2em; }
.ormstat th, .ormstat td { padding: 0 0.6em; }
.ormstat td:nth-child(1n+2) { text-align: right; }
.ormstat .group td { font-weight: bold; border-top: 1px solid #666; }
</style>
</head>
<body>
<h2>{{.ModelTitle}}</h2>
<table class="ormstat">
<tr><th>Model{{range .Columns}}<th>{{.}}{{end}}
{{- range .Models}}
<tr><td>{{.Label}}{{range .Cells}}<td>{{.}}{{end}}
{{- end}}
</table>
<h2>{{.SQLTitle}}</h2>
<table class="ormstat">
<tr><th>Table{{range .Columns}}<th>{{.}}{{end}}
{{- range .Groups}}
<tr class="group"><td>{{.Table}}
{{- range .Rows}}
<tr><td>{{.Label}}{{range .Cells}}<td>{{.}}{{end}}
{{- end}}
{{- end}}
</table>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlText))

type htmlData struct {
	ModelTitle, SQLTitle string

	// Columns labels each value column as "<stat> <version>".
	Columns []string
	Models  []htmlRow
	Groups  []htmlGroup
}

type htmlGroup struct {
	Table string
	Rows  []htmlRow
}

type htmlRow struct {
	Label string
	Cells []string
}

// ToHTML renders r as an HTML document with the same two tables as
// ToText.
func (r *Report) ToHTML(w io.Writer) error {
	d := htmlData{
		ModelTitle: modelTitle,
		SQLTitle:   sqlTitle,
	}
	for _, st := range ormmath.Stats {
		for _, v := range r.Versions {
			d.Columns = append(d.Columns, st.String()+" "+v)
		}
	}
	for _, row := range r.Models {
		d.Models = append(d.Models, newHTMLRow(row.Label(), row))
	}
	for _, g := range r.Groups {
		hg := htmlGroup{Table: g.Table}
		for _, row := range g.Rows {
			hg.Rows = append(hg.Rows, newHTMLRow(row.Label(), row))
		}
		d.Groups = append(d.Groups, hg)
	}
	return htmlTemplate.Execute(w, d)
}

func newHTMLRow(label string, row *Row) htmlRow {
	hr := htmlRow{Label: label}
	for _, st := range ormmath.Stats {
		for _, s := range row.Summaries {
			hr.Cells = append(hr.Cells, s.Format(st))
		}
	}
	return hr
}
