// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ormtab

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ormperf/ormstat/ormlog"
)

// exampleBuilder builds the two-version example: three inserts into
// orders for A and two for B, plus model loads with a gap.
func exampleBuilder() *Builder {
	b := NewBuilder()
	for _, d := range []float64{1, 2, 3} {
		b.Add(sql("A", "orders", ormlog.OpInsert, d))
	}
	for _, d := range []float64{4, 5} {
		b.Add(sql("B", "orders", ormlog.OpInsert, d))
	}
	b.Add(sql("B", "accounts", ormlog.OpSelect, 0.5))
	b.Add(sql("A", "accounts", ormlog.OpDelete, 0.25))
	b.Add(model("B", "User", 7))
	b.Add(model("A", "Order", 1.5))
	b.Add(model("A", "Order", 2.5))
	b.Add(model("A", "Account", 9))
	return b
}

func renderText(t *testing.T, r *Report) string {
	t.Helper()
	var buf bytes.Buffer
	if err := r.ToText(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

// findRow returns the value cells of the line whose label column is
// label, one slice per statistic.
func findRow(t *testing.T, out, label string) [][]string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Split(line, "│")
		if len(parts) < 2 || strings.TrimRight(parts[0], " ") != label {
			continue
		}
		var cells [][]string
		for _, p := range parts[1:] {
			cells = append(cells, strings.Fields(p))
		}
		return cells
	}
	t.Fatalf("no row %q in:\n%s", label, out)
	return nil
}

func TestTextValues(t *testing.T) {
	out := renderText(t, exampleBuilder().ToReport([]string{"A", "B"}))

	check := func(label string, want ...string) {
		t.Helper()
		got := findRow(t, out, label)
		var wantCells [][]string
		for _, w := range want {
			wantCells = append(wantCells, strings.Fields(w))
		}
		if !reflect.DeepEqual(got, wantCells) {
			t.Errorf("row %q: got %v, want %v", label, got, wantCells)
		}
	}
	check("  - insert", "3 2", "1.00 4.00", "3.00 5.00", "2.00 4.50", "2.00 4.50", "1.00 0.71")
	check("  - select", "- 1", "- 0.50", "- 0.50", "- 0.50", "- 0.50", "- -")
	check("  - delete", "1 -", "0.25 -", "0.25 -", "0.25 -", "0.25 -", "- -")
	check("Order", "2 -", "1.50 -", "2.50 -", "2.00 -", "2.00 -", "0.71 -")
	check("User", "- 1", "- 7.00", "- 7.00", "- 7.00", "- 7.00", "- -")
	check("Model", "A B", "A B", "A B", "A B", "A B", "A B")
	check("", "count", "min", "max", "mean", "median", "stdev")
}

func TestTextOrder(t *testing.T) {
	out := renderText(t, exampleBuilder().ToReport([]string{"A", "B"}))
	order := []string{
		modelTitle,
		"Account", "Order", "User",
		sqlTitle,
		"accounts:", "  - select", "  - delete",
		"orders:", "  - insert",
	}
	pos := 0
	for _, want := range order {
		i := strings.Index(out[pos:], "\n"+want)
		if want == modelTitle {
			i = strings.Index(out[pos:], want)
		}
		if i < 0 {
			t.Fatalf("%q missing or out of order in:\n%s", want, out)
		}
		pos += i + 1
	}
}

func TestTextAlignment(t *testing.T) {
	b := exampleBuilder()
	b.Add(model("B", "AVeryLongModelNameThatWidensTheLabelColumn", 1234.5678))
	b.Add(sql("A", "a_table_with_a_long_name", ormlog.OpUpdate, 99999.125))
	out := renderText(t, b.ToReport([]string{"A", "B", "C"}))

	for _, table := range strings.Split(out, "\n\n") {
		var bars []int
		width := -1
		for _, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
			if strings.Trim(line, "=") == "" || strings.Trim(line, "-") == "" {
				n := utf8.RuneCountInString(line)
				if width >= 0 && n != width {
					t.Errorf("rule width %d, want %d", n, width)
				}
				width = n
				continue
			}
			if !strings.Contains(line, "│") {
				continue
			}
			var got []int
			for i, r := range []rune(line) {
				if r == '│' {
					got = append(got, i)
				}
			}
			if len(got) != 6 {
				t.Errorf("line %q has %d separators, want 6", line, len(got))
			}
			if bars == nil {
				bars = got
			} else if !reflect.DeepEqual(got, bars) {
				t.Errorf("line %q has separators at %v, want %v", line, got, bars)
			}
			if n := utf8.RuneCountInString(line); n > width {
				t.Errorf("line %q is wider than the table (%d > %d)", line, n, width)
			}
		}
	}
}

func TestTextIdempotent(t *testing.T) {
	versions := []string{"A", "B"}
	a := renderText(t, exampleBuilder().ToReport(versions))
	b := renderText(t, exampleBuilder().ToReport(versions))
	if a != b {
		t.Errorf("output differs between runs:\n%s\n%s", a, b)
	}
	for _, line := range strings.Split(a, "\n") {
		if strings.HasSuffix(line, " ") {
			t.Errorf("trailing space in %q", line)
		}
	}
}

func TestTextEmpty(t *testing.T) {
	out := renderText(t, NewBuilder().ToReport([]string{"A", "B"}))
	if !strings.HasPrefix(out, modelTitle+"\n") || !strings.Contains(out, "\n"+sqlTitle+"\n") {
		t.Errorf("missing titles in:\n%s", out)
	}
	findRow(t, out, "Model")
	findRow(t, out, "Table")
}

func TestReportRows(t *testing.T) {
	r := exampleBuilder().ToReport([]string{"B", "A"})
	var got []string
	for _, row := range r.Rows() {
		got = append(got, row.Key.String())
	}
	want := []string{"Account", "Order", "User", "accounts/select", "accounts/delete", "orders/insert"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got rows %v, want %v", got, want)
	}
	// Summaries follow the requested version order.
	ins := r.Groups[1].Rows[0]
	if ins.Summaries[0].Count != 2 || ins.Summaries[1].Count != 3 {
		t.Errorf("got counts %d, %d, want 2, 3", ins.Summaries[0].Count, ins.Summaries[1].Count)
	}
	if r.Models[0].Summaries[0] != nil {
		t.Errorf("Account has no B samples, got %+v", r.Models[0].Summaries[0])
	}
}
