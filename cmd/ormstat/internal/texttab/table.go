// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables with column
// spans, per-cell margins and full-width rules.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// A Table accumulates rows of cells and lays them out in aligned
// columns when formatted.
//
// Methods that add content return the Table so calls can be chained:
//
//	t.Row().Cell("name").Cell("value", texttab.Right)
type Table struct {
	rows     []*row
	ncols    int
	minWidth []int
}

type row struct {
	rule  rune // if non-zero, the row is a rule of this rune
	cells []cell
	next  int // column of the next cell
}

type cell struct {
	col, span int
	text      string
	margin    string
	align     align
}

// A CellOption modifies a cell as it is added.
type CellOption func(c *cell)

// LeftMargin sets the text printed between a cell and the column to
// its left. Margins in one column are right-aligned with each other.
func LeftMargin(m string) CellOption {
	return func(c *cell) { c.margin = m }
}

var (
	Left   CellOption = func(c *cell) { c.align = alignLeft }
	Center CellOption = func(c *cell) { c.align = alignCenter }
	Right  CellOption = func(c *cell) { c.align = alignRight }
)

type align uint8

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// pad aligns s within width w. Left-aligned text is not padded on the
// right.
func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case alignCenter:
		return strings.Repeat(" ", n/2) + s
	case alignRight:
		return strings.Repeat(" ", n) + s
	}
	return s
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, new(row))
	return t
}

// Rule adds a row that repeats ch across the full width of the table.
func (t *Table) Rule(ch rune) *Table {
	t.rows = append(t.rows, &row{rule: ch})
	return t
}

// current returns the row that receives new cells.
func (t *Table) current() *row {
	if len(t.rows) == 0 || t.rows[len(t.rows)-1].rule != 0 {
		t.Row()
	}
	return t.rows[len(t.rows)-1]
}

// Col moves to column col of the current row, leaving any columns in
// between empty. Columns are numbered from 0 and cannot be revisited.
func (t *Table) Col(col int) *Table {
	r := t.current()
	if col < r.next {
		panic(fmt.Sprintf("texttab: cannot move back from column %d to %d", r.next, col))
	}
	r.next = col
	return t
}

// Cell adds a cell one column wide.
func (t *Table) Cell(text string, opts ...CellOption) *Table {
	return t.Span(1, text, opts...)
}

// Span adds a cell covering cols columns. Unless an option says
// otherwise, the cell is left-aligned and separated from the previous
// column by a single space; cells in column 0 and empty cells have no
// margin.
func (t *Table) Span(cols int, text string, opts ...CellOption) *Table {
	r := t.current()
	c := cell{col: r.next, span: cols, text: text}
	if c.col > 0 && text != "" {
		c.margin = " "
	}
	for _, o := range opts {
		o(&c)
	}
	r.cells = append(r.cells, c)
	r.next += cols
	t.ncols = max(t.ncols, r.next)
	return t
}

// SetMinWidth sets the minimum width of column col, not counting its
// margin.
func (t *Table) SetMinWidth(col, width int) {
	for len(t.minWidth) <= col {
		t.minWidth = append(t.minWidth, 0)
	}
	t.minWidth[col] = width
}

// Width returns the width of the formatted table.
func (t *Table) Width() int {
	offs, _ := t.layout()
	return offs[t.ncols]
}

// layout returns the offset at which each column's margin starts,
// followed by the total width, and the margin width of each column.
func (t *Table) layout() (offs, margins []int) {
	margins = make([]int, t.ncols)
	widths := make([]int, t.ncols)
	copy(widths, t.minWidth)
	var spans []cell
	for _, r := range t.rows {
		for _, c := range r.cells {
			margins[c.col] = max(margins[c.col], utf8.RuneCountInString(c.margin))
			if c.span == 1 {
				widths[c.col] = max(widths[c.col], utf8.RuneCountInString(c.text))
			} else {
				spans = append(spans, c)
			}
		}
	}

	// Widen the columns under a spanning cell that does not fit,
	// spreading the shortfall over them with any remainder going to
	// the rightmost columns.
	for _, c := range spans {
		have := -margins[c.col]
		for col := c.col; col < c.col+c.span; col++ {
			have += margins[col] + widths[col]
		}
		short := utf8.RuneCountInString(c.text) - have
		for i := 0; short > 0; i++ {
			col := c.col + c.span - 1 - i%c.span
			widths[col]++
			short--
		}
	}

	offs = make([]int, t.ncols+1)
	for col := range widths {
		offs[col+1] = offs[col] + margins[col] + widths[col]
	}
	return offs, margins
}

// Format writes the laid out table to w. Trailing spaces are removed
// from every line.
func (t *Table) Format(w io.Writer) error {
	offs, margins := t.layout()
	width := offs[t.ncols]

	var line strings.Builder
	for _, r := range t.rows {
		line.Reset()
		if r.rule != 0 {
			line.WriteString(strings.Repeat(string(r.rule), width))
		}
		pos := 0
		for _, c := range r.cells {
			if strings.TrimSpace(c.text) == "" && strings.TrimSpace(c.margin) == "" {
				continue
			}
			start := offs[c.col]
			m := margins[c.col]
			line.WriteString(strings.Repeat(" ", start-pos))
			line.WriteString(strings.Repeat(" ", m-utf8.RuneCountInString(c.margin)))
			line.WriteString(c.margin)
			s := c.align.pad(c.text, offs[c.col+c.span]-start-m)
			line.WriteString(s)
			pos = start + m + utf8.RuneCountInString(s)
		}
		if _, err := io.WriteString(w, strings.TrimRight(line.String(), " ")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
