// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff describes differences between expected and actual
// command output for golden-file tests.
package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff from want to got, labeled with name.
// It returns "" if want and got are equal.
func Diff(name string, want, got []byte) string {
	if string(want) == string(got) {
		return ""
	}
	d, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(want)),
		B:        difflib.SplitLines(string(got)),
		FromFile: name + " (want)",
		ToFile:   name + " (got)",
		Context:  2,
	})
	if err != nil || d == "" {
		// Fall back to the raw text, e.g. for differences only in
		// a missing final newline.
		return fmt.Sprintf("%s\nwant: %q\ngot:  %q", name, want, got)
	}
	return d
}
