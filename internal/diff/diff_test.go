// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import (
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	if d := Diff("x", []byte("a\nb\n"), []byte("a\nb\n")); d != "" {
		t.Errorf("equal inputs: got %q, want empty", d)
	}

	d := Diff("x", []byte("a\nb\nc\n"), []byte("a\nB\nc\n"))
	for _, want := range []string{"--- x (want)", "+++ x (got)", "-b\n", "+B\n"} {
		if !strings.Contains(d, want) {
			t.Errorf("diff missing %q:\n%s", want, d)
		}
	}

	if d := Diff("x", nil, []byte("new\n")); !strings.Contains(d, "+new") {
		t.Errorf("diff from empty:\n%s", d)
	}
}
