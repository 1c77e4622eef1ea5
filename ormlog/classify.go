// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ormlog

import (
	"regexp"
	"strings"
)

// sqlRe matches the leading keyword of a statement and the quoted
// table name that follows it. Keywords are matched case-sensitively,
// as the ORM logs them.
var sqlRe = regexp.MustCompile(`^(INSERT INTO|DELETE FROM|UPDATE|SELECT\s+.+?FROM)\s+"([^"]+)"`)

var leadingOps = map[string]Op{
	"INSERT INTO": OpInsert,
	"DELETE FROM": OpDelete,
	"UPDATE":      OpUpdate,
}

// Classify determines the operation and target table of a raw SQL
// statement. It returns ok == false for statements it does not
// recognize, such as transaction control.
func Classify(detail string) (op Op, table string, ok bool) {
	m := sqlRe.FindStringSubmatch(detail)
	if m == nil {
		return 0, "", false
	}
	if op, ok := leadingOps[m[1]]; ok {
		return op, m[2], true
	}
	if strings.HasPrefix(m[1], "SELECT") {
		return OpSelect, m[2], true
	}
	return 0, "", false
}
