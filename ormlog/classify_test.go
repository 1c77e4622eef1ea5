// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ormlog

import "testing"

func TestClassify(t *testing.T) {
	check := func(detail string, wantOp Op, wantTable string) {
		t.Helper()
		op, table, ok := Classify(detail)
		if !ok {
			t.Errorf("%q: not classified, want %s %s", detail, wantOp, wantTable)
			return
		}
		if op != wantOp || table != wantTable {
			t.Errorf("%q: got %s %q, want %s %q", detail, op, table, wantOp, wantTable)
		}
	}
	checkNone := func(detail string) {
		t.Helper()
		if op, table, ok := Classify(detail); ok {
			t.Errorf("%q: got %s %q, want unclassified", detail, op, table)
		}
	}

	check(`INSERT INTO "orders" (...)`, OpInsert, "orders")
	check(`INSERT INTO "orders" ("amount") VALUES ($1) RETURNING "id"`, OpInsert, "orders")
	check(`DELETE FROM "sessions" WHERE "id" = 4`, OpDelete, "sessions")
	check(`UPDATE "orders" SET ...`, OpUpdate, "orders")
	check(`SELECT a.* FROM "orders" ...`, OpSelect, "orders")
	check(`SELECT COUNT(*) FROM "line_items" WHERE "order_id" = 1`, OpSelect, "line_items")
	check(`SELECT  "users".* FROM  "users"  WHERE "id" = 1 LIMIT 1`, OpSelect, "users")

	checkNone("BEGIN")
	checkNone("COMMIT")
	checkNone(`insert into "orders" values (1)`)
	checkNone(`INSERT INTO orders VALUES (1)`)
	checkNone(`SELECT 1`)
	checkNone(`  UPDATE "orders" SET x = 1`)
	checkNone(`TRUNCATE "orders"`)
}

func TestOpString(t *testing.T) {
	for op, want := range map[Op]string{
		OpInsert: "insert",
		OpDelete: "delete",
		OpUpdate: "update",
		OpSelect: "select",
		0:        "Op(0)",
		9:        "Op(9)",
	} {
		if got := op.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
	if got := (SQLKey{"orders", OpInsert}).String(); got != "orders/insert" {
		t.Errorf("got %q", got)
	}
}
