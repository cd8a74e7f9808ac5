package lasdb

import (
	"testing"

	"las/internal/lasspan"
	"las/internal/lasvalue"
)

func TestDriverName(t *testing.T) {
	cases := map[string]string{"sqlite": "sqlite", "sqlite3": "sqlite3", "postgres": "postgres", "mysql": "mysql", "mssql": "sqlserver"}
	for in, want := range cases {
		got, err := driverName(in)
		if err != nil || got != want {
			t.Fatalf("driverName(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := driverName("nope"); err == nil {
		t.Fatal("expected error for unknown database type")
	}
}

func TestConnectQueryExecuteClose(t *testing.T) {
	sp := lasspan.Span{}
	if _, err := dbConnect(sp, []*lasvalue.Value{
		lasvalue.NewString("t"), lasvalue.NewString("sqlite"), lasvalue.NewString(":memory:"),
	}); err != nil {
		t.Fatalf("db_connect: %v", err)
	}
	defer dbClose(sp, []*lasvalue.Value{lasvalue.NewString("t")})

	if _, err := dbExecute(sp, []*lasvalue.Value{
		lasvalue.NewString("t"), lasvalue.NewString("create table items(name text)"),
	}); err != nil {
		t.Fatalf("create table: %v", err)
	}
	affected, err := dbExecute(sp, []*lasvalue.Value{
		lasvalue.NewString("t"), lasvalue.NewString("insert into items(name) values ('a'), ('b')"),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if affected.Int != 2 {
		t.Fatalf("rows affected = %d, want 2", affected.Int)
	}

	table, err := dbQuery(sp, []*lasvalue.Value{
		lasvalue.NewString("t"), lasvalue.NewString("select name from items order by name"),
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(table.Elems) != 3 { // header + 2 rows
		t.Fatalf("got %d rows, want 3", len(table.Elems))
	}
	if table.Elems[1].Elems[0].GoString() != "a" || table.Elems[2].Elems[0].GoString() != "b" {
		t.Fatalf("unexpected rows: %+v", table.Elems)
	}
}

func TestDbConnectDuplicateFails(t *testing.T) {
	sp := lasspan.Span{}
	args := []*lasvalue.Value{lasvalue.NewString("dup"), lasvalue.NewString("sqlite"), lasvalue.NewString(":memory:")}
	if _, err := dbConnect(sp, args); err != nil {
		t.Fatalf("db_connect: %v", err)
	}
	defer dbClose(sp, []*lasvalue.Value{lasvalue.NewString("dup")})
	if _, err := dbConnect(sp, args); err == nil {
		t.Fatal("expected error connecting with a duplicate id")
	}
}

func TestDbQueryUnknownConnectionFails(t *testing.T) {
	sp := lasspan.Span{}
	if _, err := dbQuery(sp, []*lasvalue.Value{lasvalue.NewString("missing"), lasvalue.NewString("select 1")}); err == nil {
		t.Fatal("expected error for unknown connection")
	}
}
