// Package lasdb supplements the required six built-ins with a small
// database surface: db_connect, db_query, db_execute, db_close. It wraps
// database/sql with one manager holding named *sql.DB handles behind a
// mutex, covering sqlite, postgres, mysql, and mssql, and registers
// through the same BuiltinFunction call path every other built-in uses
// (see internal/builtin's RegisterBuiltin idiom).
package lasdb

import (
	"database/sql"
	"fmt"
	"strconv"
	"sync"

	"las/internal/lasast"
	"las/internal/lasrr"
	"las/internal/lasspan"
	"las/internal/lasvalue"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

type manager struct {
	mu    sync.Mutex
	conns map[string]*sql.DB
}

var m = &manager{conns: make(map[string]*sql.DB)}

// driverName maps a db_connect type string to a registered database/sql
// driver name. "sqlite" goes through the pure-Go modernc.org/sqlite
// driver; "sqlite3" goes through the cgo mattn/go-sqlite3 one. Both stay
// reachable instead of collapsing to a single driver.
func driverName(dbType string) (string, error) {
	switch dbType {
	case "sqlite":
		return "sqlite", nil
	case "sqlite3":
		return "sqlite3", nil
	case "postgres", "postgresql":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	case "mssql", "sqlserver":
		return "sqlserver", nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
}

func init() {
	lasast.RegisterBuiltin("db_connect", dbConnect)
	lasast.RegisterBuiltin("db_query", dbQuery)
	lasast.RegisterBuiltin("db_execute", dbExecute)
	lasast.RegisterBuiltin("db_close", dbClose)
}

func wrongArgType(sp lasspan.Span, fn string, i int, want string, got *lasvalue.Value) error {
	return lasrr.Atf(lasrr.WrongArgumentType, sp, "%s: argument %d must be %s, got %s", fn, i, want, got.Type())
}

func wrongArgCount(sp lasspan.Span, fn string, want int, got int) error {
	return lasrr.Atf(lasrr.WrongNumberOfArguments, sp, "%s expects %d argument(s), got %d", fn, want, got)
}

func dbConnect(sp lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 3 {
		return nil, wrongArgCount(sp, "db_connect", 3, len(args))
	}
	for i, a := range args {
		if a.Kind != lasvalue.String {
			return nil, wrongArgType(sp, "db_connect", i+1, "String", a)
		}
	}
	id, dbType, dsn := args[0].GoString(), args[1].GoString(), args[2].GoString()

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.conns[id]; exists {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "db_connect: connection %q already exists", id)
	}
	driver, err := driverName(dbType)
	if err != nil {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "db_connect: %s", err)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "db_connect: %s", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "db_connect: %s", err)
	}
	m.conns[id] = db
	return lasvalue.NewNothing(), nil
}

func getConn(sp lasspan.Span, fn, id string) (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	db, ok := m.conns[id]
	if !ok {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "%s: no such connection %q", fn, id)
	}
	return db, nil
}

// dbQuery returns a table of stringified cells: the first row is column
// names, every row after is one result row, so a generic
// Array[Array[String]] layout can represent any query's output without a
// dictionary type.
func dbQuery(sp lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 2 {
		return nil, wrongArgCount(sp, "db_query", 2, len(args))
	}
	if args[0].Kind != lasvalue.String {
		return nil, wrongArgType(sp, "db_query", 1, "String", args[0])
	}
	if args[1].Kind != lasvalue.String {
		return nil, wrongArgType(sp, "db_query", 2, "String", args[1])
	}
	db, err := getConn(sp, "db_query", args[0].GoString())
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(args[1].GoString())
	if err != nil {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "db_query: %s", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "db_query: %s", err)
	}
	table := []*lasvalue.Value{stringArray(cols)}

	scratch := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range scratch {
		ptrs[i] = &scratch[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "db_query: %s", err)
		}
		cells := make([]string, len(cols))
		for i, v := range scratch {
			cells[i] = stringify(v)
		}
		table = append(table, stringArray(cells))
	}
	return lasvalue.NewArray(table), nil
}

func dbExecute(sp lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 2 {
		return nil, wrongArgCount(sp, "db_execute", 2, len(args))
	}
	if args[0].Kind != lasvalue.String {
		return nil, wrongArgType(sp, "db_execute", 1, "String", args[0])
	}
	if args[1].Kind != lasvalue.String {
		return nil, wrongArgType(sp, "db_execute", 2, "String", args[1])
	}
	db, err := getConn(sp, "db_execute", args[0].GoString())
	if err != nil {
		return nil, err
	}
	result, err := db.Exec(args[1].GoString())
	if err != nil {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "db_execute: %s", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "db_execute: %s", err)
	}
	return lasvalue.NewInteger(int32(affected)), nil
}

func dbClose(sp lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 1 {
		return nil, wrongArgCount(sp, "db_close", 1, len(args))
	}
	if args[0].Kind != lasvalue.String {
		return nil, wrongArgType(sp, "db_close", 1, "String", args[0])
	}
	id := args[0].GoString()

	m.mu.Lock()
	defer m.mu.Unlock()
	db, ok := m.conns[id]
	if !ok {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "db_close: no such connection %q", id)
	}
	delete(m.conns, id)
	if err := db.Close(); err != nil {
		return nil, lasrr.Atf(lasrr.FailedAssertion, sp, "db_close: %s", err)
	}
	return lasvalue.NewNothing(), nil
}

func stringArray(cells []string) *lasvalue.Value {
	elems := make([]*lasvalue.Value, len(cells))
	for i, c := range cells {
		elems[i] = lasvalue.NewString(c)
	}
	return lasvalue.NewArray(elems)
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
