package repositories

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRow answers one QueryRow call
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

// fakeExec answers one Exec call
type fakeExec struct {
	tag string
	err error
}

type fakeCall struct {
	sql  string
	args []any
}

// fakeDB plays back queued rows and exec results in order and records every
// statement. Transactions share the queues of the connection.
type fakeDB struct {
	rows  []fakeRow
	execs []fakeExec

	beginErr    error
	rollbackErr error
	queryErr    error

	calls      []fakeCall
	began      int
	committed  int
	rolledBack int
}

func (f *fakeDB) record(sql string, args []any) {
	f.calls = append(f.calls, fakeCall{sql: sql, args: args})
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.record(sql, args)
	if len(f.execs) == 0 {
		return pgconn.NewCommandTag("SELECT 1"), nil
	}
	e := f.execs[0]
	f.execs = f.execs[1:]
	return pgconn.NewCommandTag(e.tag), e.err
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.record(sql, args)
	return nil, f.queryErr
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.record(sql, args)
	if len(f.rows) == 0 {
		return fakeRow{err: fmt.Errorf("no row queued for %q", sql)}
	}
	r := f.rows[0]
	f.rows = f.rows[1:]
	return r
}

func (f *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	f.began++
	return &fakeTx{db: f}, nil
}

// fakeTx routes statements to its fakeDB. Methods the repositories never call
// stay unimplemented.
type fakeTx struct {
	pgx.Tx
	db *fakeDB
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.db.Exec(ctx, sql, args...)
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.db.Query(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.db.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	t.db.committed++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.db.rolledBack++
	return t.db.rollbackErr
}
