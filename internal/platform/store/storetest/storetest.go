// Package storetest provides in memory fakes for the store seams
package storetest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"robots/internal/platform/store"

	"github.com/jackc/pgx/v5"
)

// Rows is a scripted result set
type Rows struct {
	Cols []string
	Data [][]any
	// Fail is returned by Err once iteration ends
	Fail error

	i      int
	closed bool
}

// NewRows returns rows over data with the given columns
func NewRows(cols []string, data ...[]any) *Rows { return &Rows{Cols: cols, Data: data} }

func (r *Rows) Next() bool {
	if r.closed || r.i >= len(r.Data) {
		return false
	}
	r.i++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.i == 0 || r.i > len(r.Data) {
		return errors.New("storetest: Scan called without a current row")
	}
	return assign(r.Data[r.i-1], dest)
}

func (r *Rows) Err() error        { return r.Fail }
func (r *Rows) Close()            { r.closed = true }
func (r *Rows) Columns() []string { return r.Cols }

// Closed reports whether Close was called
func (r *Rows) Closed() bool { return r.closed }

// Tag is a CommandTag carrying a fixed affected count
type Tag int64

func (t Tag) String() string      { return fmt.Sprintf("UPDATE %d", int64(t)) }
func (t Tag) RowsAffected() int64 { return int64(t) }

// Call records one statement
type Call struct {
	SQL  string
	Args []any
}

// Querier is a store.TxRunner backed by callbacks
// nil callbacks answer with empty rows and zero affected
type Querier struct {
	OnQuery func(sql string, args []any) (store.Rows, error)
	OnExec  func(sql string, args []any) (store.CommandTag, error)

	mu    sync.Mutex
	calls []Call
}

var _ store.TxRunner = (*Querier)(nil)

func (q *Querier) record(sql string, args []any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls = append(q.calls, Call{SQL: sql, Args: args})
}

// Calls returns the statements seen so far
func (q *Querier) Calls() []Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Call(nil), q.calls...)
}

// LastSQL returns the whitespace-folded text of the last statement
func (q *Querier) LastSQL() string {
	calls := q.Calls()
	if len(calls) == 0 {
		return ""
	}
	return strings.Join(strings.Fields(calls[len(calls)-1].SQL), " ")
}

func (q *Querier) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	q.record(sql, args)
	if q.OnExec == nil {
		return Tag(0), nil
	}
	return q.OnExec(sql, args)
}

func (q *Querier) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	q.record(sql, args)
	if q.OnQuery == nil {
		return NewRows(nil), nil
	}
	return q.OnQuery(sql, args)
}

// QueryRow scans the first row of OnQuery; no rows gives pgx.ErrNoRows like pgx does
func (q *Querier) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	rs, err := q.Query(ctx, sql, args...)
	return rowFunc(func(dest ...any) error {
		if err != nil {
			return err
		}
		defer rs.Close()
		if !rs.Next() {
			if err := rs.Err(); err != nil {
				return err
			}
			return pgx.ErrNoRows
		}
		return rs.Scan(dest...)
	})
}

// Tx runs fn against the same fake
func (q *Querier) Tx(_ context.Context, fn func(store.RowQuerier) error) error { return fn(q) }

type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

// assign copies values into pointer destinations, converting where reflect allows
func assign(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("storetest: %d values for %d destinations", len(vals), len(dest))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d)
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("storetest: destination %d is not a pointer", i)
		}
		ev := dv.Elem()
		if vals[i] == nil {
			ev.Set(reflect.Zero(ev.Type()))
			continue
		}
		sv := reflect.ValueOf(vals[i])
		switch {
		case sv.Type().AssignableTo(ev.Type()):
			ev.Set(sv)
		case sv.Type().ConvertibleTo(ev.Type()):
			ev.Set(sv.Convert(ev.Type()))
		default:
			return fmt.Errorf("storetest: cannot scan %T into %s", vals[i], ev.Type())
		}
	}
	return nil
}
