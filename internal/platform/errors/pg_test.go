package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pg(code, col string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ColumnName: col}
}

func TestDBErrorCodeMappings(t *testing.T) {
	cases := []struct {
		code string
		want ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23502", ErrorCodeValidation},
		{"23514", ErrorCodeValidation},
		{"22001", ErrorCodeInvalidParameters},
		{"22P02", ErrorCodeInvalidParameters},
		{"22003", ErrorCodeInvalidParameters},
		{"57P01", ErrorCodeUnavailable},
		{"57P03", ErrorCodeUnavailable},
		{"40001", ErrorCodeDB},
		{"42P01", ErrorCodeDB},
		{"XXXXX", ErrorCodeDB},
	}
	for _, c := range cases {
		got, ok := DBErrorCode(pg(c.code, ""))
		if !ok {
			t.Fatalf("expected ok for PgError code %s", c.code)
		}
		if got != c.want {
			t.Fatalf("DBErrorCode(%s) = %v, want %v", c.code, got, c.want)
		}
	}

	if _, ok := DBErrorCode(stderrs.New("nope")); ok {
		t.Fatalf("DBErrorCode should return ok=false for non-pg error")
	}

	wrapped := fmt.Errorf("query: %w", pg("23505", ""))
	if code, ok := DBErrorCode(wrapped); !ok || code != ErrorCodeDuplicateKey {
		t.Fatalf("DBErrorCode should see through wrapping, got %v %v", code, ok)
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("FromPostgres(nil) should be nil")
	}

	err := FromPostgres(pg("23502", "name"), "insert robot")
	if CodeOf(err) != ErrorCodeValidation {
		t.Fatalf("FromPostgres code = %v", CodeOf(err))
	}
	if msg, _ := MessageOf(err); msg != "insert robot" {
		t.Fatalf("FromPostgres message = %q", msg)
	}

	if CodeOf(FromPostgres(stderrs.New("conn reset"), "select")) != ErrorCodeDB {
		t.Fatalf("foreign errors should map to DB")
	}
	if CodeOf(FromPostgres(context.Canceled, "select")) != ErrorCodeUnavailable {
		t.Fatalf("cancellation should map to Unavailable")
	}

	ours := New(ErrorCodeNotFound, "Robot not found")
	if FromPostgres(ours, "select") != ours {
		t.Fatalf("our errors should pass through untouched")
	}
}

func TestAttachFieldFromPg(t *testing.T) {
	withCol := AttachFieldFromPg(Wrap(pg("23502", "purpose"), ErrorCodeValidation, "oops"))
	e, ok := As(withCol)
	if !ok || e.Field() != "purpose" {
		t.Fatalf("AttachFieldFromPg column name failed: %+v", e)
	}

	plain := stderrs.New("plain")
	if AttachFieldFromPg(plain) != plain {
		t.Fatalf("non-pg errors should be returned unchanged")
	}
}
