// Package repo provides postgres access for robots
package repo

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"robots/internal/modkit/repokit"
	perr "robots/internal/platform/errors"
	"robots/internal/platform/store"
	"robots/internal/services/robots/domain"
)

// Schema is the idempotent DDL for the robots table
//
//go:embed schema.sql
var Schema string

// Repo defines the repository contract for robots
// single row statements, no transactions; misses are reported, never raised
type Repo interface {
	GetAll(ctx context.Context, f domain.Filter) ([]Row, error)
	GetOne(ctx context.Context, id int64) (Row, bool, error)
	Insert(ctx context.Context, c domain.Changes) (Row, bool, error)
	Update(ctx context.Context, c domain.Changes, id int64) (int64, error)
	UpdatePurpose(ctx context.Context, id int64, purpose string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Row is a robots row as stored
type Row struct {
	ID        int64
	Name      string
	Purpose   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// EnsureSchema applies Schema; safe to run on every boot
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return fail(err, "robots.repo.EnsureSchema", "failed to apply robots schema")
	}
	return nil
}

const columns = `id, name, purpose, created_at, updated_at`

func scanRow(r repokit.Row) (Row, error) {
	var rr Row
	err := r.Scan(&rr.ID, &rr.Name, &rr.Purpose, &rr.CreatedAt, &rr.UpdatedAt)
	return rr, err
}

func (r *queries) GetAll(ctx context.Context, f domain.Filter) ([]Row, error) {
	const sql = `
select ` + columns + `
from robots
where ($1::bigint is null or id = $1)
and ($2::text is null or name = $2)
and ($3::text is null or purpose = $3)
order by id
`
	rows, err := store.Many(ctx, r.q, scanRow, sql, f.ID, f.Name, f.Purpose)
	if err != nil {
		return nil, fail(err, "robots.repo.GetAll", "failed to list robots")
	}
	return rows, nil
}

func (r *queries) GetOne(ctx context.Context, id int64) (Row, bool, error) {
	const sql = `select ` + columns + ` from robots where id = $1`
	row, err := store.One(ctx, r.q, scanRow, sql, id)
	return found(row, err, "robots.repo.GetOne", "failed to load robot")
}

func (r *queries) Insert(ctx context.Context, c domain.Changes) (Row, bool, error) {
	const sql = `
insert into robots (name, purpose)
values ($1, $2)
returning ` + columns
	row, err := store.One(ctx, r.q, scanRow, sql, c.Name, c.Purpose)
	return found(row, err, "robots.repo.Insert", "failed to insert robot")
}

// Update sets only the columns present in c; an empty c is a no-op
func (r *queries) Update(ctx context.Context, c domain.Changes, id int64) (int64, error) {
	if c.Empty() {
		return 0, nil
	}
	const sql = `
update robots
set name = coalesce($2, name),
purpose = coalesce($3, purpose),
updated_at = clock_timestamp()
where id = $1
`
	n, err := store.ExecAffected(ctx, r.q, sql, id, c.Name, c.Purpose)
	if err != nil {
		return 0, fail(err, "robots.repo.Update", "failed to update robot")
	}
	return n, nil
}

func (r *queries) UpdatePurpose(ctx context.Context, id int64, purpose string) (int64, error) {
	const sql = `update robots set purpose = $2, updated_at = clock_timestamp() where id = $1`
	n, err := store.ExecAffected(ctx, r.q, sql, id, purpose)
	if err != nil {
		return 0, fail(err, "robots.repo.UpdatePurpose", "failed to update robot purpose")
	}
	return n, nil
}

func (r *queries) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := store.ExecAffected(ctx, r.q, `delete from robots where id = $1`, id)
	if err != nil {
		return 0, fail(err, "robots.repo.Delete", "failed to delete robot")
	}
	return n, nil
}

// found maps a store.One miss to ok=false instead of an error
func found(row Row, err error, op, msg string) (Row, bool, error) {
	switch {
	case err == nil:
		return row, true, nil
	case errors.Is(err, perr.ErrNotFound):
		return Row{}, false, nil
	default:
		return Row{}, false, fail(err, op, msg)
	}
}

func fail(err error, op, msg string) error {
	return perr.WithOp(perr.AttachFieldFromPg(perr.FromPostgres(err, msg)), op)
}
