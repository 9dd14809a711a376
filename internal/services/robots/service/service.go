// Package service contains robots workflows
package service

import (
	"context"

	"robots/internal/modkit/repokit"
	"robots/internal/platform/logger"
	"robots/internal/services/robots/domain"
	"robots/internal/services/robots/repo"
)

// Service defines the service contract for robots
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo
}

var _ Service = (*Svc)(nil)

// New creates a new robots service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("robots.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("robots.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: repokit.MustBind(binder, db)}
}

// ensureExists loads id fresh on every call; a miss is ErrNotFound
// mutations run after it without a lock, so a concurrent delete turns them into no-ops
func (s *Svc) ensureExists(ctx context.Context, id int64) (domain.Robot, error) {
	row, ok, err := s.Repo.GetOne(ctx, id)
	if err != nil {
		return domain.Robot{}, err
	}
	if !ok {
		return domain.Robot{}, domain.ErrNotFound
	}
	return toRobot(row), nil
}

// GetAll lists robots matching f in id order; no match is an empty collection
func (s *Svc) GetAll(ctx context.Context, f domain.Filter) (domain.Envelope, error) {
	rows, err := s.Repo.GetAll(ctx, f)
	if err != nil {
		return domain.Envelope{}, err
	}
	out := make([]domain.Robot, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRobot(r))
	}
	return domain.Many(out), nil
}

// GetOne returns a single robot envelope
func (s *Svc) GetOne(ctx context.Context, id int64) (domain.Envelope, error) {
	r, err := s.ensureExists(ctx, id)
	if err != nil {
		return domain.Envelope{}, err
	}
	return domain.Single(r), nil
}

// Create inserts a robot from a checked payload
func (s *Svc) Create(ctx context.Context, in domain.ValidatedPayload) (domain.Envelope, error) {
	c, err := domain.Build(in)
	if err != nil {
		return domain.Envelope{}, err
	}
	if c.Name == nil || c.Purpose == nil {
		return domain.Envelope{}, domain.ErrInvalidParameters
	}
	row, ok, err := s.Repo.Insert(ctx, c)
	if err != nil {
		return domain.Envelope{}, err
	}
	if !ok {
		return domain.Envelope{}, domain.ErrUnprocessableCreate
	}
	logger.C(ctx).Debug().Int64("robot_id", row.ID).Msg("robot created")
	return domain.Single(toRobot(row)), nil
}

// Update overwrites name and purpose and returns the affected count
func (s *Svc) Update(ctx context.Context, in domain.ValidatedPayload, id int64) (int64, error) {
	if _, err := s.ensureExists(ctx, id); err != nil {
		return 0, err
	}
	c, err := domain.Build(in)
	if err != nil {
		return 0, err
	}
	return s.Repo.Update(ctx, c, id)
}

// UpdatePurpose sets only the purpose and returns the affected count
func (s *Svc) UpdatePurpose(ctx context.Context, id int64, purpose string) (int64, error) {
	if _, err := s.ensureExists(ctx, id); err != nil {
		return 0, err
	}
	return s.Repo.UpdatePurpose(ctx, id, purpose)
}

// Delete removes a robot and returns the affected count
func (s *Svc) Delete(ctx context.Context, id int64) (int64, error) {
	if _, err := s.ensureExists(ctx, id); err != nil {
		return 0, err
	}
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	logger.C(ctx).Debug().Int64("robot_id", id).Int64("affected", n).Msg("robot deleted")
	return n, nil
}

func toRobot(r repo.Row) domain.Robot {
	return domain.Robot{
		ID:        r.ID,
		Name:      r.Name,
		Purpose:   r.Purpose,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
