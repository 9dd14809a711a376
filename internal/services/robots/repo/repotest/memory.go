// Package repotest provides an in memory robots repo for service and transport tests
package repotest

import (
	"context"
	"sync"
	"time"

	"robots/internal/modkit/repokit"
	"robots/internal/services/robots/domain"
	"robots/internal/services/robots/repo"
)

// Memory is a repo.Repo over a map
// ids are never reused and every write moves the clock forward by a millisecond
type Memory struct {
	// Fail, when set, is returned by every call
	Fail error
	// DropInserts makes Insert report no returned row
	DropInserts bool

	mu     sync.Mutex
	rows   map[int64]repo.Row
	nextID int64
	now    time.Time
	calls  []string
}

var _ repo.Repo = (*Memory)(nil)

// New returns an empty Memory
func New() *Memory {
	return &Memory{rows: map[int64]repo.Row{}, now: time.Date(2025, 9, 3, 13, 0, 0, 0, time.UTC)}
}

// Binder binds every Queryer to m
func (m *Memory) Binder() repokit.Binder[repo.Repo] {
	return repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return m })
}

// Calls returns the method names seen so far
func (m *Memory) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *Memory) enter(op string) error {
	m.calls = append(m.calls, op)
	return m.Fail
}

func (m *Memory) tick() time.Time {
	m.now = m.now.Add(time.Millisecond)
	return m.now
}

func (m *Memory) GetAll(_ context.Context, f domain.Filter) ([]repo.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetAll"); err != nil {
		return nil, err
	}
	var out []repo.Row
	for id := int64(1); id <= m.nextID; id++ {
		r, ok := m.rows[id]
		if !ok {
			continue
		}
		if (f.ID != nil && *f.ID != r.ID) || (f.Name != nil && *f.Name != r.Name) || (f.Purpose != nil && *f.Purpose != r.Purpose) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *Memory) GetOne(_ context.Context, id int64) (repo.Row, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetOne"); err != nil {
		return repo.Row{}, false, err
	}
	r, ok := m.rows[id]
	return r, ok, nil
}

func (m *Memory) Insert(_ context.Context, c domain.Changes) (repo.Row, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("Insert"); err != nil {
		return repo.Row{}, false, err
	}
	if m.DropInserts {
		return repo.Row{}, false, nil
	}
	m.nextID++
	ts := m.tick()
	r := repo.Row{ID: m.nextID, CreatedAt: ts, UpdatedAt: ts}
	if c.Name != nil {
		r.Name = *c.Name
	}
	if c.Purpose != nil {
		r.Purpose = *c.Purpose
	}
	m.rows[r.ID] = r
	return r, true, nil
}

func (m *Memory) Update(_ context.Context, c domain.Changes, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("Update"); err != nil {
		return 0, err
	}
	r, ok := m.rows[id]
	if !ok || c.Empty() {
		return 0, nil
	}
	if c.Name != nil {
		r.Name = *c.Name
	}
	if c.Purpose != nil {
		r.Purpose = *c.Purpose
	}
	r.UpdatedAt = m.tick()
	m.rows[id] = r
	return 1, nil
}

func (m *Memory) UpdatePurpose(_ context.Context, id int64, purpose string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("UpdatePurpose"); err != nil {
		return 0, err
	}
	r, ok := m.rows[id]
	if !ok {
		return 0, nil
	}
	r.Purpose = purpose
	r.UpdatedAt = m.tick()
	m.rows[id] = r
	return 1, nil
}

func (m *Memory) Delete(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("Delete"); err != nil {
		return 0, err
	}
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}
