//go:build integration_pg

package repo

import (
	"context"
	"testing"

	"robots/internal/platform/store"
	"robots/internal/platform/testkit"
	"robots/internal/services/robots/domain"
)

func TestIntegration_RobotLifecycle(t *testing.T) {
	dsn := testkit.StartPostgres(t)
	ctx := context.Background()

	st, err := store.Open(ctx, store.Config{
		AppName: "robots-repo-test",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2, ConnectRetries: 5},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	// twice, the DDL is idempotent
	for i := 0; i < 2; i++ {
		if err := EnsureSchema(ctx, st.PG); err != nil {
			t.Fatalf("schema: %v", err)
		}
	}

	r := NewPG().Bind(st.PG)

	a, ok, err := r.Insert(ctx, domain.Changes{Name: ptr("Yern"), Purpose: ptr("AI")})
	if err != nil || !ok {
		t.Fatalf("insert: %v %v", ok, err)
	}
	if a.CreatedAt.After(a.UpdatedAt) {
		t.Fatalf("created_at %v after updated_at %v", a.CreatedAt, a.UpdatedAt)
	}
	b, _, err := r.Insert(ctx, domain.Changes{Name: ptr("Bolt"), Purpose: ptr("Lift")})
	if err != nil || b.ID == a.ID {
		t.Fatalf("second insert: %+v %v", b, err)
	}

	got, ok, err := r.GetOne(ctx, a.ID)
	if err != nil || !ok || got.Name != "Yern" || got.Purpose != "AI" {
		t.Fatalf("get one: %+v %v %v", got, ok, err)
	}

	all, err := r.GetAll(ctx, domain.Filter{})
	if err != nil || len(all) != 2 || all[0].ID != a.ID {
		t.Fatalf("get all: %+v %v", all, err)
	}
	byName, err := r.GetAll(ctx, domain.Filter{Name: ptr("Bolt")})
	if err != nil || len(byName) != 1 || byName[0].ID != b.ID {
		t.Fatalf("filtered: %+v %v", byName, err)
	}

	n, err := r.UpdatePurpose(ctx, a.ID, "Digging")
	if err != nil || n != 1 {
		t.Fatalf("update purpose: %d %v", n, err)
	}
	after, _, _ := r.GetOne(ctx, a.ID)
	if after.Purpose != "Digging" || !after.UpdatedAt.After(a.UpdatedAt) {
		t.Fatalf("after update purpose: %+v (before %v)", after, a.UpdatedAt)
	}

	n, err = r.Update(ctx, domain.Changes{Name: ptr("Yern II")}, a.ID)
	if err != nil || n != 1 {
		t.Fatalf("update: %d %v", n, err)
	}
	after, _, _ = r.GetOne(ctx, a.ID)
	if after.Name != "Yern II" || after.Purpose != "Digging" {
		t.Fatalf("partial update touched other columns: %+v", after)
	}

	n, err = r.Delete(ctx, a.ID)
	if err != nil || n != 1 {
		t.Fatalf("delete: %d %v", n, err)
	}
	if _, ok, err := r.GetOne(ctx, a.ID); ok || err != nil {
		t.Fatalf("deleted row still visible: %v %v", ok, err)
	}
	if n, err := r.Delete(ctx, a.ID); n != 0 || err != nil {
		t.Fatalf("second delete: %d %v", n, err)
	}

	c, _, err := r.Insert(ctx, domain.Changes{Name: ptr("Cog"), Purpose: ptr("Spin")})
	if err != nil || c.ID <= b.ID {
		t.Fatalf("ids must not be reused: %d after %d (%v)", c.ID, b.ID, err)
	}
}
