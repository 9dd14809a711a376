package repokit

import (
	"context"
	"fmt"
	"time"
)

// DefaultGuardTimeout bounds a guard when the caller's ctx has no deadline
const DefaultGuardTimeout = 5 * time.Second

// Guarder is anything that can verify its backends, e.g. *store.Store
type Guarder interface {
	Guard(context.Context) error
}

// Guard runs g.Guard, adding DefaultGuardTimeout when ctx carries no deadline
func Guard(ctx context.Context, g Guarder) error {
	if g == nil {
		return fmt.Errorf("repokit: nil guarder")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultGuardTimeout)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		return fmt.Errorf("dependency guard failed: %w", err)
	}
	return nil
}
