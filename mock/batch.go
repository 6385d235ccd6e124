package mock

import (
	"context"

	"github.com/fwojciec/pastescout"
)

var _ pastescout.BatchRunner = (*BatchRunner)(nil)

// BatchRunner is a mock implementation of pastescout.BatchRunner.
type BatchRunner struct {
	RunFn func(ctx context.Context, pastes []pastescout.Paste, progress pastescout.ProgressFunc) (*pastescout.BatchResult, error)
}

func (r *BatchRunner) Run(ctx context.Context, pastes []pastescout.Paste, progress pastescout.ProgressFunc) (*pastescout.BatchResult, error) {
	return r.RunFn(ctx, pastes, progress)
}
