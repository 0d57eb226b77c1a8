// Package workers holds the background jobs run by the scheduler.
package workers

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
	"github.com/shashiranjanraj/pizzeria/pkg/workerpool"
)

// SweepJob is the scheduler and metrics name of the sweeper.
const SweepJob = "tokens:sweep"

// TokenStore is what the sweeper needs from the token service.
type TokenStore interface {
	IDs(ctx context.Context) ([]string, error)
	DeleteIfExpired(ctx context.Context, id string) (bool, error)
}

// SweepResult counts one pass.
type SweepResult struct {
	Checked int
	Deleted int
	Failed  int
}

// TokenSweeper removes expired session tokens from storage.
type TokenSweeper struct {
	tokens  TokenStore
	workers int
}

func NewTokenSweeper(tokens TokenStore, workers int) *TokenSweeper {
	if workers <= 0 {
		workers = 8
	}
	return &TokenSweeper{tokens: tokens, workers: workers}
}

// Run is the schedule.Task form of Sweep.
func (s *TokenSweeper) Run(ctx context.Context) error {
	_, err := s.Sweep(ctx)
	return err
}

// Sweep checks every stored token and deletes the expired ones. A token
// that cannot be read or deleted is logged and skipped; only a failure to
// list tokens is returned.
func (s *TokenSweeper) Sweep(ctx context.Context) (SweepResult, error) {
	log := logger.WithCtx(ctx).With("job", SweepJob)

	ids, err := s.tokens.IDs(ctx)
	if err != nil {
		log.Error("list tokens", "error", err)
		return SweepResult{}, err
	}

	var deleted, failed atomic.Int64
	var wg sync.WaitGroup

	pool := workerpool.New(s.workers)
	for _, id := range ids {
		id := id
		wg.Add(1)
		err := pool.SubmitWait(ctx, func() {
			defer wg.Done()
			ok, err := s.tokens.DeleteIfExpired(ctx, id)
			switch {
			case err != nil:
				failed.Add(1)
				log.Warn("sweep token", "token_id", id, "error", err)
			case ok:
				deleted.Add(1)
			}
		})
		if err != nil {
			wg.Done()
			break
		}
	}
	wg.Wait()
	pool.Shutdown()

	res := SweepResult{Checked: len(ids), Deleted: int(deleted.Load()), Failed: int(failed.Load())}
	metrics.TokensSwept.Add(float64(res.Deleted))
	log.Info("tokens swept", "checked", res.Checked, "deleted", res.Deleted, "failed", res.Failed)
	return res, ctx.Err()
}
