package api

import (
	"context"

	"github.com/sohga/kyukou-watch/app/fetcher"
	"github.com/sohga/kyukou-watch/app/results"
)

// RunnerInterface is the synchronous fetch-classify-persist cycle behind
// GET /api/kyukou.
type RunnerInterface interface {
	Run(ctx context.Context, token string, forceRefresh bool) (*results.RunResult, error)
}

var _ RunnerInterface = (*fetcher.Runner)(nil)

// SnapshotReader serves the most recent persisted run result.
type SnapshotReader interface {
	Latest() (*results.RunResult, error)
}

var _ SnapshotReader = (*results.Store)(nil)

type Handler struct {
	runner    RunnerInterface
	snapshots SnapshotReader
}
