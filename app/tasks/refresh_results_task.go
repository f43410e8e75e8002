package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sohga/kyukou-watch/app/fetcher"
)

// RefreshResultsTask performs one scheduled fetch-classify-persist run with
// the configured default token. A failed scheduled run only logs; no snapshot
// is produced and nothing is retried.
type RefreshResultsTask struct {
	Task
	runner *fetcher.Runner
	token  string
}

func NewRefreshResultsTask(runner *fetcher.Runner, token string) *RefreshResultsTask {
	return &RefreshResultsTask{
		Task:   NewTask(TaskTypeRefreshResults),
		runner: runner,
		token:  token,
	}
}

func (t *RefreshResultsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := t.runner.Run(ctx, t.token, false)
	if err != nil {
		return fmt.Errorf("scheduled run failed: %w", err)
	}

	slog.Info("Task completed",
		"type", "RefreshResults",
		"duration", t.GetDuration(),
		"courses", result.Summary.TotalCourses,
		"cancellations", result.Summary.TotalCancellations)

	return nil
}
