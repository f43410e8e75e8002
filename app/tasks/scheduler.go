package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sohga/kyukou-watch/app/cfg"
	"github.com/sohga/kyukou-watch/app/fetcher"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Scheduler periodically enqueues a refresh run. It deliberately runs a
// single worker: a run touches the shared cache file, and concurrent runs
// would clobber each other's updates (last writer wins).
type Scheduler struct {
	runner    *fetcher.Runner
	token     string
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	taskQueue chan TaskInterface
}

func NewScheduler(runner *fetcher.Runner) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		runner:    runner,
		token:     cfg.CanvasToken,
		interval:  time.Duration(cfg.RefreshInterval) * time.Second,
		ctx:       ctx,
		cancel:    cancel,
		taskQueue: make(chan TaskInterface, 10),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.worker()

	if s.interval <= 0 {
		slog.Info("Scheduled runs disabled (refresh interval is 0)")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				task := NewRefreshResultsTask(s.runner, s.token)
				if err := s.EnqueueTask(task); err != nil {
					slog.Warn("Failed to enqueue RefreshResultsTask", "error", err)
				}
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) worker() {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 15*time.Minute)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		slog.Error("Task execution failed", "type", string(task.GetType()), "id", task.GetID(), "error", err)
	}
}
