package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sohga/kyukou-watch/app/analyzer"
	"github.com/sohga/kyukou-watch/app/cache"
	"github.com/sohga/kyukou-watch/app/results"
)

// Runner drives one fetch-filter-classify-persist pass. Runs are fully
// sequential: one course at a time, one classification call at a time, so
// results stay in source order. There is no protection against two runs
// racing on the same cache file; the deployment is single-invoker.
type Runner struct {
	source       AnnouncementSource
	analyzer     AnnouncementAnalyzer
	extractor    *analyzer.BodyExtractor
	courseFilter *CourseFilter
	cacheStore   *cache.Store
	resultsStore *results.Store
}

func NewRunner(source AnnouncementSource, annAnalyzer AnnouncementAnalyzer,
	courseFilter *CourseFilter, cacheStore *cache.Store, resultsStore *results.Store) *Runner {
	return &Runner{
		source:       source,
		analyzer:     annAnalyzer,
		extractor:    analyzer.NewBodyExtractor(),
		courseFilter: courseFilter,
		cacheStore:   cacheStore,
		resultsStore: resultsStore,
	}
}

// Run executes a single full pass and writes one snapshot on completion.
// A failed course-list fetch aborts the run; failures at course or
// announcement granularity are logged and skipped. The cache is saved even
// when the run errors out.
func (r *Runner) Run(ctx context.Context, token string, forceRefresh bool) (*results.RunResult, error) {
	c := r.cacheStore.Load()
	if forceRefresh {
		slog.Info("Force refresh requested, discarding cache contents")
		c = cache.New()
	}

	courseCount, annCount := cache.Stats(c)
	slog.Info("Cache loaded", "courses", courseCount, "announcements", annCount, "last_updated", c.LastUpdated)

	// Whatever happens below, the in-memory cache state is flushed to disk.
	defer r.cacheStore.Save(c)

	courses, err := r.source.ListCourses(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch course list: %w", err)
	}
	if len(courses) == 0 {
		return nil, fmt.Errorf("course list is empty")
	}

	slog.Info("Fetched course list", "count", len(courses))

	now := time.Now()
	cancellations := []results.Cancellation{}

	for i, course := range courses {
		if course.ID == 0 {
			slog.Warn("Course has no ID, skipping", "index", i, "name", course.Name)
			continue
		}

		if !r.courseFilter.Match(course.Name) {
			slog.Debug("Course excluded by filter", "course", course.Name)
			continue
		}

		slog.Debug("Processing course", "index", i+1, "total", len(courses), "course", course.Name, "course_id", course.ID)

		announcements, err := r.source.ListAnnouncements(ctx, course.ID, token)
		if err != nil {
			slog.Warn("Failed to fetch announcements, skipping course", "course", course.Name, "course_id", course.ID, "error", err)
			continue
		}
		if len(announcements) == 0 {
			slog.Debug("No announcements found", "course", course.Name)
			cache.RecordSeen(course.ID, announcements, c)
			continue
		}

		fresh := cache.DiffNew(course.ID, announcements, c)
		if len(fresh) == 0 {
			slog.Debug("No new announcements", "course", course.Name)
			cache.RecordSeen(course.ID, announcements, c)
			continue
		}

		slog.Info("New announcements found", "course", course.Name, "count", len(fresh))

		for _, ann := range fresh {
			body := r.extractor.Run(ann.Message)

			classification, err := r.analyzer.Run(ctx, ann.Title, body)
			if err != nil {
				slog.Error("Analysis failed, skipping announcement", "course", course.Name, "announcement_id", ann.ID, "title", ann.Title, "error", err)
				continue
			}

			if !classification.Canceled {
				slog.Debug("Not a cancellation", "course", course.Name, "announcement_id", ann.ID)
				continue
			}

			cancellations = append(cancellations, results.Cancellation{
				Course:            classification.Course,
				Date:              classification.Date,
				Period:            classification.Period,
				Canceled:          true,
				Source:            classification.Source,
				Message:           classification.Message,
				CourseID:          course.ID,
				CourseName:        course.Name,
				AnnouncementID:    ann.ID,
				AnnouncementTitle: ann.Title,
				AnalyzedAt:        now,
			})

			slog.Info("Cancellation detected", "course", course.Name, "date", classification.Date, "period", classification.Period)
		}

		cache.RecordSeen(course.ID, announcements, c)
	}

	result := &results.RunResult{
		Summary: results.Summary{
			TotalCourses:       len(courses),
			TotalCancellations: len(cancellations),
			AnalyzedAt:         &now,
		},
		Cancellations: cancellations,
	}

	snapshot, err := r.resultsStore.Write(result, now)
	if err != nil {
		return nil, fmt.Errorf("failed to persist run result: %w", err)
	}

	slog.Info("Run completed", "courses", len(courses), "cancellations", len(cancellations), "snapshot", snapshot)

	return result, nil
}
