package fetcher

import (
	"context"

	"github.com/sohga/kyukou-watch/app/analyzer"
	"github.com/sohga/kyukou-watch/app/canvas"
)

// AnnouncementSource is the external collaborator that lists courses and
// their announcements.
type AnnouncementSource interface {
	ListCourses(ctx context.Context, token string) ([]canvas.Course, error)
	ListAnnouncements(ctx context.Context, courseID int64, token string) ([]canvas.Announcement, error)
}

var _ AnnouncementSource = (*canvas.Client)(nil)

// AnnouncementAnalyzer classifies a single announcement.
type AnnouncementAnalyzer interface {
	Run(ctx context.Context, title, body string) (*analyzer.Classification, error)
}

var _ AnnouncementAnalyzer = (*analyzer.Analyzer)(nil)
