package results

import (
	"time"
)

// Source discriminators for the latest-snapshot query.
const (
	SourceNoData     = "no_data"     // results directory does not exist
	SourceNoResults  = "no_results"  // directory exists but holds no snapshots
	SourceCachedFile = "cached_file" // served from the newest snapshot
)

// Cancellation is one detected class cancellation, the model verdict plus the
// identifying metadata of the announcement it came from.
type Cancellation struct {
	Course            string    `json:"course"`
	Date              string    `json:"date"`
	Period            string    `json:"period"`
	Canceled          bool      `json:"canceled"`
	Source            string    `json:"source"`
	Message           string    `json:"message"`
	CourseID          int64     `json:"course_id"`
	CourseName        string    `json:"course_name"`
	AnnouncementID    int64     `json:"announcement_id"`
	AnnouncementTitle string    `json:"announcement_title"`
	AnalyzedAt        time.Time `json:"analyzed_at"`
}

type Summary struct {
	TotalCourses       int        `json:"total_courses"`
	TotalCancellations int        `json:"total_cancellations"`
	AnalyzedAt         *time.Time `json:"analyzed_at"`
	Source             string     `json:"source,omitempty"`
	SourceFile         string     `json:"source_file,omitempty"`
}

// RunResult is the artifact of one completed run: a summary plus the
// cancellations in detection order.
type RunResult struct {
	Summary       Summary        `json:"summary"`
	Cancellations []Cancellation `json:"cancellations"`
}
