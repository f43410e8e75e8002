package canvas

// Course is a course the authenticated user is enrolled in.
type Course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Announcement is a single course announcement as returned by the Canvas
// announcements endpoint. Message carries the HTML body when the request
// includes it. UpdatedAt is empty when the source omits a timestamp.
type Announcement struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	PostedAt  string `json:"posted_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
