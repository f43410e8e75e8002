package cache

import (
	"time"
)

// Entry is the per-announcement fingerprint used to decide whether an
// announcement needs to be re-analyzed on a later run.
type Entry struct {
	Title     string    `json:"title"`
	UpdatedAt string    `json:"updated_at,omitempty"`
	CachedAt  time.Time `json:"cached_at"`
}

// Cache maps course ID -> announcement ID -> Entry. Both keys are decimal
// strings so the persisted JSON stays stable regardless of ID width.
// The whole structure is loaded at run start, mutated in memory and written
// back wholesale at run end.
type Cache struct {
	LastUpdated   *time.Time                  `json:"last_updated"`
	Announcements map[string]map[string]Entry `json:"announcements"`
}

// New returns an empty cache, the fallback for a missing or unreadable file.
func New() *Cache {
	return &Cache{
		Announcements: make(map[string]map[string]Entry),
	}
}
