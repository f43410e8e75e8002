package cache

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sohga/kyukou-watch/app/canvas"
)

// Store persists the announcement cache as a single JSON blob. Persistence is
// best effort: a run must never fail because the cache could not be read or
// written, it just loses the incremental-fetch benefit.
type Store struct {
	path string
}

func NewStore(dataDir string) *Store {
	return &Store{
		path: filepath.Join(dataDir, "cache.json"),
	}
}

// Path returns the location of the cache blob.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted cache. A missing, corrupt or unreadable file is
// logged and replaced with an empty cache.
func (s *Store) Load() *Cache {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("Failed to read cache file, starting with empty cache", "path", s.path, "error", err)
		}
		return New()
	}

	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		slog.Error("Failed to parse cache file, starting with empty cache", "path", s.path, "error", err)
		return New()
	}

	if c.Announcements == nil {
		c.Announcements = make(map[string]map[string]Entry)
	}

	return &c
}

// Save writes the whole cache back to disk. Write failures are logged and
// swallowed.
func (s *Store) Save(c *Cache) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		slog.Error("Failed to create cache directory", "path", s.path, "error", err)
		return
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		slog.Error("Failed to serialize cache", "error", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		slog.Error("Failed to write cache file", "path", s.path, "error", err)
	}
}

// DiffNew returns the announcements considered new relative to the cached
// state for the course, in source order. An announcement is new when its ID
// has not been seen, when both sides carry an updated_at timestamp and they
// differ, or when timestamps are unavailable and the title changed.
func DiffNew(courseID int64, announcements []canvas.Announcement, c *Cache) []canvas.Announcement {
	cached := c.Announcements[courseKey(courseID)]

	var fresh []canvas.Announcement
	for _, ann := range announcements {
		entry, seen := cached[announcementKey(ann.ID)]
		if !seen {
			fresh = append(fresh, ann)
			continue
		}

		if ann.UpdatedAt != "" && entry.UpdatedAt != "" {
			if ann.UpdatedAt != entry.UpdatedAt {
				fresh = append(fresh, ann)
			}
			continue
		}

		if ann.Title != entry.Title {
			fresh = append(fresh, ann)
		}
	}

	return fresh
}

// RecordSeen overwrites the cache entries for every passed announcement and
// advances the cache-global last_updated timestamp. It is called with all
// fetched announcements each run, not just the new ones, so the cached
// title/timestamp baseline stays current.
func RecordSeen(courseID int64, announcements []canvas.Announcement, c *Cache) {
	key := courseKey(courseID)
	if c.Announcements[key] == nil {
		c.Announcements[key] = make(map[string]Entry)
	}

	now := time.Now()
	for _, ann := range announcements {
		c.Announcements[key][announcementKey(ann.ID)] = Entry{
			Title:     ann.Title,
			UpdatedAt: ann.UpdatedAt,
			CachedAt:  now,
		}
	}

	c.LastUpdated = &now
}

// Stats reports the size of the cache, logged at run start.
func Stats(c *Cache) (courses, announcements int) {
	courses = len(c.Announcements)
	for _, entries := range c.Announcements {
		announcements += len(entries)
	}
	return courses, announcements
}

func courseKey(courseID int64) string {
	return strconv.FormatInt(courseID, 10)
}

func announcementKey(announcementID int64) string {
	return strconv.FormatInt(announcementID, 10)
}
