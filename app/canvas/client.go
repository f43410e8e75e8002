package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the Canvas LMS REST API. It is a thin collaborator: it
// fetches and decodes, all interpretation of the data happens upstream.
type Client struct {
	baseURL      string
	defaultToken string
	userAgent    string
	lookbackDays int
	perCourse    int
	httpClient   *http.Client
}

func NewClient(baseURL, defaultToken, userAgent string, lookbackDays, perCourse int, httpClient *http.Client) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		baseURL:      baseURL,
		defaultToken: defaultToken,
		userAgent:    userAgent,
		lookbackDays: lookbackDays,
		perCourse:    perCourse,
		httpClient:   httpClient,
	}
}

// ListCourses returns the courses the token's user is enrolled in. A caller
// supplied token takes precedence over the configured default.
func (c *Client) ListCourses(ctx context.Context, token string) ([]Course, error) {
	var courses []Course
	if err := c.get(ctx, c.baseURL+"courses", nil, token, &courses); err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}
	return courses, nil
}

// ListAnnouncements returns recent announcements for a course, including
// bodies, within the configured lookback window.
func (c *Client) ListAnnouncements(ctx context.Context, courseID int64, token string) ([]Announcement, error) {
	now := time.Now()
	params := url.Values{}
	params.Set("context_codes[]", "course_"+strconv.FormatInt(courseID, 10))
	params.Set("per_page", strconv.Itoa(c.perCourse))
	params.Set("include[]", "body")
	params.Set("start_date", now.AddDate(0, 0, -c.lookbackDays).Format("2006-01-02"))
	params.Set("end_date", now.Format("2006-01-02"))

	var announcements []Announcement
	if err := c.get(ctx, c.baseURL+"announcements", params, token, &announcements); err != nil {
		return nil, fmt.Errorf("failed to fetch announcements for course %d: %w", courseID, err)
	}
	return announcements, nil
}

func (c *Client) get(ctx context.Context, rawURL string, params url.Values, token string, out interface{}) error {
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if token == "" {
		token = c.defaultToken
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
