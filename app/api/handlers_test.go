package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sohga/kyukou-watch/app/results"
)

// MockRunner implements RunnerInterface for testing
type MockRunner struct {
	result      *results.RunResult
	err         error
	gotToken    string
	gotForce    bool
	invocations int
}

func (m *MockRunner) Run(ctx context.Context, token string, forceRefresh bool) (*results.RunResult, error) {
	m.invocations++
	m.gotToken = token
	m.gotForce = forceRefresh
	return m.result, m.err
}

// MockSnapshots implements SnapshotReader for testing
type MockSnapshots struct {
	result *results.RunResult
	err    error
}

func (m *MockSnapshots) Latest() (*results.RunResult, error) {
	return m.result, m.err
}

func testRunResult() *results.RunResult {
	at := time.Date(2024, 6, 17, 9, 0, 0, 0, time.UTC)
	return &results.RunResult{
		Summary: results.Summary{
			TotalCourses:       3,
			TotalCancellations: 1,
			AnalyzedAt:         &at,
		},
		Cancellations: []results.Cancellation{
			{Course: "Seminar", Canceled: true, CourseID: 101, AnnouncementID: 5},
		},
	}
}

func TestGetKyukou(t *testing.T) {
	runner := &MockRunner{result: testRunResult()}
	server := NewServer(NewHandler(runner, &MockSnapshots{}))

	req := httptest.NewRequest("GET", "/api/kyukou?canvas_token=abc&force_refresh=true", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if runner.gotToken != "abc" {
		t.Errorf("Expected canvas_token to be passed through, got %q", runner.gotToken)
	}
	if !runner.gotForce {
		t.Error("Expected force_refresh=true to be honored")
	}

	var body results.RunResult
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Summary.TotalCancellations != 1 || len(body.Cancellations) != 1 {
		t.Errorf("Response body mismatch: %+v", body)
	}
}

func TestGetKyukouDefaults(t *testing.T) {
	runner := &MockRunner{result: testRunResult()}
	server := NewServer(NewHandler(runner, &MockSnapshots{}))

	req := httptest.NewRequest("GET", "/api/kyukou", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if runner.gotToken != "" {
		t.Errorf("Expected empty token by default, got %q", runner.gotToken)
	}
	if runner.gotForce {
		t.Error("Expected force_refresh to default to false")
	}
}

func TestGetKyukouRunFailure(t *testing.T) {
	runner := &MockRunner{err: fmt.Errorf("course list is empty")}
	server := NewServer(NewHandler(runner, &MockSnapshots{}))

	req := httptest.NewRequest("GET", "/api/kyukou", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["details"] != "course list is empty" {
		t.Errorf("Expected error details in response, got %v", body)
	}
}

func TestGetLatest(t *testing.T) {
	snapshot := testRunResult()
	snapshot.Summary.Source = results.SourceCachedFile
	snapshot.Summary.SourceFile = "kyukou_results_2024-06-17_09-00-00.json"

	runner := &MockRunner{}
	server := NewServer(NewHandler(runner, &MockSnapshots{result: snapshot}))

	req := httptest.NewRequest("GET", "/api/kyukou/latest", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if runner.invocations != 0 {
		t.Error("Latest query must not trigger a run")
	}

	var body results.RunResult
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Summary.Source != results.SourceCachedFile {
		t.Errorf("Expected source cached_file, got %q", body.Summary.Source)
	}
}

func TestGetLatestNoResults(t *testing.T) {
	empty := &results.RunResult{
		Summary:       results.Summary{Source: results.SourceNoResults},
		Cancellations: []results.Cancellation{},
	}
	server := NewServer(NewHandler(&MockRunner{}, &MockSnapshots{result: empty}))

	req := httptest.NewRequest("GET", "/api/kyukou/latest", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body results.RunResult
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Summary.Source != results.SourceNoResults {
		t.Errorf("Expected source no_results, got %q", body.Summary.Source)
	}
	if body.Summary.TotalCancellations != 0 {
		t.Errorf("Expected 0 cancellations, got %d", body.Summary.TotalCancellations)
	}
}

func TestGetHealth(t *testing.T) {
	server := NewServer(NewHandler(&MockRunner{}, &MockSnapshots{}))

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	server := NewServer(NewHandler(&MockRunner{}, &MockSnapshots{}))

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected open CORS, got %q", got)
	}

	// Preflight short-circuits with 204
	req = httptest.NewRequest("OPTIONS", "/api/kyukou", nil)
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != 204 {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
}
