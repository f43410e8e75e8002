package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const snapshotPrefix = "kyukou_results_"

// Store writes one timestamped snapshot file per completed run and serves the
// most recent one on demand. Filenames embed the run timestamp so that
// lexicographic order equals chronological order.
type Store struct {
	dir string
}

func NewStore(resultsDir string) *Store {
	return &Store{dir: resultsDir}
}

// Write persists a run result as a new snapshot and returns the filename.
func (s *Store) Write(result *RunResult, at time.Time) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	name := snapshotPrefix + at.Format("2006-01-02_15-04-05") + ".json"

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize run result: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	return name, nil
}

// Latest returns the most recent snapshot without triggering a run. When no
// snapshot exists the result is an explicit empty RunResult whose summary
// source tells the caller why.
func (s *Store) Latest() (*RunResult, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return emptyResult(SourceNoData), nil
		}
		return nil, fmt.Errorf("failed to list results directory: %w", err)
	}

	var snapshots []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			snapshots = append(snapshots, entry.Name())
		}
	}

	if len(snapshots) == 0 {
		return emptyResult(SourceNoResults), nil
	}

	sort.Strings(snapshots)
	newest := snapshots[len(snapshots)-1]

	data, err := os.ReadFile(filepath.Join(s.dir, newest))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", newest, err)
	}

	var result RunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", newest, err)
	}

	result.Summary.Source = SourceCachedFile
	result.Summary.SourceFile = newest

	return &result, nil
}

func emptyResult(source string) *RunResult {
	return &RunResult{
		Summary: Summary{
			Source: source,
		},
		Cancellations: []Cancellation{},
	}
}
