package fetcher

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCourseFilterEmptyPath(t *testing.T) {
	filter, err := LoadCourseFilter("")
	if err != nil {
		t.Fatal(err)
	}

	if !filter.Match("Any Course At All") {
		t.Error("Expected permissive filter for empty path")
	}
}

func TestLoadCourseFilterFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
courses:
  includes:
    - "seminar"
  excludes:
    - "physical education"
`
	path := filepath.Join(dir, "courses.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	filter, err := LoadCourseFilter(path)
	if err != nil {
		t.Fatal(err)
	}

	if !filter.Match("Advanced Seminar B") {
		t.Error("Expected included course to match")
	}
	if filter.Match("Linear Algebra") {
		t.Error("Expected course outside the include list to be rejected")
	}
	if filter.Match("Physical Education Seminar") {
		t.Error("Expected exclude to win over include")
	}
}

func TestLoadCourseFilterMissingFile(t *testing.T) {
	if _, err := LoadCourseFilter(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Expected error for missing filter file")
	}
}

func TestCourseFilterExcludesOnly(t *testing.T) {
	filter := &CourseFilter{Excludes: []string{"orientation"}}

	if !filter.Match("Compilers") {
		t.Error("Expected non-excluded course to match when no includes are set")
	}
	if filter.Match("New Student Orientation") {
		t.Error("Expected excluded course to be rejected")
	}
}

func TestCourseFilterCaseInsensitive(t *testing.T) {
	filter := &CourseFilter{Includes: []string{"SEMINAR"}}

	if !filter.Match("graduate seminar") {
		t.Error("Expected case-insensitive include matching")
	}
}
