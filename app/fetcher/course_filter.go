package fetcher

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CourseFilter restricts which courses get analyzed, with case-insensitive
// substring rules on course names. Excludes win over includes; an empty
// filter matches everything.
type CourseFilter struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

type courseFilterFile struct {
	Courses CourseFilter `yaml:"courses"`
}

// LoadCourseFilter reads the optional watch-list file. An empty path yields a
// permissive filter.
func LoadCourseFilter(path string) (*CourseFilter, error) {
	if path == "" {
		return &CourseFilter{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read courses file: %w", err)
	}

	var parsed courseFilterFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse courses file: %w", err)
	}

	return &parsed.Courses, nil
}

// Match reports whether a course with the given name should be analyzed.
func (f *CourseFilter) Match(name string) bool {
	for _, exclude := range f.Excludes {
		if containsFold(name, exclude) {
			return false
		}
	}

	if len(f.Includes) == 0 {
		return true
	}

	for _, include := range f.Includes {
		if containsFold(name, include) {
			return true
		}
	}

	return false
}

func containsFold(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}
