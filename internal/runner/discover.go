package runner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// TestCase is one workload file; its name is the directory holding it.
type TestCase struct {
	Name string
	Path string
}

// DiscoverTestCases walks dir for workload files. Simulator outputs
// (execution*.txt) and CMake artifacts are skipped, as are files whose
// directory name does not start with "test".
func DiscoverTestCases(dir string) ([]TestCase, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".txt" {
			return nil
		}
		if strings.Contains(path, "execution") || strings.Contains(path, "CMake") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	cases := make([]TestCase, 0, len(paths))
	for _, path := range paths {
		name := filepath.Base(filepath.Dir(path))
		if !strings.HasPrefix(name, "test") {
			continue
		}
		cases = append(cases, TestCase{Name: name, Path: path})
	}
	return cases, nil
}
