package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Supported video extensions (lowercase, with leading dot).
var videoExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
}

// Discover lists the video files directly inside inputDir, matching
// extensions case-insensitively, sorted lexicographically for a
// deterministic processing order. Subdirectories are not entered.
func Discover(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if videoExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(inputDir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
