package naming

import (
	"path/filepath"
	"strings"
)

// OutputPath builds the output file path for input inside outputDir.
// custom is the optional manifest or --output-name value; suffix is
// appended to the input stem when custom is empty.
func OutputPath(input, outputDir, suffix, custom string) string {
	ext := filepath.Ext(input)
	if custom == "" {
		stem := strings.TrimSuffix(filepath.Base(input), ext)
		return filepath.Join(outputDir, stem+suffix+ext)
	}
	if HasExtension(custom) {
		return filepath.Join(outputDir, custom)
	}
	return filepath.Join(outputDir, custom+ext)
}

// HasExtension reports whether name carries a '.' after its last '/'.
func HasExtension(name string) bool {
	return strings.Contains(name[strings.LastIndex(name, "/")+1:], ".")
}

// Within reports whether path resolves inside dir.
func Within(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
