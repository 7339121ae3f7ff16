package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/captioner/internal/config"
)

type recorder struct{ lines []string }

func (r *recorder) add(level, format string, args ...interface{}) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}
func (r *recorder) Info(f string, a ...interface{})    { r.add("INFO", f, a...) }
func (r *recorder) Success(f string, a ...interface{}) { r.add("OK", f, a...) }
func (r *recorder) Warn(f string, a ...interface{})    { r.add("WARN", f, a...) }
func (r *recorder) Error(f string, a ...interface{})   { r.add("ERROR", f, a...) }
func (r *recorder) Debug(f string, a ...interface{})   { r.add("DEBUG", f, a...) }

func (r *recorder) has(substr string) bool {
	for _, l := range r.lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

const filtersWithDrawtext = `Filters:
  T.. = Timeline support
 ... crop              V->V       Crop the input video.
 T.C drawtext          V->V       Draw text on top of video frames using libfreetype library.
`

const filtersWithout = `Filters:
 ... crop              V->V       Crop the input video.
 ... drawbox           V->V       Draw a colored box on the input video.
`

// fakeTools writes a fake ffmpeg (and optionally ffprobe) into a temp dir
// and points the package at them.
func fakeTools(t *testing.T, filters string, withProbe bool) {
	t.Helper()
	dir := t.TempDir()
	ffmpeg := fmt.Sprintf(`#!/bin/sh
case "$*" in
  *-version*) echo "ffmpeg version 7.0-test" ;;
  *-filters*) cat <<'EOF'
%sEOF
  ;;
  *filter=drawtext*) echo "  text_align <flags> set text alignment" ;;
esac
`, filters)
	write(t, filepath.Join(dir, "ffmpeg"), ffmpeg)
	if withProbe {
		write(t, filepath.Join(dir, "ffprobe"), "#!/bin/sh\necho \"ffprobe version 7.0-test\"\n")
	}

	oldF, oldP := ffmpegBinary, ffprobeBinary
	ffmpegBinary = filepath.Join(dir, "ffmpeg")
	ffprobeBinary = filepath.Join(dir, "ffprobe")
	t.Cleanup(func() { ffmpegBinary, ffprobeBinary = oldF, oldP })
}

func write(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestListsFilter(t *testing.T) {
	if !listsFilter([]byte(filtersWithDrawtext), "drawtext") {
		t.Error("drawtext not detected")
	}
	if listsFilter([]byte(filtersWithout), "drawtext") {
		t.Error("drawbox mistaken for drawtext")
	}
}

func TestCheckDeps_FfmpegMissing(t *testing.T) {
	old := ffmpegBinary
	ffmpegBinary = filepath.Join(t.TempDir(), "no-ffmpeg")
	t.Cleanup(func() { ffmpegBinary = old })

	cfg := config.DefaultConfig()
	if err := CheckDeps(&cfg); !errors.Is(err, ErrFfmpegNotFound) {
		t.Errorf("err = %v, want ErrFfmpegNotFound", err)
	}
}

func TestCheckDeps_DrawtextMissing(t *testing.T) {
	fakeTools(t, filtersWithout, true)
	cfg := config.DefaultConfig()
	if err := CheckDeps(&cfg); !errors.Is(err, ErrDrawtextUnavailable) {
		t.Errorf("err = %v, want ErrDrawtextUnavailable", err)
	}
}

func TestCheckDeps_MissingProbeIsNotFatal(t *testing.T) {
	fakeTools(t, filtersWithDrawtext, false)
	cfg := config.DefaultConfig()
	if err := CheckDeps(&cfg); err != nil {
		t.Errorf("CheckDeps: %v", err)
	}
	if ProbeAvailable() {
		t.Error("ProbeAvailable with no ffprobe")
	}
}

func TestRunCheck(t *testing.T) {
	fakeTools(t, filtersWithDrawtext, true)
	cfg := config.DefaultConfig()
	cfg.Style.FontFile = filepath.Join(t.TempDir(), "missing.ttf")

	log := &recorder{}
	if !RunCheck(&cfg, log) {
		t.Fatalf("RunCheck failed: %v", log.lines)
	}
	for _, want := range []string{
		"OK ffmpeg: ffmpeg version 7.0-test",
		"OK ffprobe: ffprobe version 7.0-test",
		"OK drawtext filter available",
		"OK drawtext supports text_align",
		"WARN Font not found",
	} {
		if !log.has(want) {
			t.Errorf("missing %q in %v", want, log.lines)
		}
	}
}

func TestRunCheck_NoDrawtext(t *testing.T) {
	fakeTools(t, filtersWithout, false)
	cfg := config.DefaultConfig()
	log := &recorder{}
	if RunCheck(&cfg, log) {
		t.Error("RunCheck succeeded without drawtext")
	}
	if !log.has("WARN ffprobe not found") || !log.has("ERROR ffmpeg was built without the drawtext filter") {
		t.Errorf("lines = %v", log.lines)
	}
}
