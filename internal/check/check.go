// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for ffmpeg, ffprobe, the drawtext filter
// and the caption font.
package check

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/backmassage/captioner/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or filter is missing.
var (
	ErrFfmpegNotFound      = errors.New("ffmpeg not found on PATH")
	ErrDrawtextUnavailable = errors.New("ffmpeg was built without the drawtext filter (needs libfreetype)")
)

// Binary names, replaceable in tests.
var (
	ffmpegBinary  = "ffmpeg"
	ffprobeBinary = "ffprobe"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here so check stays testable with a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints ffmpeg and ffprobe
// versions, drawtext availability (and text_align support) and whether the
// configured font exists. Returns false when a render could not succeed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkFfmpeg(log)
	checkFfprobe(log)
	if ok {
		ok = checkDrawtext(log)
	}
	checkFont(cfg.Style.FontFile, log)
	return ok
}

func checkFfmpeg(log Logger) bool {
	if _, err := exec.LookPath(ffmpegBinary); err != nil {
		log.Error("ffmpeg not found")
		return false
	}
	line, err := versionLine(ffmpegBinary)
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return true
	}
	log.Success("ffmpeg: %s", line)
	return true
}

// checkFfprobe reports ffprobe; without it dimensions fall back to defaults.
func checkFfprobe(log Logger) {
	if _, err := exec.LookPath(ffprobeBinary); err != nil {
		log.Warn("ffprobe not found; videos without VIDEO_WIDTH/VIDEO_HEIGHT use default dimensions")
		return
	}
	line, err := versionLine(ffprobeBinary)
	if err != nil {
		log.Warn("ffprobe found but -version failed: %v", err)
		return
	}
	log.Success("ffprobe: %s", line)
}

func checkDrawtext(log Logger) bool {
	has, err := hasDrawtext()
	if err != nil {
		log.Error("Could not list filters: %v", err)
		return false
	}
	if !has {
		log.Error("%v", ErrDrawtextUnavailable)
		return false
	}
	log.Success("drawtext filter available")

	out, err := exec.Command(ffmpegBinary, "-hide_banner", "-h", "filter=drawtext").Output()
	switch {
	case err != nil:
		log.Debug("drawtext help failed: %v", err)
	case !bytes.Contains(out, []byte("text_align")):
		log.Warn("drawtext lacks text_align (ffmpeg 6.1+); multi-line captions will fail")
	default:
		log.Success("drawtext supports text_align")
	}
	return true
}

func checkFont(path string, log Logger) {
	if path == "" {
		log.Warn("No font configured")
		return
	}
	if _, err := os.Stat(path); err != nil {
		log.Warn("Font not found: %s", path)
		return
	}
	log.Success("Font: %s", path)
}

// CheckDeps is the pre-run validation for a real render: ffmpeg must be on
// PATH and expose drawtext. A missing ffprobe is not fatal.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(ffmpegBinary); err != nil {
		return ErrFfmpegNotFound
	}
	has, err := hasDrawtext()
	if err != nil {
		return err
	}
	if !has {
		return ErrDrawtextUnavailable
	}
	return nil
}

// ProbeAvailable reports whether ffprobe is on PATH.
func ProbeAvailable() bool {
	_, err := exec.LookPath(ffprobeBinary)
	return err == nil
}

// --- internal helpers ---

func hasDrawtext() (bool, error) {
	out, err := exec.Command(ffmpegBinary, "-hide_banner", "-filters").Output()
	if err != nil {
		return false, err
	}
	return listsFilter(out, "drawtext"), nil
}

// listsFilter scans `ffmpeg -filters` output, whose rows look like
// " T.C drawtext          V->V       Draw text on top of video frames".
func listsFilter(out []byte, name string) bool {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 && fields[1] == name {
			return true
		}
	}
	return false
}

// versionLine returns the first line of `<bin> -version`.
func versionLine(bin string) (string, error) {
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		return "", err
	}
	first := strings.TrimSpace(string(out))
	if idx := strings.Index(first, "\n"); idx > 0 {
		first = first[:idx]
	}
	return first, nil
}
