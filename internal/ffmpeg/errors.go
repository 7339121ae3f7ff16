package ffmpeg

import (
	"fmt"
	"regexp"
	"strings"
)

// RenderError reports a failed ffmpeg run. ExitCode is -1 when the process
// could not be started or was killed by a signal.
type RenderError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("ffmpeg exited with status %d", e.ExitCode)
	if e.ExitCode < 0 {
		msg = fmt.Sprintf("ffmpeg failed: %v", e.Err)
	}
	if last := e.LastLine(); last != "" {
		msg += ": " + last
	}
	return msg
}

func (e *RenderError) Unwrap() error { return e.Err }

// LastLine returns the last non-empty stderr line, usually the one that
// names the problem.
func (e *RenderError) LastLine() string {
	lines := strings.Split(strings.TrimSpace(e.Stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}

// Pre-compiled patterns for classifying ffmpeg stderr. Checked in order by
// [Hint]; the first match wins.
var hints = []struct {
	re   *regexp.Regexp
	hint string
}{
	{
		regexp.MustCompile(`No such filter: '?drawtext'?|Filter not found`),
		"this ffmpeg build lacks the drawtext filter (needs --enable-libfreetype)",
	},
	{
		regexp.MustCompile(`(?i)Could not load font|Cannot find a valid font|cannot open resource`),
		"font file could not be loaded; check --font",
	},
	{
		regexp.MustCompile(`Undefined constant or missing '\(' in|Invalid chars .* at the end of expression|` +
			`Error when evaluating the expression|Failed to configure input pad`),
		"drawtext expression was rejected; check alignment, effect and timing values",
	},
	{
		regexp.MustCompile(`(?i)Error parsing options for filter|Option not found|Unable to parse option value`),
		"drawtext option was rejected; an older ffmpeg may not support text_align",
	},
	{
		regexp.MustCompile(`No such file or directory|Invalid data found when processing input`),
		"input is missing or not a readable video",
	},
	{
		regexp.MustCompile(`Unknown encoder|Encoder not found`),
		"video codec is not available in this ffmpeg build",
	},
	{
		regexp.MustCompile(`No space left on device|Permission denied`),
		"output could not be written",
	},
}

// Hint returns a short explanation for a known ffmpeg failure, or "".
func Hint(stderr string) string {
	for _, h := range hints {
		if h.re.MatchString(stderr) {
			return h.hint
		}
	}
	return ""
}
