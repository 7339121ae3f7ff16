package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/backmassage/captioner/internal/config"
	"github.com/backmassage/captioner/internal/term"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"short clip 7 MiB", 7340032, "7.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{850 * time.Millisecond, "850ms"},
		{12300 * time.Millisecond, "12.3s"},
		{4*time.Minute + 5*time.Second, "4m 05s"},
		{time.Hour + 2*time.Minute + 9*time.Second, "1h 02m 09s"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestJobLine(t *testing.T) {
	term.Configure(config.ColorNever)
	tests := []struct {
		name  string
		o     Outcome
		index int
		total int
		in    string
		out   string
		note  string
		want  string
	}{
		{"ok", OutcomeOK, 2, 5, "videos/clip1.mp4", "output/clip1_text.mp4", "", "[2/5] ✓ clip1.mp4 → clip1_text.mp4"},
		{"fail note", OutcomeFail, 1, 1, "a.mp4", "out/a_text.mp4", "exit 1", "[1/1] ✗ a.mp4 → a_text.mp4 (exit 1)"},
		{"skip streamed", OutcomeSkip, 3, 0, "b.mov", "", "exists", "[3] – b.mov (exists)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JobLine(tt.o, tt.index, tt.total, tt.in, tt.out, tt.note); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSummary(t *testing.T) {
	term.Configure(config.ColorNever)
	got := RenderSummary(SummaryView{
		RunID: "run-1", Mode: "manifest", Succeeded: 3, Failed: 1, Skipped: 2, Elapsed: "4.2s",
	})
	for _, want := range []string{"Summary", "Run:       run-1", "Succeeded: 3", "Failed:    1", "Skipped:   2", "Elapsed:   4.2s", "╭", "╯"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if dry := RenderSummary(SummaryView{DryRun: true}); !strings.Contains(dry, "dry run") {
		t.Errorf("dry-run title missing:\n%s", dry)
	}
}

func TestPrintBanner(t *testing.T) {
	term.Configure(config.ColorNever)
	var buf bytes.Buffer
	PrintBanner(&buf, "1.0.0")
	if !strings.Contains(buf.String(), "v1.0.0") {
		t.Errorf("banner missing version:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "\033[") {
		t.Error("banner has ANSI codes with colors disabled")
	}
}
