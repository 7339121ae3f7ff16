package resolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/captioner/internal/manifest"
)

type probeStub struct {
	w, h  int
	ok    bool
	calls int
}

func (p *probeStub) fn(_ context.Context, _ string) (int, int, bool) {
	p.calls++
	return p.w, p.h, p.ok
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func baseOpts(dir string) Options {
	return Options{
		BasePath:      filepath.Join(dir, "videos"),
		OutputDir:     filepath.Join(dir, "out"),
		Suffix:        "_text",
		DefaultWidth:  1080,
		DefaultHeight: 1920,
	}
}

func TestResolve_DerivedOutput(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "videos", "clip1.mp4"))
	opts := baseOpts(dir)

	job, err := Resolve(context.Background(), manifest.RawJob{
		Line: 2, Filename: "clip1.mp4", Start: "1.5", End: "4", Text: `Hello\nWorld`,
	}, opts)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(dir, "videos", "clip1.mp4"); job.Input != want {
		t.Errorf("Input = %q, want %q", job.Input, want)
	}
	if want := filepath.Join(dir, "out", "clip1_text.mp4"); job.Output != want {
		t.Errorf("Output = %q, want %q", job.Output, want)
	}
	if job.Text != "Hello\nWorld" {
		t.Errorf("Text = %q", job.Text)
	}
	if job.Start != 1.5 || job.End != 4 || job.Line != 2 {
		t.Errorf("timing/line = %v %v %d", job.Start, job.End, job.Line)
	}
	if job.Width != 1080 || job.Height != 1920 || job.DimSource != DimFromDefault {
		t.Errorf("dims = %dx%d %s", job.Width, job.Height, job.DimSource)
	}
}

func TestResolve_CustomOutput(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "videos", "clip1.mp4"))
	opts := baseOpts(dir)

	cases := map[string]string{
		"custom1":          "custom1.mp4",
		"final_output.mov": "final_output.mov",
	}
	for custom, want := range cases {
		job, err := Resolve(context.Background(), manifest.RawJob{
			Filename: "clip1.mp4", Start: "0", End: "1", Text: "t", Output: custom,
		}, opts)
		if err != nil {
			t.Fatalf("%s: %v", custom, err)
		}
		if job.Output != filepath.Join(opts.OutputDir, want) {
			t.Errorf("%s: Output = %q, want %q", custom, job.Output, want)
		}
	}
}

func TestResolve_OutputEscapesDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "videos", "a.mp4"))
	_, err := Resolve(context.Background(), manifest.RawJob{
		Filename: "a.mp4", Start: "0", End: "1", Text: "t", Output: "../escape.mp4",
	}, baseOpts(dir))
	var ope *OutputPathError
	if !errors.As(err, &ope) {
		t.Fatalf("err = %v, want *OutputPathError", err)
	}
}

func TestResolve_InputNotFoundBeforeProbe(t *testing.T) {
	dir := t.TempDir()
	stub := &probeStub{w: 1, h: 1, ok: true}
	opts := baseOpts(dir)
	opts.Probe = stub.fn

	_, err := Resolve(context.Background(), manifest.RawJob{
		Line: 7, Filename: "missing.mp4", Start: "0", End: "1", Text: "t",
	}, opts)
	var nf *InputNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want *InputNotFoundError", err)
	}
	if nf.Line != 7 || nf.Path != filepath.Join(dir, "videos", "missing.mp4") {
		t.Errorf("got %+v", nf)
	}
	if stub.calls != 0 {
		t.Errorf("probe called %d times for a missing input", stub.calls)
	}
}

func TestResolve_NoBasePathUsesFilenameVerbatim(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "abs.mp4")
	touch(t, in)
	opts := baseOpts(dir)
	opts.BasePath = ""

	job, err := Resolve(context.Background(), manifest.RawJob{
		Filename: in, Start: "0", End: "1", Text: "t",
	}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if job.Input != in {
		t.Errorf("Input = %q, want %q", job.Input, in)
	}
}

func TestResolve_DimensionPriority(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "videos", "a.mp4"))

	cases := []struct {
		name          string
		width, height string
		probe         *probeStub
		wantW, wantH  int
		wantSrc       DimSource
		wantCalls     int
	}{
		{"manifest wins", "720", "1280", &probeStub{w: 1920, h: 1080, ok: true}, 720, 1280, DimFromManifest, 0},
		{"probe when absent", "", "", &probeStub{w: 1920, h: 1080, ok: true}, 1920, 1080, DimFromProbe, 1},
		{"partial width ignored", "720", "", &probeStub{w: 1920, h: 1080, ok: true}, 1920, 1080, DimFromProbe, 1},
		{"partial height ignored", "", "1280", &probeStub{ok: false}, 1080, 1920, DimFromDefault, 1},
		{"non-numeric ignored", "wide", "1280", &probeStub{ok: false}, 1080, 1920, DimFromDefault, 1},
		{"probe failure defaults", "", "", &probeStub{ok: false}, 1080, 1920, DimFromDefault, 1},
		{"probe zero defaults", "", "", &probeStub{w: 0, h: 0, ok: true}, 1080, 1920, DimFromDefault, 1},
		{"no probe defaults", "", "", nil, 1080, 1920, DimFromDefault, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := baseOpts(dir)
			if tc.probe != nil {
				opts.Probe = tc.probe.fn
			}
			job, err := Resolve(context.Background(), manifest.RawJob{
				Filename: "a.mp4", Start: "0", End: "1", Text: "t",
				Width: tc.width, Height: tc.height,
			}, opts)
			if err != nil {
				t.Fatal(err)
			}
			if job.Width != tc.wantW || job.Height != tc.wantH || job.DimSource != tc.wantSrc {
				t.Errorf("got %dx%d %s, want %dx%d %s",
					job.Width, job.Height, job.DimSource, tc.wantW, tc.wantH, tc.wantSrc)
			}
			if tc.probe != nil && tc.probe.calls != tc.wantCalls {
				t.Errorf("probe calls = %d, want %d", tc.probe.calls, tc.wantCalls)
			}
		})
	}
}

func TestResolve_TimingError(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "videos", "a.mp4"))

	cases := []struct {
		start, end, field string
	}{
		{"abc", "1", manifest.ColStart},
		{"0", "soon", manifest.ColEnd},
		{"NaN", "1", manifest.ColStart},
		{"0", "Inf", manifest.ColEnd},
	}
	for _, tc := range cases {
		_, err := Resolve(context.Background(), manifest.RawJob{
			Line: 3, Filename: "a.mp4", Start: tc.start, End: tc.end, Text: "t",
		}, baseOpts(dir))
		var te *TimingError
		if !errors.As(err, &te) {
			t.Fatalf("%s/%s: err = %v, want *TimingError", tc.start, tc.end, err)
		}
		if te.Field != tc.field || te.Line != 3 {
			t.Errorf("%s/%s: got field %s line %d", tc.start, tc.end, te.Field, te.Line)
		}
	}
}

func TestResolve_EndBeforeStartIsNotResolverError(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "videos", "a.mp4"))
	job, err := Resolve(context.Background(), manifest.RawJob{
		Filename: "a.mp4", Start: "5", End: "2", Text: "t",
	}, baseOpts(dir))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if job.Start != 5 || job.End != 2 {
		t.Errorf("timing changed: %v %v", job.Start, job.End)
	}
}

func TestDecodeText(t *testing.T) {
	cases := []struct{ in, want string }{
		{`Line1\nLine2`, "Line1\nLine2"},
		{`Line1\\nLine2`, "Line1\nLine2"},
		{`a\nb\\nc`, "a\nb\nc"},
		{"plain", "plain"},
		{`trailing\`, `trailing\`},
		{`\n\n`, "\n\n"},
	}
	for _, tc := range cases {
		if got := DecodeText(tc.in); got != tc.want {
			t.Errorf("DecodeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInputPath(t *testing.T) {
	if got := InputPath("", "videos/a.mp4"); got != "videos/a.mp4" {
		t.Errorf("no base: %q", got)
	}
	if got := InputPath("/media", "a.mp4"); got != filepath.Join("/media", "a.mp4") {
		t.Errorf("with base: %q", got)
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := map[float64]string{0: "0", 2: "2", 2.25: "2.25", 10.5: "10.5"}
	for in, want := range cases {
		if got := FormatSeconds(in); got != want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", in, got, want)
		}
	}
}
