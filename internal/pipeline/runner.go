package pipeline

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/captioner/internal/config"
	"github.com/backmassage/captioner/internal/display"
	"github.com/backmassage/captioner/internal/drawtext"
	"github.com/backmassage/captioner/internal/ffmpeg"
	"github.com/backmassage/captioner/internal/logging"
	"github.com/backmassage/captioner/internal/manifest"
	"github.com/backmassage/captioner/internal/naming"
	"github.com/backmassage/captioner/internal/probe"
	"github.com/backmassage/captioner/internal/resolver"
)

// RenderFunc renders one job. [ffmpeg.Render] in production.
type RenderFunc func(ctx context.Context, req ffmpeg.Request) error

// Runner executes the jobs of one run. Probe and Render are replaceable so
// tests can run without ffmpeg.
type Runner struct {
	Cfg    *config.Config
	Log    *logging.Logger
	Probe  resolver.ProbeFunc
	Render RenderFunc
}

// New returns a Runner wired to ffprobe and ffmpeg.
func New(cfg *config.Config, log *logging.Logger) *Runner {
	return &Runner{Cfg: cfg, Log: log, Probe: probe.Dimensions, Render: ffmpeg.Render}
}

// Run is the top-level entry point: New(cfg, log).Run(ctx).
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (Summary, error) {
	return New(cfg, log).Run(ctx)
}

// source is a stream of raw jobs plus the job count when known up front.
type source struct {
	jobs  iter.Seq2[manifest.RawJob, error]
	total int
	close func() error
}

// Run processes every job and returns the summary. The returned error is
// non-nil only for setup failures; per-job failures are counted in
// Summary.Failed. Cancelling ctx stops the loop before the next job; a
// render already in progress runs to completion.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	cfg := r.Cfg
	sum := Summary{
		RunID:   uuid.NewString(),
		Mode:    cfg.Mode(),
		DryRun:  cfg.DryRun,
		Started: time.Now(),
	}

	src, err := r.openSource()
	if err != nil {
		return sum, err
	}
	defer src.close()
	sum.Total = src.total

	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return sum, fmt.Errorf("create output directory: %w", err)
		}
	}

	r.logHeader(&sum)

	opts := resolver.Options{
		OutputDir:     cfg.OutputDir,
		Suffix:        cfg.OutputSuffix,
		DefaultWidth:  cfg.DefaultWidth,
		DefaultHeight: cfg.DefaultHeight,
		Probe:         r.Probe,
	}
	if sum.Mode == config.ModeManifest {
		opts.BasePath = cfg.BasePath
	}
	claims := naming.NewClaimTracker()

	for raw, rowErr := range src.jobs {
		if ctx.Err() != nil {
			r.Log.Warn("Interrupted, %s", remaining(&sum))
			break
		}
		sum.Current++

		if rowErr != nil {
			r.fail(&sum, rowLabel(rowErr), "", rowErr)
			var rve *manifest.RowValidationError
			if !errors.As(rowErr, &rve) {
				break
			}
			continue
		}
		r.processJob(ctx, raw, opts, claims, &sum)
	}

	sum.Finished = time.Now()
	r.logSummary(&sum)
	return sum, nil
}

// openSource selects the job source for the configured mode. Every check
// that can abort the run happens here, before the output directory exists.
func (r *Runner) openSource() (source, error) {
	cfg := r.Cfg
	noop := func() error { return nil }

	switch cfg.Mode() {
	case config.ModeManifest:
		m, err := manifest.Open(cfg.ManifestPath)
		if err != nil {
			return source{}, err
		}
		return source{jobs: m.Jobs(), close: m.Close}, nil

	case config.ModeDirectory:
		files, err := Discover(cfg.InputDir)
		if err != nil {
			return source{}, fmt.Errorf("read input directory: %w", err)
		}
		if len(files) == 0 {
			return source{}, &NoFilesFoundError{Dir: cfg.InputDir}
		}
		if err := r.validateDirs(); err != nil {
			return source{}, err
		}
		return source{jobs: sharedJobs(cfg, files), total: len(files), close: noop}, nil

	case config.ModeSingle:
		return source{jobs: sharedJobs(cfg, []string{cfg.InputFile}), total: 1, close: noop}, nil
	}
	return source{}, errors.New("no input selected: use --csv, --input or --input-dir")
}

// validateDirs rejects an output directory that is the input directory.
func (r *Runner) validateDirs() error {
	inputAbs, err := absPath(r.Cfg.InputDir)
	if err != nil {
		return fmt.Errorf("resolve input directory: %w", err)
	}
	outputAbs, err := absPath(r.Cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	return r.Cfg.ValidatePaths(inputAbs, outputAbs)
}

// sharedJobs turns the single/directory caption settings into one raw job
// per input, in the same shape a manifest row would have.
func sharedJobs(cfg *config.Config, inputs []string) iter.Seq2[manifest.RawJob, error] {
	return func(yield func(manifest.RawJob, error) bool) {
		for _, in := range inputs {
			raw := manifest.RawJob{
				Filename: in,
				Start:    resolver.FormatSeconds(cfg.Start),
				End:      resolver.FormatSeconds(cfg.End),
				Text:     cfg.Text,
				Output:   cfg.OutputName,
			}
			if cfg.Width > 0 && cfg.Height > 0 {
				raw.Width = fmt.Sprint(cfg.Width)
				raw.Height = fmt.Sprint(cfg.Height)
			}
			if !yield(raw, nil) {
				return
			}
		}
	}
}

func (r *Runner) processJob(
	ctx context.Context,
	raw manifest.RawJob,
	opts resolver.Options,
	claims *naming.ClaimTracker,
	sum *Summary,
) {
	cfg, log := r.Cfg, r.Log
	label := raw.Filename
	if raw.Line > 0 {
		label = fmt.Sprintf("line %d: %s", raw.Line, raw.Filename)
	}
	if log.Verbose() {
		log.Info("%s %s", counter(sum), label)
	}

	if partialDimensions(raw) {
		log.Debug("  Ignoring incomplete VIDEO_WIDTH/VIDEO_HEIGHT (%q x %q)", raw.Width, raw.Height)
	}

	job, err := resolver.Resolve(ctx, raw, opts)
	if err != nil {
		r.fail(sum, raw.Filename, "", err)
		return
	}
	if job.Start < 0 || job.End <= job.Start {
		r.fail(sum, job.Input, job.Output, &TimingWindowError{Line: job.Line, Start: job.Start, End: job.End})
		return
	}
	log.Debug("  Resolved: %s", job.Describe())

	if prior, collided := claims.Claim(job.Input, job.Output); collided {
		log.Warn("Output %s is also written by %s; the later job overwrites it", job.Output, prior)
	}

	if cfg.SkipExisting {
		if _, err := os.Stat(job.Output); err == nil {
			sum.Skipped++
			r.outcome(sum, display.OutcomeSkip, job.Input, job.Output, "exists")
			log.Debug("  Skip (exists): %s", job.Output)
			return
		}
	}

	if cfg.DryRun {
		sum.Succeeded++
		r.outcome(sum, display.OutcomeOK, job.Input, job.Output, "dry run")
		log.Debug("  [DRY] %s -> %s", job.Input, job.Output)
		return
	}

	// FILENAME_OUTPUT may name a subdirectory of the output directory.
	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		r.fail(sum, job.Input, job.Output, fmt.Errorf("create output directory: %w", err))
		return
	}

	filter := drawtext.Build(job, cfg.Style)
	log.Debug("  Filter: %s", filter)

	req := ffmpeg.Request{
		Input:      job.Input,
		Output:     job.Output,
		Filter:     filter.String(),
		Trim:       cfg.Style.Duration,
		VideoCodec: cfg.VideoCodec,
		Preset:     cfg.Preset,
		CRF:        cfg.CRF,
		Verbose:    cfg.Verbose,
	}
	if log.Verbose() {
		log.Render("Rendering %s -> %s", filepath.Base(job.Input), filepath.Base(job.Output))
	}
	log.Debug("  Command: %s %s", ffmpeg.DefaultBinary, strings.Join(ffmpeg.BuildArgs(req), " "))

	before, err := os.Stat(job.Output)
	if err != nil {
		before = nil
	}
	start := time.Now()
	// An interrupt stops the loop between jobs, never mid-render.
	if err := r.Render(context.WithoutCancel(ctx), req); err != nil {
		removePartial(job.Output, before)
		r.fail(sum, job.Input, job.Output, err)
		return
	}

	sum.Succeeded++
	var size int64
	if fi, err := os.Stat(job.Output); err == nil {
		size = fi.Size()
		sum.TotalOutputBytes += size
	}
	elapsed := display.FormatElapsed(time.Since(start))
	r.outcome(sum, display.OutcomeOK, job.Input, job.Output, elapsed)
	if log.Verbose() {
		log.Success("Done in %s (%s)", elapsed, display.FormatBytes(size))
	}
}

// fail counts a failed job and reports why.
func (r *Runner) fail(sum *Summary, input, output string, err error) {
	sum.Failed++
	r.outcome(sum, display.OutcomeFail, input, output, "")
	r.Log.Error("%s", err)

	var re *ffmpeg.RenderError
	if errors.As(err, &re) {
		if hint := ffmpeg.Hint(re.Stderr); hint != "" {
			r.Log.Error("  Hint: %s", hint)
		}
		if r.Log.Verbose() {
			logStderr(r.Log, re.Stderr)
		}
	}
}

// outcome prints the quiet-mode job line; verbose runs log details instead.
func (r *Runner) outcome(sum *Summary, o display.Outcome, input, output, note string) {
	if r.Log.Verbose() {
		return
	}
	r.Log.Plain(display.JobLine(o, sum.Current, sum.Total, input, output, note))
}

// removePartial deletes what a failed render left at path. An output that
// existed before the render and was not touched by it is kept.
func removePartial(path string, before os.FileInfo) {
	after, err := os.Stat(path)
	if err != nil {
		return
	}
	if before != nil && after.ModTime().Equal(before.ModTime()) && after.Size() == before.Size() {
		return
	}
	os.Remove(path)
}

func logStderr(log *logging.Logger, stderr string) {
	if stderr == "" {
		return
	}
	log.Error("Last ffmpeg output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}

// --- Logging helpers ---

func (r *Runner) logHeader(sum *Summary) {
	cfg, log := r.Cfg, r.Log
	log.Info("Run %s", sum.RunID)
	switch sum.Mode {
	case config.ModeManifest:
		log.Info("Manifest: %s", cfg.ManifestPath)
		if cfg.BasePath != "" {
			log.Info("Base path: %s", cfg.BasePath)
		}
	case config.ModeDirectory:
		log.Info("Found %d videos in %s", sum.Total, cfg.InputDir)
	case config.ModeSingle:
		log.Info("Input: %s", cfg.InputFile)
	}
	log.Info("Output: %s", cfg.OutputDir)
	if cfg.DryRun {
		log.Warn("DRY RUN: nothing will be rendered")
	}

	s := cfg.Style
	log.Debug("Style: font %s %dpx %s, align %s/%s, effect %s", s.FontFile, s.FontSize, s.FontColor, s.Align, s.TextAlign, s.Effect)
	log.Debug("Encode: %s preset %s crf %d, audio copy", cfg.VideoCodec, cfg.Preset, cfg.CRF)
}

func (r *Runner) logSummary(sum *Summary) {
	r.Log.Plain("")
	r.Log.Plain(display.RenderSummary(sum.View()))
	if sum.TotalOutputBytes > 0 {
		r.Log.Info("Total output: %s", display.FormatBytes(sum.TotalOutputBytes))
	}
}

func counter(sum *Summary) string {
	if sum.Total > 0 {
		return fmt.Sprintf("[%d/%d]", sum.Current, sum.Total)
	}
	return fmt.Sprintf("[%d]", sum.Current)
}

func remaining(sum *Summary) string {
	if sum.Total > 0 {
		return fmt.Sprintf("%d of %d jobs not started", sum.Total-sum.Current, sum.Total)
	}
	return "remaining rows not started"
}

func rowLabel(err error) string {
	var rve *manifest.RowValidationError
	if errors.As(err, &rve) {
		return fmt.Sprintf("line %d", rve.Line)
	}
	return "manifest"
}

func partialDimensions(raw manifest.RawJob) bool {
	if raw.Width == "" && raw.Height == "" {
		return false
	}
	_, _, ok := resolver.ManifestDimensions(raw)
	return !ok
}

// absPath returns the absolute path with symlinks resolved. A path that
// does not exist yet is returned absolute but unresolved.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
