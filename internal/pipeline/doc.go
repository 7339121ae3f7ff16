// Package pipeline runs caption jobs: it picks the job source for the
// configured mode, resolves and renders each job in order, and reports a
// summary.
//
// Jobs come from one of three sources:
//
//   - single: one --input video with the shared --text/--start/--end
//   - directory: every .mp4/.mov directly inside --input-dir (not recursive)
//   - manifest: one job per CSV row, streamed
//
// Jobs run strictly one at a time. A failed job is logged and counted and
// the run moves on; only setup failures (unreadable manifest, missing
// columns, empty directory, unusable output directory) abort the run. The
// output directory is created once, before the first job, and never in a
// dry run.
package pipeline
