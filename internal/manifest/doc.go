// Package manifest reads CSV caption manifests.
//
// The first line is a header naming the columns; lookup is exact and
// case-sensitive. Required: filename, START_TIME, END_TIME, TEXT. Optional:
// VIDEO_WIDTH, VIDEO_HEIGHT, FILENAME_OUTPUT. Columns may appear in any
// order and unknown columns are ignored.
//
// Rows are split on every comma. Quoted fields are not supported, so a
// comma inside TEXT shifts the remaining columns; write line breaks as
// "\n" and avoid commas in caption text.
//
// [Open] fails fast with [NotFoundError] or [SchemaError] before any row is
// read. [Manifest.Jobs] then streams one [RawJob] per non-blank row; rows
// missing a required value are yielded as [RowValidationError] so callers can
// tally them and move on.
package manifest
