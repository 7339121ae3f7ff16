// Package probe reads video dimensions with a single ffprobe JSON query.
//
// [Probe] shells out through ffmpeg-go; [ParseJSON] turns the raw output into
// a [Result] and is exported so tests can feed canned ffprobe JSON. Width and
// Height on a Result are display dimensions: streams tagged with a 90 or 270
// degree rotation have their coded dimensions swapped.
package probe
