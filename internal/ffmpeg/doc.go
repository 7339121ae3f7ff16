// Package ffmpeg renders a caption onto a video by running ffmpeg once
// with a drawtext filter.
//
// [BuildArgs] composes the argument list through ffmpeg-go: the input, the
// -vf filter, video codec settings, stream-copied audio and an optional
// duration trim. [Render] runs it and reports failures as a [RenderError]
// carrying the exit status and captured stderr. Failures are never retried.
// [Hint] maps well-known stderr messages to a short explanation.
package ffmpeg
