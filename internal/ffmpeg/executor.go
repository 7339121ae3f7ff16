package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Render runs ffmpeg for req and waits for it to exit. When req.Verbose is
// set, stderr is tee'd to os.Stderr in real time; otherwise it is captured
// silently for the error report.
func Render(ctx context.Context, req Request) error {
	args := BuildArgs(req)
	cmd := exec.CommandContext(ctx, req.binary(), args...)

	var stderrBuf bytes.Buffer
	if req.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &RenderError{ExitCode: code, Stderr: stderrBuf.String(), Err: err}
	}
	return nil
}
