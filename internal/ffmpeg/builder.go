package ffmpeg

import (
	"strconv"

	ffmpeggo "github.com/u2takey/ffmpeg-go"
)

// DefaultBinary is the ffmpeg executable looked up on PATH.
const DefaultBinary = "ffmpeg"

// Request describes one render.
type Request struct {
	Binary string // Empty means DefaultBinary.
	Input  string
	Output string
	Filter string  // Complete -vf filtergraph.
	Trim   float64 // Output duration in seconds; 0 keeps the full length.

	VideoCodec string
	Preset     string
	CRF        int

	Verbose bool // ffmpeg logs at info and stderr is streamed live.
}

func (r Request) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}

// BuildArgs returns the ffmpeg arguments for req, without the binary name.
// Audio is stream-copied; only video is re-encoded.
func BuildArgs(req Request) []string {
	out := ffmpeggo.KwArgs{
		"vf":  req.Filter,
		"c:v": req.VideoCodec,
		"c:a": "copy",
	}
	if req.Preset != "" {
		out["preset"] = req.Preset
	}
	if req.VideoCodec == "libx264" || req.VideoCodec == "libx265" {
		out["crf"] = strconv.Itoa(req.CRF)
	}
	if req.Trim > 0 {
		out["t"] = strconv.FormatFloat(req.Trim, 'f', -1, 64)
	}

	level := "error"
	if req.Verbose {
		level = "info"
	}

	return ffmpeggo.Input(req.Input).
		Output(req.Output, out).
		GlobalArgs("-hide_banner", "-nostdin", "-loglevel", level).
		OverWriteOutput().
		GetArgs()
}
