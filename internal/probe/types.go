package probe

import "strconv"

// VideoStream holds the parsed properties of a single video stream.
type VideoStream struct {
	Index         int
	Codec         string
	CodedWidth    int
	CodedHeight   int
	Rotation      int // normalized to 0, 90, 180 or 270
	IsAttachedPic bool
}

// Result is the parsed output of one ffprobe call. PrimaryVideo is the first
// video stream that is not attached cover art (nil if none).
type Result struct {
	Filename     string
	Duration     float64
	Size         int64
	PrimaryVideo *VideoStream
}

// Dimensions returns the display width and height of the primary video
// stream. ok is false when there is no usable video stream.
func (r *Result) Dimensions() (width, height int, ok bool) {
	v := r.PrimaryVideo
	if v == nil || v.CodedWidth <= 0 || v.CodedHeight <= 0 {
		return 0, 0, false
	}
	if v.Rotation == 90 || v.Rotation == 270 {
		return v.CodedHeight, v.CodedWidth, true
	}
	return v.CodedWidth, v.CodedHeight, true
}

// Resolution returns "WxH" display dimensions, or "unknown".
func (r *Result) Resolution() string {
	w, h, ok := r.Dimensions()
	if !ok {
		return "unknown"
	}
	return strconv.Itoa(w) + "x" + strconv.Itoa(h)
}
