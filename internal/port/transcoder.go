package port

import "context"

// Format is the process-wide output codec family.
type Format int

const (
	FormatPNG Format = iota
	FormatWebP
)

// FitCover is the only recognised fit policy value; anything else falls back
// to the default contain/preserve-aspect behavior.
const FitCover = "cover"

// Codec is the output codec configuration, fixed at process start. Quality
// only applies to WebP: set means lossy encoding at that quality (0-100),
// nil means lossless.
type Codec struct {
	Format  Format
	Quality *int
}

func (c Codec) ContentType() string {
	if c.Format == FormatWebP {
		return "image/webp"
	}
	return "image/png"
}

func (c Codec) Ext() string {
	if c.Format == FormatWebP {
		return "webp"
	}
	return "png"
}

// TranscodeOutput is the result of a successful transcode. The byte slice is
// owned exclusively by the caller.
type TranscodeOutput struct {
	Data        []byte
	ContentType string
}

// Transcoder decodes raw image bytes, resizes them to the exact target box
// according to the fit policy, and re-encodes them with the configured codec.
type Transcoder interface {
	Transcode(ctx context.Context, data []byte, width, height int, fit string) (TranscodeOutput, error)
}
