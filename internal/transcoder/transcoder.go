package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/fhuszti/assets-cdn-go/internal/port"
)

// Transcoder decodes, resizes and re-encodes images on a bounded pool of
// workers. The pool keeps CPU-bound raster work off the request-serving
// goroutines: under load, transcodes queue on the semaphore instead of
// starving concurrent retrievals.
type Transcoder struct {
	codec port.Codec
	sem   chan struct{}
}

// compile-time check: *Transcoder must satisfy port.Transcoder
var _ port.Transcoder = (*Transcoder)(nil)

func New(codec port.Codec, workers int) *Transcoder {
	log.Println("initialising transcoder...")
	if workers <= 0 {
		workers = 4
	}
	return &Transcoder{codec: codec, sem: make(chan struct{}, workers)}
}

// Transcode runs the decode/resize/encode pipeline on a pool worker. Both
// the wait for a free slot and the wait for the result honour ctx, so a
// disconnected client abandons the work without side effects.
func (t *Transcoder) Transcode(ctx context.Context, data []byte, width, height int, fit string) (port.TranscodeOutput, error) {
	select {
	case t.sem <- struct{}{}:
	case <-ctx.Done():
		return port.TranscodeOutput{}, ctx.Err()
	}

	type result struct {
		out port.TranscodeOutput
		err error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() { <-t.sem }()
		out, err := t.transcode(data, width, height, fit)
		ch <- result{out, err}
	}()

	select {
	case res := <-ch:
		return res.out, res.err
	case <-ctx.Done():
		// the worker finishes on its own and frees its slot; the caller
		// just stops waiting for it
		return port.TranscodeOutput{}, ctx.Err()
	}
}

func (t *Transcoder) transcode(data []byte, width, height int, fit string) (port.TranscodeOutput, error) {
	// sniff the actual format; the caller-declared content type is not trusted
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return port.TranscodeOutput{}, fmt.Errorf("transcoder: failed to decode image: %w", err)
	}

	var resized image.Image
	if fit == port.FitCover {
		resized = resizeToFill(img, width, height)
	} else {
		resized = resizeToFit(img, width, height)
	}

	encoded, err := t.encode(resized)
	if err != nil {
		return port.TranscodeOutput{}, err
	}
	return port.TranscodeOutput{Data: encoded, ContentType: t.codec.ContentType()}, nil
}

// resizeToFill covers the whole target box: the source is cropped around its
// center to the target aspect ratio, then resampled with a high-quality
// kernel. Output dimensions always match the target exactly.
func resizeToFill(src image.Image, width, height int) image.Image {
	sb := src.Bounds()
	srcW, srcH := sb.Dx(), sb.Dy()

	cropW, cropH := srcW, srcH
	if srcW*height > srcH*width {
		cropW = max(srcH*width/height, 1)
	} else {
		cropH = max(srcW*height/width, 1)
	}
	x0 := sb.Min.X + (srcW-cropW)/2
	y0 := sb.Min.Y + (srcH-cropH)/2
	crop := image.Rect(x0, y0, x0+cropW, y0+cropH)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}

// resizeToFit contains the source within the target box, preserving the
// aspect ratio, with a fast bilinear kernel. The thumbnail path.
func resizeToFit(src image.Image, width, height int) image.Image {
	sb := src.Bounds()
	srcW, srcH := sb.Dx(), sb.Dy()

	w, h := width, height
	if srcW*height > srcH*width {
		h = max(srcH*width/srcW, 1)
	} else {
		w = max(srcW*height/srcH, 1)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	return dst
}

func (t *Transcoder) encode(img image.Image) ([]byte, error) {
	buf := &bytes.Buffer{}
	switch t.codec.Format {
	case port.FormatWebP:
		opts := &webp.Options{Lossless: true}
		if q := t.codec.Quality; q != nil {
			opts = &webp.Options{Quality: float32(*q)}
		}
		if err := webp.Encode(buf, img, opts); err != nil {
			return nil, fmt.Errorf("transcoder: failed to encode WebP: %w", err)
		}
	default:
		if err := png.Encode(buf, img); err != nil {
			return nil, fmt.Errorf("transcoder: failed to encode PNG: %w", err)
		}
	}
	return buf.Bytes(), nil
}
