package transcoder

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/fhuszti/assets-cdn-go/internal/port"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestTranscode_DefaultFitPreservesAspect(t *testing.T) {
	tr := New(port.Codec{Format: port.FormatPNG}, 2)

	out, err := tr.Transcode(context.Background(), pngBytes(t, 800, 600), 400, 400, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", out.ContentType)
	}

	// contained within the 400x400 box, aspect preserved
	w, h := decodeDims(t, out.Data)
	if w != 400 || h != 300 {
		t.Errorf("output = %dx%d, want 400x300", w, h)
	}
}

func TestTranscode_CoverFillsExactTarget(t *testing.T) {
	tr := New(port.Codec{Format: port.FormatPNG}, 2)

	out, err := tr.Transcode(context.Background(), pngBytes(t, 800, 600), 400, 400, "cover")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, h := decodeDims(t, out.Data)
	if w != 400 || h != 400 {
		t.Errorf("output = %dx%d, want exactly 400x400", w, h)
	}
}

func TestTranscode_UnknownFitFallsBackToDefault(t *testing.T) {
	tr := New(port.Codec{Format: port.FormatPNG}, 2)

	out, err := tr.Transcode(context.Background(), pngBytes(t, 800, 600), 200, 200, "stretch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, h := decodeDims(t, out.Data)
	if w != 200 || h != 150 {
		t.Errorf("output = %dx%d, want 200x150", w, h)
	}
}

func TestTranscode_WebPLossy(t *testing.T) {
	q := 80
	tr := New(port.Codec{Format: port.FormatWebP, Quality: &q}, 2)

	out, err := tr.Transcode(context.Background(), pngBytes(t, 100, 100), 50, 50, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ContentType != "image/webp" {
		t.Errorf("ContentType = %q, want image/webp", out.ContentType)
	}
	if len(out.Data) == 0 {
		t.Error("empty output")
	}
	w, h := decodeDims(t, out.Data)
	if w != 50 || h != 50 {
		t.Errorf("output = %dx%d, want 50x50", w, h)
	}
}

func TestTranscode_WebPLossless(t *testing.T) {
	tr := New(port.Codec{Format: port.FormatWebP}, 2)

	out, err := tr.Transcode(context.Background(), pngBytes(t, 60, 40), 30, 20, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, h := decodeDims(t, out.Data)
	if w != 30 || h != 20 {
		t.Errorf("output = %dx%d, want 30x20", w, h)
	}
}

func TestTranscode_CorruptBytes(t *testing.T) {
	tr := New(port.Codec{Format: port.FormatPNG}, 2)

	_, err := tr.Transcode(context.Background(), []byte("definitely not an image"), 100, 100, "")
	if err == nil || !strings.Contains(err.Error(), "failed to decode image") {
		t.Fatalf("got %v, want a decode error", err)
	}
}

func TestTranscode_CancelledContext(t *testing.T) {
	tr := New(port.Codec{Format: port.FormatPNG}, 1)
	// fill the pool so the call has to wait for a slot
	tr.sem <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.Transcode(ctx, pngBytes(t, 10, 10), 5, 5, "")
	if err != context.Canceled {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
