package asset

import (
	"testing"

	"github.com/fhuszti/assets-cdn-go/internal/port"
)

func TestResolveTarget_SizeIsSquareBoundedByShortestSide(t *testing.T) {
	d := ResolveTarget(port.ResizeParams{Size: 400}, 800, 600)
	if d == nil || d.Width != 400 || d.Height != 400 {
		t.Fatalf("got %+v, want 400x400", d)
	}

	// a size larger than the shortest side clamps to it
	d = ResolveTarget(port.ResizeParams{Size: 700}, 800, 600)
	if d == nil || d.Width != 600 || d.Height != 600 {
		t.Fatalf("got %+v, want 600x600", d)
	}
}

func TestResolveTarget_MaxSideClampsLongerSide(t *testing.T) {
	d := ResolveTarget(port.ResizeParams{MaxSide: 500}, 1920, 1080)
	if d == nil || d.Width != 500 || d.Height != 281 {
		t.Fatalf("got %+v, want 500x281", d)
	}

	// portrait source: the longer side is now the height
	d = ResolveTarget(port.ResizeParams{MaxSide: 500}, 1080, 1920)
	if d == nil || d.Width != 281 || d.Height != 500 {
		t.Fatalf("got %+v, want 281x500", d)
	}

	// max_side larger than the longer side leaves the source untouched
	d = ResolveTarget(port.ResizeParams{MaxSide: 5000}, 1920, 1080)
	if d == nil || d.Width != 1920 || d.Height != 1080 {
		t.Fatalf("got %+v, want 1920x1080", d)
	}
}

func TestResolveTarget_WidthAndHeightClampIndependently(t *testing.T) {
	// both axes clamp on their own, so the aspect ratio may distort
	d := ResolveTarget(port.ResizeParams{Width: 400, Height: 400}, 800, 300)
	if d == nil || d.Width != 400 || d.Height != 300 {
		t.Fatalf("got %+v, want 400x300", d)
	}
}

func TestResolveTarget_WidthOnlyPreservesAspect(t *testing.T) {
	d := ResolveTarget(port.ResizeParams{Width: 400}, 800, 600)
	if d == nil || d.Width != 400 || d.Height != 300 {
		t.Fatalf("got %+v, want 400x300", d)
	}

	// requested width above the source clamps to the source
	d = ResolveTarget(port.ResizeParams{Width: 1600}, 800, 600)
	if d == nil || d.Width != 800 || d.Height != 600 {
		t.Fatalf("got %+v, want 800x600", d)
	}
}

func TestResolveTarget_HeightOnlyPreservesAspect(t *testing.T) {
	d := ResolveTarget(port.ResizeParams{Height: 300}, 800, 600)
	if d == nil || d.Width != 400 || d.Height != 300 {
		t.Fatalf("got %+v, want 400x300", d)
	}
}

func TestResolveTarget_NoParamsMeansNoResize(t *testing.T) {
	if d := ResolveTarget(port.ResizeParams{Fit: "cover", DPR: 2.0}, 800, 600); d != nil {
		t.Fatalf("got %+v, want nil", d)
	}
}

func TestResolveTarget_SizeWinsOverEverything(t *testing.T) {
	p := port.ResizeParams{Size: 100, MaxSide: 200, Width: 300, Height: 400}
	d := ResolveTarget(p, 800, 600)
	if d == nil || d.Width != 100 || d.Height != 100 {
		t.Fatalf("got %+v, want 100x100", d)
	}

	p.Size = 0
	d = ResolveTarget(p, 800, 600)
	if d == nil || d.Width != 200 || d.Height != 150 {
		t.Fatalf("got %+v, want max_side to win next: 200x150", d)
	}
}

func TestResolveTarget_Idempotent(t *testing.T) {
	first := ResolveTarget(port.ResizeParams{Width: 500}, 1920, 1080)
	if first == nil {
		t.Fatal("expected a target")
	}

	again := ResolveTarget(port.ResizeParams{Width: first.Width, Height: first.Height}, first.Width, first.Height)
	if again == nil || *again != *first {
		t.Fatalf("re-resolving %+v gave %+v", first, again)
	}
}

func TestResolveTarget_DPRScaling(t *testing.T) {
	d := ResolveTarget(port.ResizeParams{Size: 200, DPR: 2.0}, 800, 600)
	if d == nil || d.Width != 400 || d.Height != 400 {
		t.Fatalf("got %+v, want 400x400", d)
	}

	// DPR is the only way to exceed the source dimensions
	d = ResolveTarget(port.ResizeParams{Size: 600, DPR: 3.0}, 800, 600)
	if d == nil || d.Width != 1800 || d.Height != 1800 {
		t.Fatalf("got %+v, want 1800x1800", d)
	}

	// monotonic: growing dpr never shrinks either axis
	prev := Dimensions{}
	for _, dpr := range []float64{0.5, 1.0, 1.5, 2.0, 3.0} {
		d := ResolveTarget(port.ResizeParams{Width: 333, DPR: dpr}, 1000, 750)
		if d.Width < prev.Width || d.Height < prev.Height {
			t.Fatalf("dpr %v shrank target: %+v -> %+v", dpr, prev, *d)
		}
		prev = *d
	}
}

func TestResolveTarget_TruncationNeverReachesZero(t *testing.T) {
	d := ResolveTarget(port.ResizeParams{Size: 10, DPR: 0.01}, 800, 600)
	if d == nil || d.Width != 1 || d.Height != 1 {
		t.Fatalf("got %+v, want 1x1", d)
	}
}
