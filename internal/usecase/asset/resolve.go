package asset

import "github.com/fhuszti/assets-cdn-go/internal/port"

// Dimensions is an exact resize target. Both axes are always > 0.
type Dimensions struct {
	Width  int
	Height int
}

// ResolveTarget maps the overlapping resize parameters plus the known source
// dimensions to an exact target, or nil when the original bytes should be
// served untouched. The first matching rule wins, regardless of which other
// parameters are also set:
//
//  1. size: square target bounded by the shortest source side
//  2. max_side: clamp the longer source side, scale the other by the same
//     ratio, truncating toward zero
//  3. width and height: each axis clamped to the source independently, so
//     the aspect ratio may change
//  4. width only: clamp width, derive height from the source aspect ratio
//  5. height only: symmetric to 4
//
// No rule upscales beyond the source dimensions; the trailing DPR multiplier
// is the only way the output can exceed them.
func ResolveTarget(p port.ResizeParams, srcWidth, srcHeight int) *Dimensions {
	shortest := min(srcWidth, srcHeight)

	var d Dimensions
	switch {
	case p.Size > 0:
		s := min(p.Size, shortest)
		d = Dimensions{Width: s, Height: s}
	case p.MaxSide > 0:
		if shortest == srcWidth {
			h := min(srcHeight, p.MaxSide)
			d = Dimensions{
				Width:  int(float64(srcWidth) * float64(h) / float64(srcHeight)),
				Height: h,
			}
		} else {
			w := min(srcWidth, p.MaxSide)
			d = Dimensions{
				Width:  w,
				Height: int(float64(srcHeight) * float64(w) / float64(srcWidth)),
			}
		}
	case p.Width > 0 && p.Height > 0:
		d = Dimensions{Width: min(srcWidth, p.Width), Height: min(srcHeight, p.Height)}
	case p.Width > 0:
		w := min(srcWidth, p.Width)
		d = Dimensions{
			Width:  w,
			Height: int(float64(w) * float64(srcHeight) / float64(srcWidth)),
		}
	case p.Height > 0:
		h := min(srcHeight, p.Height)
		d = Dimensions{
			Width:  int(float64(h) * float64(srcWidth) / float64(srcHeight)),
			Height: h,
		}
	default:
		return nil
	}

	dpr := p.DPR
	if dpr <= 0 {
		dpr = 1.0
	}
	d.Width = int(float64(d.Width) * dpr)
	d.Height = int(float64(d.Height) * dpr)

	// keep both axes strictly positive after truncation
	d.Width = max(d.Width, 1)
	d.Height = max(d.Height, 1)

	return &d
}
