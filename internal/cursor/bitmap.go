package cursor

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Bitmap is a platform-neutral copy of a cursor image.
//
// Mask holds the AND plane (255 where the screen shows through) and Color the
// XOR/color plane. Both planes share the same bounds, anchored at the origin.
type Bitmap struct {
	Mask    *image.Gray
	Color   *image.RGBA
	Hotspot image.Point
	Icon    bool
}

// Size returns the dimensions of the mask plane.
func (b Bitmap) Size() image.Point {
	if b.Mask == nil {
		return image.Point{}
	}
	return b.Mask.Bounds().Size()
}

// Interpolators selectable by name.
var interpolators = map[string]draw.Interpolator{
	"nearest":    draw.NearestNeighbor,
	"approx":     draw.ApproxBiLinear,
	"bilinear":   draw.BiLinear,
	"catmullrom": draw.CatmullRom,
}

// ParseFilter returns the interpolator registered under name.
func ParseFilter(name string) (draw.Interpolator, error) {
	interp, ok := interpolators[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown scaling filter %q", name)
	}
	return interp, nil
}

// ScaleBitmap resizes both planes of src to width x height using interp and
// rescales the hotspot linearly. The result shares no pixel memory with src.
func ScaleBitmap(src Bitmap, width, height int, interp draw.Interpolator) (Bitmap, error) {
	if width <= 0 || height <= 0 {
		return Bitmap{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	size := src.Size()
	if size.X <= 0 || size.Y <= 0 {
		return Bitmap{}, fmt.Errorf("%w: empty source bitmap", ErrInvalidSize)
	}
	if interp == nil {
		interp = draw.NearestNeighbor
	}

	target := image.Rect(0, 0, width, height)

	mask := image.NewGray(target)
	interp.Scale(mask, target, src.Mask, src.Mask.Bounds(), draw.Src, nil)

	color := image.NewRGBA(target)
	if src.Color != nil {
		interp.Scale(color, target, src.Color, src.Color.Bounds(), draw.Src, nil)
	}

	return Bitmap{
		Mask:  mask,
		Color: color,
		Hotspot: image.Point{
			X: src.Hotspot.X * width / size.X,
			Y: src.Hotspot.Y * height / size.Y,
		},
		Icon: src.Icon,
	}, nil
}
