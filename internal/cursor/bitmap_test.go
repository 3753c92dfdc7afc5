package cursor

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"
)

func newBitmap(w, h int, hotspot image.Point) Bitmap {
	bounds := image.Rect(0, 0, w, h)
	return Bitmap{
		Mask:    image.NewGray(bounds),
		Color:   image.NewRGBA(bounds),
		Hotspot: hotspot,
	}
}

func TestScaleBitmap_Hotspot(t *testing.T) {
	src := newBitmap(32, 32, image.Pt(8, 8))

	got, err := ScaleBitmap(src, 256, 256, draw.NearestNeighbor)
	require.NoError(t, err)

	assert.Equal(t, image.Pt(64, 64), got.Hotspot)
}

func TestScaleBitmap_HotspotPerAxis(t *testing.T) {
	src := newBitmap(32, 16, image.Pt(31, 5))

	got, err := ScaleBitmap(src, 64, 48, draw.NearestNeighbor)
	require.NoError(t, err)

	assert.Equal(t, image.Pt(62, 15), got.Hotspot)
}

func TestScaleBitmap_OutputDimensions(t *testing.T) {
	sources := []image.Point{{16, 16}, {32, 32}, {48, 24}, {7, 13}}
	targets := []image.Point{{256, 256}, {64, 32}, {1, 1}, {33, 77}}

	for _, src := range sources {
		for _, dst := range targets {
			for name, interp := range interpolators {
				t.Run(fmt.Sprintf("%v_to_%v_%s", src, dst, name), func(t *testing.T) {
					got, err := ScaleBitmap(newBitmap(src.X, src.Y, image.Point{}), dst.X, dst.Y, interp)
					require.NoError(t, err)

					assert.Equal(t, dst, got.Mask.Bounds().Size())
					assert.Equal(t, dst, got.Color.Bounds().Size())
					assert.Equal(t, dst, got.Size())
				})
			}
		}
	}
}

func TestScaleBitmap_PlanesScaledIdentically(t *testing.T) {
	src := newBitmap(4, 4, image.Point{})
	red := color.RGBA{R: 0xff, A: 0xff}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				src.Mask.SetGray(x, y, color.Gray{Y: 0xff})
				src.Color.SetRGBA(x, y, red)
			}
		}
	}

	got, err := ScaleBitmap(src, 12, 12, draw.NearestNeighbor)
	require.NoError(t, err)

	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			masked := got.Mask.GrayAt(x, y).Y == 0xff
			colored := got.Color.RGBAAt(x, y) == red
			assert.Equal(t, masked, colored, "pixel (%d,%d)", x, y)
		}
	}
}

func TestScaleBitmap_DoesNotShareMemory(t *testing.T) {
	src := newBitmap(2, 2, image.Point{})

	got, err := ScaleBitmap(src, 2, 2, draw.NearestNeighbor)
	require.NoError(t, err)

	got.Mask.SetGray(0, 0, color.Gray{Y: 0xff})
	assert.Equal(t, uint8(0), src.Mask.GrayAt(0, 0).Y)
}

func TestScaleBitmap_PreservesIconFlag(t *testing.T) {
	src := newBitmap(8, 8, image.Point{})
	src.Icon = true

	got, err := ScaleBitmap(src, 16, 16, nil)
	require.NoError(t, err)

	assert.True(t, got.Icon)
}

func TestScaleBitmap_InvalidSize(t *testing.T) {
	src := newBitmap(32, 32, image.Point{})

	for _, size := range []image.Point{{0, 10}, {10, 0}, {-1, 5}} {
		_, err := ScaleBitmap(src, size.X, size.Y, draw.NearestNeighbor)
		assert.ErrorIs(t, err, ErrInvalidSize)
	}

	_, err := ScaleBitmap(Bitmap{}, 10, 10, draw.NearestNeighbor)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestParseFilter(t *testing.T) {
	interp, err := ParseFilter(" Bilinear ")
	require.NoError(t, err)
	assert.Equal(t, draw.BiLinear, interp)

	_, err = ParseFilter("lanczos")
	assert.Error(t, err)
}
