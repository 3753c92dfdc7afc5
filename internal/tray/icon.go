package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
)

const iconSize = 32

// Arrow outline in icon pixels, clockwise from the tip.
var arrowShape = []image.Point{
	{6, 2}, {6, 26}, {12, 21}, {16, 30}, {20, 28}, {16, 19}, {24, 19},
}

func iconImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	inside := func(x, y int) bool {
		if x < 0 || y < 0 || x >= iconSize || y >= iconSize {
			return false
		}
		return insidePolygon(float64(x)+0.5, float64(y)+0.5, arrowShape)
	}

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black := color.NRGBA{A: 0xff}
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			if !inside(x, y) {
				continue
			}
			if inside(x-1, y) && inside(x+1, y) && inside(x, y-1) && inside(x, y+1) {
				img.SetNRGBA(x, y, white)
			} else {
				img.SetNRGBA(x, y, black)
			}
		}
	}
	return img
}

// insidePolygon is an even-odd ray casting test.
func insidePolygon(px, py float64, poly []image.Point) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		xi, yi := float64(poly[i].X), float64(poly[i].Y)
		xj, yj := float64(poly[j].X), float64(poly[j].Y)
		if (yi > py) != (yj > py) && px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			in = !in
		}
	}
	return in
}

func iconPNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, iconImage()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wrapICO embeds a PNG image as the single entry of an .ico container.
func wrapICO(pngData []byte, size int) []byte {
	const headerLen = 6 + 16

	dim := byte(size)
	if size >= 256 {
		dim = 0
	}

	var buf bytes.Buffer
	buf.Grow(headerLen + len(pngData))
	binary.Write(&buf, binary.LittleEndian, struct {
		Reserved, Type, Count uint16
	}{0, 1, 1})
	binary.Write(&buf, binary.LittleEndian, struct {
		Width, Height, Colors, Reserved uint8
		Planes, BitCount                uint16
		Size, Offset                    uint32
	}{dim, dim, 0, 0, 1, 32, uint32(len(pngData)), headerLen})
	buf.Write(pngData)
	return buf.Bytes()
}
