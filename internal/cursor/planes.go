package cursor

import "image"

// Conversions between Bitmap planes and the raw layouts GDI reads and writes:
// 32bpp top-down BGRA rows and 1bpp MSB-first rows padded to 16 bits.

func maskStride(width int) int {
	return (width + 15) / 16 * 2
}

// packMask encodes m as a monochrome bitmap; pixels >= 128 become set bits.
func packMask(m *image.Gray) []byte {
	size := m.Bounds().Size()
	stride := maskStride(size.X)
	bits := make([]byte, stride*size.Y)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			if m.GrayAt(m.Bounds().Min.X+x, m.Bounds().Min.Y+y).Y >= 128 {
				bits[y*stride+x/8] |= 0x80 >> (x % 8)
			}
		}
	}
	return bits
}

// maskFromBGRA builds a mask from rows [row, row+height) of a 32bpp buffer
// whose monochrome source was expanded to black and white.
func maskFromBGRA(bits []byte, width, row, height int) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if bits[((row+y)*width+x)*4] > 127 {
				m.Pix[y*m.Stride+x] = 0xff
			}
		}
	}
	return m
}

// colorFromBGRA copies rows [row, row+height) of a 32bpp buffer. GDI alpha is
// straight, so opaque planes are premultiplied into image.RGBA. When opaque is
// false, or the rows carry no alpha at all, the alpha channel is cleared and the
// color bytes are kept as is, which makes the platform fall back to the AND
// mask when drawing.
func colorFromBGRA(bits []byte, width, row, height int, opaque bool) *image.RGBA {
	c := image.NewRGBA(image.Rect(0, 0, width, height))
	opaque = opaque && hasAlpha(bits[row*width*4:(row+height)*width*4])
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			s := ((row+y)*width + x) * 4
			d := y*c.Stride + x*4
			if !opaque {
				c.Pix[d+0] = bits[s+2]
				c.Pix[d+1] = bits[s+1]
				c.Pix[d+2] = bits[s+0]
				continue
			}
			a := uint32(bits[s+3])
			c.Pix[d+0] = premultiply(bits[s+2], a)
			c.Pix[d+1] = premultiply(bits[s+1], a)
			c.Pix[d+2] = premultiply(bits[s+0], a)
			c.Pix[d+3] = uint8(a)
		}
	}
	return c
}

func hasAlpha(bits []byte) bool {
	for i := 3; i < len(bits); i += 4 {
		if bits[i] != 0 {
			return true
		}
	}
	return false
}

func premultiply(v uint8, a uint32) uint8 {
	return uint8((uint32(v)*a + 127) / 255)
}

// unpremultiply reverses premultiply. Zero alpha keeps v, since fully
// transparent pixels of a mask-only plane carry XOR data.
func unpremultiply(v uint8, a uint32) uint8 {
	if a == 0 || a == 255 {
		return v
	}
	u := (uint32(v)*255 + a/2) / a
	if u > 255 {
		u = 255
	}
	return uint8(u)
}

// toBGRA flattens c into 32bpp top-down BGRA rows with straight alpha.
func toBGRA(c *image.RGBA) []byte {
	size := c.Bounds().Size()
	bits := make([]byte, size.X*size.Y*4)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			s := c.PixOffset(c.Bounds().Min.X+x, c.Bounds().Min.Y+y)
			d := (y*size.X + x) * 4
			a := uint32(c.Pix[s+3])
			bits[d+0] = unpremultiply(c.Pix[s+2], a)
			bits[d+1] = unpremultiply(c.Pix[s+1], a)
			bits[d+2] = unpremultiply(c.Pix[s+0], a)
			bits[d+3] = uint8(a)
		}
	}
	return bits
}
