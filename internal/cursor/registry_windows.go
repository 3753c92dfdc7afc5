//go:build windows

package cursor

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procLoadCursorW           = user32.NewProc("LoadCursorW")
	procGetIconInfo           = user32.NewProc("GetIconInfo")
	procCreateIconIndirect    = user32.NewProc("CreateIconIndirect")
	procDestroyCursor         = user32.NewProc("DestroyCursor")
	procSetSystemCursor       = user32.NewProc("SetSystemCursor")
	procSystemParametersInfoW = user32.NewProc("SystemParametersInfoW")
	procGetDC                 = user32.NewProc("GetDC")
	procReleaseDC             = user32.NewProc("ReleaseDC")

	procGetObjectW   = gdi32.NewProc("GetObjectW")
	procGetDIBits    = gdi32.NewProc("GetDIBits")
	procCreateBitmap = gdi32.NewProc("CreateBitmap")
	procDeleteObject = gdi32.NewProc("DeleteObject")
)

const (
	spiSetCursors = 0x0057
	biRGB         = 0
	dibRGBColors  = 0
)

type iconInfo struct {
	FIcon    int32
	XHotspot uint32
	YHotspot uint32
	HbmMask  windows.Handle
	HbmColor windows.Handle
}

type bitmapObject struct {
	BmType       int32
	BmWidth      int32
	BmHeight     int32
	BmWidthBytes int32
	BmPlanes     uint16
	BmBitsPixel  uint16
	BmBits       uintptr
}

type bitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [2]uint32
}

type systemRegistry struct{}

// NewSystemRegistry returns the Windows system cursor table.
func NewSystemRegistry() (Registry, error) {
	if err := user32.Load(); err != nil {
		return nil, err
	}
	if err := gdi32.Load(); err != nil {
		return nil, err
	}
	return systemRegistry{}, nil
}

func errnoCode(err error) uintptr {
	var errno windows.Errno
	if errors.As(err, &errno) {
		return uintptr(errno)
	}
	return 0
}

func deleteObject(h windows.Handle) {
	if h != 0 {
		procDeleteObject.Call(uintptr(h))
	}
}

func (systemRegistry) Load(kind Kind) (Bitmap, error) {
	hcur, _, err := procLoadCursorW.Call(0, uintptr(kind.SystemID()))
	if hcur == 0 {
		return Bitmap{}, loadError(kind, "LoadCursor", errnoCode(err))
	}

	var info iconInfo
	if ok, _, err := procGetIconInfo.Call(hcur, uintptr(unsafe.Pointer(&info))); ok == 0 {
		return Bitmap{}, loadError(kind, "GetIconInfo", errnoCode(err))
	}
	defer deleteObject(info.HbmMask)
	defer deleteObject(info.HbmColor)

	var bm bitmapObject
	if n, _, err := procGetObjectW.Call(uintptr(info.HbmMask), unsafe.Sizeof(bm), uintptr(unsafe.Pointer(&bm))); n == 0 {
		return Bitmap{}, loadError(kind, "GetObject", errnoCode(err))
	}

	width, maskHeight := int(bm.BmWidth), int(bm.BmHeight)
	height := maskHeight
	mono := info.HbmColor == 0
	if mono {
		// AND plane on top, XOR plane below.
		height = maskHeight / 2
	}
	if width <= 0 || height <= 0 {
		return Bitmap{}, loadError(kind, "GetObject", 0)
	}

	hdc, _, err := procGetDC.Call(0)
	if hdc == 0 {
		return Bitmap{}, loadError(kind, "GetDC", errnoCode(err))
	}
	defer procReleaseDC.Call(0, hdc)

	maskBits, err := readPlane(hdc, info.HbmMask, width, maskHeight)
	if err != nil {
		return Bitmap{}, loadError(kind, "GetDIBits(mask)", errnoCode(err))
	}

	b := Bitmap{
		Mask:    maskFromBGRA(maskBits, width, 0, height),
		Hotspot: image.Pt(int(info.XHotspot), int(info.YHotspot)),
		Icon:    info.FIcon != 0,
	}
	if mono {
		b.Color = colorFromBGRA(maskBits, width, height, height, false)
		return b, nil
	}

	colorBits, err := readPlane(hdc, info.HbmColor, width, height)
	if err != nil {
		return Bitmap{}, loadError(kind, "GetDIBits(color)", errnoCode(err))
	}
	b.Color = colorFromBGRA(colorBits, width, 0, height, true)
	return b, nil
}

// readPlane copies hbm as 32bpp top-down BGRA rows.
func readPlane(hdc uintptr, hbm windows.Handle, width, height int) ([]byte, error) {
	bi := bitmapInfo{Header: bitmapInfoHeader{
		BiWidth:       int32(width),
		BiHeight:      -int32(height),
		BiPlanes:      1,
		BiBitCount:    32,
		BiCompression: biRGB,
	}}
	bi.Header.BiSize = uint32(unsafe.Sizeof(bi.Header))

	bits := make([]byte, width*height*4)
	lines, _, err := procGetDIBits.Call(
		hdc,
		uintptr(hbm),
		0,
		uintptr(height),
		uintptr(unsafe.Pointer(&bits[0])),
		uintptr(unsafe.Pointer(&bi)),
		dibRGBColors,
	)
	if lines == 0 {
		return nil, err
	}
	return bits, nil
}

func (systemRegistry) Build(kind Kind, b Bitmap) (Handle, error) {
	size := b.Size()
	if size.X <= 0 || size.Y <= 0 || b.Color == nil {
		return 0, buildError(kind, "empty bitmap", 0)
	}

	maskBits := packMask(b.Mask)
	hbmMask, _, err := procCreateBitmap.Call(uintptr(size.X), uintptr(size.Y), 1, 1, uintptr(unsafe.Pointer(&maskBits[0])))
	if hbmMask == 0 {
		return 0, buildError(kind, "CreateBitmap(mask)", errnoCode(err))
	}
	defer deleteObject(windows.Handle(hbmMask))

	colorBits := toBGRA(b.Color)
	hbmColor, _, err := procCreateBitmap.Call(uintptr(size.X), uintptr(size.Y), 1, 32, uintptr(unsafe.Pointer(&colorBits[0])))
	if hbmColor == 0 {
		return 0, buildError(kind, "CreateBitmap(color)", errnoCode(err))
	}
	defer deleteObject(windows.Handle(hbmColor))

	info := iconInfo{
		XHotspot: uint32(b.Hotspot.X),
		YHotspot: uint32(b.Hotspot.Y),
		HbmMask:  windows.Handle(hbmMask),
		HbmColor: windows.Handle(hbmColor),
	}
	if b.Icon {
		info.FIcon = 1
	}
	hcur, _, err := procCreateIconIndirect.Call(uintptr(unsafe.Pointer(&info)))
	if hcur == 0 {
		return 0, buildError(kind, "CreateIconIndirect", errnoCode(err))
	}
	return Handle(hcur), nil
}

func (systemRegistry) Install(kind Kind, h Handle) error {
	if ok, _, err := procSetSystemCursor.Call(uintptr(h), uintptr(kind.SystemID())); ok == 0 {
		procDestroyCursor.Call(uintptr(h))
		return buildError(kind, "SetSystemCursor", errnoCode(err))
	}
	return nil
}

func (systemRegistry) ResetAll() error {
	if ok, _, err := procSystemParametersInfoW.Call(spiSetCursors, 0, 0, 0); ok == 0 {
		return fmt.Errorf("restore default cursors: %w", err)
	}
	return nil
}
