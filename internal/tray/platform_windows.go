//go:build windows

package tray

import (
	"golang.org/x/sys/windows"
)

// The Windows tray expects .ico data.
func trayIcon() ([]byte, error) {
	data, err := iconPNG()
	if err != nil {
		return nil, err
	}
	return wrapICO(data, iconSize), nil
}

func showInfo(title, text string) error {
	t, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return err
	}
	c, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	_, err = windows.MessageBox(0, t, c, windows.MB_OK|windows.MB_ICONINFORMATION)
	return err
}
