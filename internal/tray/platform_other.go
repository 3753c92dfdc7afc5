//go:build !windows

package tray

import (
	"github.com/rs/zerolog/log"
)

func trayIcon() ([]byte, error) {
	return iconPNG()
}

func showInfo(title, text string) error {
	log.Info().Str("title", title).Msg(text)
	return nil
}
