package tray

import (
	"context"

	"github.com/getlantern/systray"
	"github.com/rs/zerolog"
)

const (
	Title    = "ShakeToEnlarge"
	InfoText = "ShakeToEnlarge\n\nShake your mouse side to side to enlarge the cursor."
)

type Options struct {
	Tooltip string
	Logger  zerolog.Logger
}

// Tray is the notification-area icon with its Info and Exit menu.
type Tray struct {
	opts Options
	log  zerolog.Logger
	info *systray.MenuItem
	exit *systray.MenuItem
}

func New(opts Options) *Tray {
	if opts.Tooltip == "" {
		opts.Tooltip = Title
	}
	return &Tray{
		opts: opts,
		log:  opts.Logger.With().Str("component", "tray").Logger(),
	}
}

// Run shows the icon and blocks until Quit is called. ready runs once the
// menu exists. Run must be called from the main goroutine.
func (t *Tray) Run(ready func()) {
	systray.Run(func() {
		t.build()
		ready()
	}, func() {
		t.log.Debug().Msg("Tray icon removed")
	})
}

func (t *Tray) build() {
	icon, err := trayIcon()
	if err != nil {
		t.log.Warn().Err(err).Msg("Failed to render tray icon")
	} else {
		systray.SetIcon(icon)
	}
	systray.SetTooltip(t.opts.Tooltip)

	t.info = systray.AddMenuItem("Info", "About "+Title)
	systray.AddSeparator()
	t.exit = systray.AddMenuItem("Exit", "Quit "+Title)
}

// Serve handles menu clicks until ctx is done or Exit is chosen, in which
// case exit is called.
func (t *Tray) Serve(ctx context.Context, exit func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.info.ClickedCh:
			go func() {
				if err := showInfo(Title, InfoText); err != nil {
					t.log.Warn().Err(err).Msg("Failed to show info")
				}
			}()
		case <-t.exit.ClickedCh:
			t.log.Info().Msg("Exit requested from tray")
			exit()
			return
		}
	}
}

// Quit removes the icon and makes Run return.
func (t *Tray) Quit() {
	systray.Quit()
}
