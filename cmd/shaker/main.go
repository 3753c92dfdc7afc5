package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vedantwpatil/shake-to-enlarge/internal/config"
	"github.com/vedantwpatil/shake-to-enlarge/internal/cursor"
	"github.com/vedantwpatil/shake-to-enlarge/internal/hotkey"
	"github.com/vedantwpatil/shake-to-enlarge/internal/monitor"
	"github.com/vedantwpatil/shake-to-enlarge/internal/overlay"
	"github.com/vedantwpatil/shake-to-enlarge/internal/tracking"
	"github.com/vedantwpatil/shake-to-enlarge/internal/tray"
)

// Set with -ldflags "-X main.version=..."
var version = "dev"

// dryRunCursorSize is the edge of the blank cursors seeded for dry runs.
const dryRunCursorSize = 32

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := newRootCmd(config.NewViper(), run).Execute(); err != nil {
		var abortErr *overlay.AbortError
		if errors.As(err, &abortErr) {
			log.Error().Err(err).Msg("Cursor scaling failed, exiting")
		} else {
			log.Error().Err(err).Msg("Failed to execute command")
		}
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper, run func(*config.Config) error) *cobra.Command {
	def := config.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "shaker",
		Short: "Enlarge the mouse cursor when the pointer is shaken",
		Long: `shaker sits in the notification area and samples the pointer position.
A quick side-to-side shake swaps the system cursors for enlarged copies,
which are reverted to the system defaults shortly afterwards.

Every flag can also be set through a SHAKE_* environment variable,
for example SHAKE_DISTANCE=90 or SHAKE_ON_ERROR=skip.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.String(config.KeyPreset, config.DefaultPreset, fmt.Sprintf("Parameter set (%s)", strings.Join(config.PresetNames(), ", ")))
	flags.Duration(config.KeyInterval, def.Detection.Interval, "Pointer sampling interval")
	flags.Int(config.KeyDistance, def.Detection.Distance, "Minimum |dx|+|dy| per tick that counts as fast movement")
	flags.Int(config.KeyEdges, def.Detection.Edges, "Direction reversals needed to trigger")
	flags.String(config.KeyPolicy, def.Detection.Policy, "Shake counting policy (reversal, legacy)")
	flags.Int(config.KeyWidth, def.Overlay.Width, "Enlarged cursor width in pixels")
	flags.Int(config.KeyHeight, def.Overlay.Height, "Enlarged cursor height in pixels")
	flags.Duration(config.KeyDelay, def.Overlay.Delay, "How long cursors stay enlarged")
	flags.StringSlice(config.KeyKinds, def.Overlay.Kinds, "Cursor kinds to enlarge, in order")
	flags.String(config.KeyFilter, def.Overlay.Filter, "Scaling filter (nearest, approx, bilinear, catmullrom)")
	flags.String(config.KeyOnError, def.Overlay.OnError, "On a cursor scaling failure: abort (exit) or skip the kind")
	flags.String(config.KeyLogLevel, def.Logging.Level, "Log level (debug, info, warn, error)")
	flags.String(config.KeyLogFormat, def.Logging.Format, "Log output format (console, json)")
	flags.Bool(config.KeyTray, def.Tray.Enabled, "Show the notification-area icon")
	flags.String(config.KeyHotkey, def.Tray.Hotkey, "Global exit hotkey, empty to disable")
	flags.Bool(config.KeyDryRun, false, "Detect shakes without touching the system cursors")

	if err := v.BindPFlags(flags); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind flags")
	}

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func openRegistry(cfg *config.Config) (cursor.Registry, error) {
	if cfg.DryRun {
		kinds, err := cursor.ParseKinds(cfg.Overlay.Kinds)
		if err != nil {
			return nil, err
		}
		reg := cursor.NewMemoryRegistry()
		reg.SeedDefaults(dryRunCursorSize, kinds...)
		log.Warn().Msg("Dry run: system cursors will not be modified")
		return reg, nil
	}

	reg, err := cursor.NewSystemRegistry()
	if errors.Is(err, cursor.ErrUnsupported) {
		return nil, fmt.Errorf("%w (use --dry-run to try shake detection)", err)
	}
	return reg, err
}

func run(cfg *config.Config) error {
	setupLogging(cfg.Logging)

	registry, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	interp, err := cursor.ParseFilter(cfg.Overlay.Filter)
	if err != nil {
		return err
	}
	opts, err := cfg.OverlayOptions(log.Logger)
	if err != nil {
		return err
	}

	controller := overlay.NewController(cursor.NewScaler(registry, interp), registry, opts)
	mon := monitor.New(tracking.RobotgoPointer{}, controller, monitor.Options{
		Interval:   cfg.Detection.Interval,
		Thresholds: cfg.Thresholds(),
		Logger:     log.Logger,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Tray.Hotkey != "" {
		keys, err := hotkey.ParseCombo(cfg.Tray.Hotkey)
		if err != nil {
			return err
		}
		pressed := hotkey.Listen(ctx, keys, log.Logger)
		go func() {
			select {
			case <-pressed:
				log.Info().Msg("Exit hotkey pressed")
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	log.Info().
		Str("preset", cfg.Preset).
		Strs("kinds", cfg.Overlay.Kinds).
		Int("width", cfg.Overlay.Width).
		Int("height", cfg.Overlay.Height).
		Dur("delay", cfg.Overlay.Delay).
		Msg("Starting shaker")

	if !cfg.Tray.Enabled {
		return mon.Run(ctx)
	}

	t := tray.New(tray.Options{Tooltip: cfg.Tray.Tooltip, Logger: log.Logger})
	done := make(chan error, 1)
	t.Run(func() {
		go t.Serve(ctx, cancel)
		go func() {
			done <- mon.Run(ctx)
			t.Quit()
		}()
	})

	cancel()
	return <-done
}
