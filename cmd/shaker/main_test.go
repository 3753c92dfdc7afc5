package main

import (
	"bytes"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantwpatil/shake-to-enlarge/internal/config"
	"github.com/vedantwpatil/shake-to-enlarge/internal/cursor"
)

func execute(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()

	var got *config.Config
	cmd := newRootCmd(config.NewViper(), func(cfg *config.Config) error {
		got = cfg
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return got, cmd.Execute()
}

func TestRootCmd_Defaults(t *testing.T) {
	cfg, err := execute(t)
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), cfg)
}

func TestRootCmd_FlagsOverridePreset(t *testing.T) {
	cfg, err := execute(t,
		"--preset", "classic",
		"--edges", "4",
		"--kinds", "hand,wait",
		"--delay", "750ms",
		"--tray=false",
		"--hotkey", "",
	)
	require.NoError(t, err)

	assert.Equal(t, "classic", cfg.Preset)
	assert.Equal(t, 100, cfg.Detection.Distance)
	assert.Equal(t, 4, cfg.Detection.Edges)
	assert.Equal(t, []string{"hand", "wait"}, cfg.Overlay.Kinds)
	assert.Equal(t, 750*time.Millisecond, cfg.Overlay.Delay)
	assert.False(t, cfg.Tray.Enabled)
	assert.Empty(t, cfg.Tray.Hotkey)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	cfg, err := execute(t, "--width", "0")

	require.Error(t, err)
	assert.Nil(t, cfg, "run is not called")
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(config.NewViper(), func(*config.Config) error { return nil })
	cmd.SetArgs([]string{"version"})
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "dev\n", out.String())
}

func TestOpenRegistry_DryRunSeedsKinds(t *testing.T) {
	cfg := config.NewConfig()
	cfg.DryRun = true

	reg, err := openRegistry(cfg)
	require.NoError(t, err)

	b, err := reg.Load(cursor.Hand)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(dryRunCursorSize, dryRunCursorSize), b.Size())

	_, err = reg.Load(cursor.SizeAll)
	assert.ErrorIs(t, err, cursor.ErrResourceLoad)
}
