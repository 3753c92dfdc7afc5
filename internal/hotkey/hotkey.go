package hotkey

import (
	"context"
	"fmt"
	"strings"

	hook "github.com/robotn/gohook"
	"github.com/rs/zerolog"
)

// DefaultCombo stops the utility from anywhere.
const DefaultCombo = "ctrl+shift+q"

// ParseCombo splits a "mod+mod+key" string into the key list gohook expects,
// main key first.
func ParseCombo(combo string) ([]string, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("malformed hotkey %q", combo)
		}
		keys = append(keys, p)
	}
	// Main key first, the way gohook combinations are usually written.
	last := len(keys) - 1
	keys[0], keys[last] = keys[last], keys[0]
	return keys, nil
}

// Listen registers a global key combination. The returned channel receives a
// value each time the combination is pressed; the hook is torn down when ctx
// is done.
func Listen(ctx context.Context, keys []string, log zerolog.Logger) <-chan struct{} {
	pressed := make(chan struct{}, 1)

	hook.Register(hook.KeyDown, keys, func(e hook.Event) {
		log.Debug().Strs("keys", keys).Msg("Hotkey pressed")
		select {
		case pressed <- struct{}{}:
		default:
		}
	})

	evChan := hook.Start()
	go func() {
		<-hook.Process(evChan)
		log.Debug().Msg("Hotkey listener stopped")
	}()
	go func() {
		<-ctx.Done()
		hook.End()
	}()

	log.Info().Str("combo", strings.Join(keys, "+")).Msg("Hotkey listener started")
	return pressed
}
