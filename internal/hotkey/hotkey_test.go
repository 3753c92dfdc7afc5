package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombo(t *testing.T) {
	keys, err := ParseCombo("Ctrl+Shift+Q")
	require.NoError(t, err)
	assert.Equal(t, []string{"q", "shift", "ctrl"}, keys)

	keys, err = ParseCombo("f12")
	require.NoError(t, err)
	assert.Equal(t, []string{"f12"}, keys)
}

func TestParseCombo_Malformed(t *testing.T) {
	for _, combo := range []string{"", "ctrl++q", "ctrl+"} {
		_, err := ParseCombo(combo)
		assert.Error(t, err, combo)
	}
}
