package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyface/easyface/internal/config"
)

func TestEmbeddedDefaultConfigParses(t *testing.T) {
	cfg, err := EmbeddedDefaultConfig()
	require.NoError(t, err)

	greetings, ok := cfg.Category("greetings")
	require.True(t, ok)
	assert.Contains(t, greetings.Phrases, "How are you?")
	for _, c := range cfg.UI.Phrases {
		assert.NotEmpty(t, c.Phrases, "category %s has no phrases", c.ID)
	}
}

func TestDefaultConfigYAMLIsACopy(t *testing.T) {
	data := DefaultConfigYAML()
	require.NotEmpty(t, data)
	data[0] = 'X'

	_, err := config.Parse(DefaultConfigYAML())
	require.NoError(t, err)
}
