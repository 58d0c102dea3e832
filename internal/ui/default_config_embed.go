package ui

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/easyface/easyface/internal/config"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

//go:embed help.md
var embeddedHelp []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     config.File
	embeddedConfigErr  error
)

// DefaultConfigYAML returns a copy of the embedded default config YAML bytes.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// EmbeddedDefaultConfig parses and returns the embedded default configuration.
func EmbeddedDefaultConfig() (config.File, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		embeddedConfig, embeddedConfigErr = config.Parse(embeddedDefaultConfig)
		if embeddedConfigErr == nil {
			embeddedConfigErr = embeddedConfig.Validate()
		}
	})
	return embeddedConfig, embeddedConfigErr
}
