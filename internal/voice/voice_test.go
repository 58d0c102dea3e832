package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "abrir calculadora", Normalize("  Abrir CALCULADORA! "))
	assert.Equal(t, "midia", Normalize("Mídia"))
	assert.Equal(t, "configuracoes", Normalize("configurações"))
	assert.Equal(t, "", Normalize("?!"))
}

func TestMatcher(t *testing.T) {
	m := NewMatcher([]Command{
		{Action: "screen:calculator", Keywords: []string{"calculator", "calculadora"}},
		{Action: "screen:media-player", Keywords: []string{"media", "mídia"}},
		{Action: "pdf:next", Keywords: []string{"next page", "próxima"}},
		{Action: "", Keywords: []string{"ignored"}},
		{Action: "empty", Keywords: []string{" "}},
	})

	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"open the calculator please", "screen:calculator", true},
		{"Abrir a Calculadora", "screen:calculator", true},
		{"midia", "screen:media-player", true},
		{"go to the next page", "pdf:next", true},
		{"PRÓXIMA", "pdf:next", true},
		{"calculators", "", false},
		{"ignored", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := m.Match(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
