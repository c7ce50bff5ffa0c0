package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTurkish(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase ascii", "solar panel", "solar panel"},
		{"uppercase ascii", "SOLAR PANEL", "solar panel"},
		{"turkish letters folded", "Güneş Paneli", "gunes paneli"},
		{"dotless i", "AKÜ ŞARJ CİHAZI", "aku sarj cihazi"},
		{"capital dotted i", "İnvertör", "invertor"},
		{"mixed", "100 Ah Akü", "100 ah aku"},
		{"cedilla and umlaut", "Çömlekçi Özü", "comlekci ozu"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTurkish(tt.input))
		})
	}
}

func TestNormalizeTurkish_SearchMatchesStoredForm(t *testing.T) {
	// The same folding is applied to the stored column and the query,
	// so both spellings land on the same string.
	stored := NormalizeTurkish("100 Ah Akü")
	queryWithDiacritics := NormalizeTurkish("AKÜ")
	queryPlain := NormalizeTurkish("aku")

	assert.Contains(t, stored, queryWithDiacritics)
	assert.Contains(t, stored, queryPlain)
	assert.Equal(t, queryWithDiacritics, queryPlain)
}

func TestSearchText(t *testing.T) {
	result := SearchText("Güneş Paneli 450W", "Jinko", "")

	assert.Equal(t, "gunes paneli 450w jinko", result)
}

func TestSearchText_AllEmpty(t *testing.T) {
	assert.Equal(t, "", SearchText("", "", ""))
}
