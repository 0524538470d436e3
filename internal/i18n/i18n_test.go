package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		accept   string
		expected language.Tag
	}{
		{"en-US,en;q=0.9", language.English},
		{"de-DE,de;q=0.9", language.German},
		{"fr-FR", language.English},
		{"", language.English},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected.String(), MatchLanguage(tt.accept).String(), "Accept: %s", tt.accept)
	}
}

func TestLangFromEnv(t *testing.T) {
	tests := []struct {
		lcAll, lang string
		expected    language.Tag
	}{
		{"", "de_DE.UTF-8", language.German},
		{"en_GB.UTF-8", "de_DE.UTF-8", language.English},
		{"", "C", language.English},
		{"", "", language.English},
		{"", "fr_FR@euro", language.English},
	}
	for _, tt := range tests {
		t.Setenv("LC_ALL", tt.lcAll)
		t.Setenv("LC_MESSAGES", "")
		t.Setenv("LANG", tt.lang)
		assert.Equal(t, tt.expected.String(), LangFromEnv().String(), "LC_ALL=%q LANG=%q", tt.lcAll, tt.lang)
	}
}

func TestCatalog(t *testing.T) {
	assert.Equal(t, "Fehler: boom\n", NewPrinter(language.German).Sprintf(MsgError, "boom"))
	assert.Equal(t, "Error: boom\n", NewPrinter(language.English).Sprintf(MsgError, "boom"))
	assert.Equal(t, "3 interface(s), 2 up\n", NewPrinter(language.English).Sprintf(MsgInterfaces, 3, 2))
}

func TestPrinterContext(t *testing.T) {
	p := GetPrinter(context.Background())
	assert.NotNil(t, p)

	de := NewPrinter(language.German)
	ctx := WithPrinter(context.Background(), de)
	assert.Same(t, de, GetPrinter(ctx))
}

func TestNewCLIPrinter(t *testing.T) {
	t.Setenv("LC_ALL", "de_DE.UTF-8")
	assert.Equal(t, "Keine Änderungen.\n", NewCLIPrinter().Sprintf(MsgNothingToDo))
}
