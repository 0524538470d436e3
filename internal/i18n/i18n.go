// Package i18n selects the message printer used for CLI output.
package i18n

import (
	"context"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLang is the fallback language.
var DefaultLang = language.English

// SupportedLangs are the languages with a catalog.
var SupportedLangs = []language.Tag{
	language.English,
	language.German,
}

var matcher = language.NewMatcher(SupportedLangs)

// Message keys shared by the commands.
const (
	MsgError         = "Error: %v\n"
	MsgInterfaces    = "%d interface(s), %d up\n"
	MsgLinkSet       = "%s: %s set to %v\n"
	MsgAddrAdded     = "Added %s to %s\n"
	MsgPlanned       = "Would run:\n"
	MsgNothingToDo   = "No changes.\n"
	MsgProfileSaved  = "Saved profile %q to %s\n"
	MsgProfileDelete = "Deleted profile %q\n"
	MsgValid         = "%s is valid\n"
)

func init() {
	de := language.German
	message.SetString(de, MsgError, "Fehler: %v\n")
	message.SetString(de, MsgInterfaces, "%d Schnittstelle(n), %d aktiv\n")
	message.SetString(de, MsgLinkSet, "%s: %s auf %v gesetzt\n")
	message.SetString(de, MsgAddrAdded, "%s zu %s hinzugefügt\n")
	message.SetString(de, MsgPlanned, "Würde ausführen:\n")
	message.SetString(de, MsgNothingToDo, "Keine Änderungen.\n")
	message.SetString(de, MsgProfileSaved, "Profil %q in %s gespeichert\n")
	message.SetString(de, MsgProfileDelete, "Profil %q gelöscht\n")
	message.SetString(de, MsgValid, "%s ist gültig\n")
}

type contextKey struct{}

var printerKey = contextKey{}

// MatchLanguage returns the best supported match for an Accept-Language
// style list.
func MatchLanguage(accept string) language.Tag {
	tags, _, _ := language.ParseAcceptLanguage(accept)
	tag, _, _ := matcher.Match(tags...)
	return baseOf(tag)
}

// NewPrinter returns a message printer for the given language.
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// WithPrinter returns a new context carrying p.
func WithPrinter(ctx context.Context, p *message.Printer) context.Context {
	return context.WithValue(ctx, printerKey, p)
}

// GetPrinter returns the printer from ctx, or one for DefaultLang.
func GetPrinter(ctx context.Context) *message.Printer {
	p, ok := ctx.Value(printerKey).(*message.Printer)
	if !ok {
		return message.NewPrinter(DefaultLang)
	}
	return p
}

// LangFromEnv picks the language from LC_ALL, LC_MESSAGES or LANG, in that
// order, e.g. "de_DE.UTF-8".
func LangFromEnv() language.Tag {
	var lang string
	for _, k := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if lang = os.Getenv(k); lang != "" {
			break
		}
	}
	if lang == "" || lang == "C" || lang == "POSIX" {
		return DefaultLang
	}
	if i := strings.IndexAny(lang, ".@"); i != -1 {
		lang = lang[:i]
	}
	lang = strings.ReplaceAll(lang, "_", "-")

	tag, err := language.Parse(lang)
	if err != nil {
		return MatchLanguage(lang)
	}
	tag, _, _ = matcher.Match(tag)
	return baseOf(tag)
}

// NewCLIPrinter returns a printer for the locale in the environment.
func NewCLIPrinter() *message.Printer {
	return message.NewPrinter(LangFromEnv())
}

// The matcher returns tags like "de-u-rg-dezzzz"; keep the base language so
// catalog lookups hit.
func baseOf(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	t, err := language.Compose(base)
	if err != nil {
		return DefaultLang
	}
	return t
}
