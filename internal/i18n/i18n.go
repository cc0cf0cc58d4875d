// Package i18n provides the user-facing strings of the console in English
// and Danish. A Translator is created once per process and passed to the
// components that render text.
package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported language codes.
const (
	English = "en"
	Danish  = "da"
)

// ErrUnsupportedLanguage is returned by New for languages without a catalog.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Translator looks up user-facing strings.
type Translator interface {
	// T returns the message for key formatted with args. Unknown keys are
	// returned unchanged.
	T(key string, args ...any) string
	// Number formats n with the language's digit grouping.
	Number(n int) string
	// Language returns the active language code.
	Language() string
}

type printerTranslator struct {
	lang    string
	printer *message.Printer
}

// New returns a Translator for lang ("en" or "da").
func New(lang string) (Translator, error) {
	tag, ok := supported[strings.ToLower(strings.TrimSpace(lang))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return &printerTranslator{
		lang:    tag.String(),
		printer: message.NewPrinter(tag, message.Catalog(defaultCatalog)),
	}, nil
}

// MustNew is like New but falls back to English for unknown languages.
func MustNew(lang string) Translator {
	t, err := New(lang)
	if err != nil {
		t, _ = New(English)
	}
	return t
}

// Languages returns the supported language codes.
func Languages() []string {
	return []string{English, Danish}
}

func (p *printerTranslator) T(key string, args ...any) string {
	if !known(key) {
		return key
	}
	return p.printer.Sprintf(key, args...)
}

func (p *printerTranslator) Number(n int) string {
	return p.printer.Sprintf("%d", n)
}

func (p *printerTranslator) Language() string {
	return p.lang
}

//nolint:gochecknoglobals // Catalog is built once and read-only afterwards.
var (
	supported = map[string]language.Tag{
		English: language.English,
		Danish:  language.Danish,
	}
	defaultCatalog = buildCatalog()
)

func known(key string) bool {
	_, ok := english[key]
	return ok
}

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		_ = b.SetString(language.English, key, msg)
	}
	for key, msg := range danish {
		_ = b.SetString(language.Danish, key, msg)
	}
	return b
}
