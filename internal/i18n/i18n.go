// Package i18n resolves display-string keys in the active language. The
// render layer never hardcodes user-facing text; everything it emits goes
// through a Translator lookup, so swapping the language re-renders every
// fragment translated.
package i18n

import "sync"

// Languages supported by the platform. Arabic is the default; the product
// launched for the Saudi market.
const (
	LangArabic  = "ar"
	LangEnglish = "en"
)

// Translator returns the display string for a key in the active language.
// Missing keys fall back to the key itself so a forgotten translation shows
// up on screen instead of blanking a fragment.
type Translator struct {
	mu   sync.RWMutex
	lang string
}

func New(lang string) *Translator {
	t := &Translator{lang: LangArabic}
	t.SetLanguage(lang)
	return t
}

func (t *Translator) Lang() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// SetLanguage switches the active language. Unknown codes keep the current
// language, matching the selector UI which only offers known options.
func (t *Translator) SetLanguage(lang string) {
	if lang != LangArabic && lang != LangEnglish {
		return
	}
	t.mu.Lock()
	t.lang = lang
	t.mu.Unlock()
}

func (t *Translator) T(key string) string {
	t.mu.RLock()
	lang := t.lang
	t.mu.RUnlock()
	if s, ok := tables[lang][key]; ok {
		return s
	}
	// fall back to Arabic, the authoring language of the tables
	if s, ok := tables[LangArabic][key]; ok {
		return s
	}
	return key
}
