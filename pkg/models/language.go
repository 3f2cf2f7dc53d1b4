package models

import (
	"fmt"
	"strings"
)

// Language selects the localization of text returned by the API.
// The zero value is English.
type Language int

const (
	English Language = iota
	German
	Spanish
	Russian
	French
	Italian
	Polish
	Chinese
)

var languageTags = [...]string{
	English: "en-US",
	German:  "de-DE",
	Spanish: "es-ES",
	Russian: "ru-RU",
	French:  "fr-FR",
	Italian: "it-IT",
	Polish:  "pl-PL",
	Chinese: "zh-Hans",
}

var languageNames = [...]string{
	English: "english",
	German:  "german",
	Spanish: "spanish",
	Russian: "russian",
	French:  "french",
	Italian: "italian",
	Polish:  "polish",
	Chinese: "chinese",
}

// Languages returns every supported language in declaration order.
func Languages() []Language {
	out := make([]Language, len(languageTags))
	for i := range languageTags {
		out[i] = Language(i)
	}
	return out
}

// Tag returns the Accept-Language value the API expects for l.
func (l Language) Tag() string {
	if l < 0 || int(l) >= len(languageTags) {
		panic(fmt.Sprintf("models: unknown language %d", int(l)))
	}
	return languageTags[l]
}

func (l Language) String() string {
	if l < 0 || int(l) >= len(languageNames) {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return languageNames[l]
}

// ParseLanguage resolves a language name ("german") or API tag ("de-DE").
// Matching is case-insensitive. Anything else is an error; there is no
// fallback language.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for i := range languageTags {
		if strings.EqualFold(s, languageTags[i]) || strings.EqualFold(s, languageNames[i]) {
			return Language(i), nil
		}
	}
	return 0, fmt.Errorf("unsupported language %q", s)
}
