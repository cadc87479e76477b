package models

import (
	"errors"
	"strings"
)

// Language is a normalized (lowercase) language name.
type Language string

// Supported languages, matching the options offered during onboarding.
const (
	English    Language = "english"
	Spanish    Language = "spanish"
	French     Language = "french"
	German     Language = "german"
	Mandarin   Language = "mandarin"
	Japanese   Language = "japanese"
	Korean     Language = "korean"
	Hindi      Language = "hindi"
	Russian    Language = "russian"
	Portuguese Language = "portuguese"
	Arabic     Language = "arabic"
	Italian    Language = "italian"
	Turkish    Language = "turkish"
	Dutch      Language = "dutch"
)

var supportedLanguages = map[Language]struct{}{
	English: {}, Spanish: {}, French: {}, German: {}, Mandarin: {}, Japanese: {}, Korean: {},
	Hindi: {}, Russian: {}, Portuguese: {}, Arabic: {}, Italian: {}, Turkish: {}, Dutch: {},
}

var ErrUnknownLanguage = errors.New("unsupported language")

// ParseLanguage normalizes s and checks it against the supported set.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := supportedLanguages[l]; !ok {
		return "", ErrUnknownLanguage
	}
	return l, nil
}

// IsSupported reports whether l is one of the supported languages.
func (l Language) IsSupported() bool {
	_, ok := supportedLanguages[l]
	return ok
}
