package utils

import "strings"

// Locale is one of the supported content languages.
type Locale string

const (
	LocaleAr Locale = "ar"
	LocaleEn Locale = "en"
	LocaleFr Locale = "fr"
)

// DefaultLocale is used when a request names no supported locale.
const DefaultLocale = LocaleAr

// ParseLocale maps a language tag such as "fr-FR" to a supported locale.
func ParseLocale(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if len(tag) > 2 {
		tag = tag[:2]
	}
	switch Locale(tag) {
	case LocaleAr, LocaleEn, LocaleFr:
		return Locale(tag)
	}
	return DefaultLocale
}

// IsRTL reports whether the locale is written right to left.
func (l Locale) IsRTL() bool {
	return l == LocaleAr
}

// Pick returns the value for the locale, falling back to the first non-empty
// value in ar, en, fr order.
func Pick(l Locale, ar, en, fr string) string {
	var v string
	switch l {
	case LocaleAr:
		v = ar
	case LocaleEn:
		v = en
	case LocaleFr:
		v = fr
	}
	if v != "" {
		return v
	}
	for _, fallback := range []string{ar, en, fr} {
		if fallback != "" {
			return fallback
		}
	}
	return ""
}
