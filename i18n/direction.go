package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Thaa": true,
	"Syrc": true,
	"Nkoo": true,
	"Adlm": true,
	"Rohg": true,
}

// Direction returns "rtl" for locales written right to left, else "ltr".
func Direction(locale string) string {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "ltr"
	}
	script, _ := tag.Script()
	if rtlScripts[script.String()] {
		return "rtl"
	}
	return "ltr"
}

// LangTag returns the BCP 47 form of locale for the html lang attribute.
func LangTag(locale string) string {
	if tag := canonical(locale); tag != "" {
		return tag
	}
	return DefaultLocale
}
