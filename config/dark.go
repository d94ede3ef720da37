package config

import "strings"

// DarkMode is the dark-mode tri-state: forced on, forced off, or following the client.
type DarkMode uint8

const (
	DarkAuto DarkMode = iota
	DarkOn
	DarkOff
)

func (d DarkMode) String() string {
	switch d {
	case DarkOn:
		return "true"
	case DarkOff:
		return "false"
	default:
		return "auto"
	}
}

// IsAuto reports whether the client decides via prefers-color-scheme.
func (d DarkMode) IsAuto() bool { return d == DarkAuto }

// Bool is the value templates render with; auto renders as light.
func (d DarkMode) Bool() bool { return d == DarkOn }

// ParseDarkMode coerces a decoded TOML value. ok is false when v is absent or unrecognized.
func ParseDarkMode(v any) (mode DarkMode, ok bool) {
	switch val := v.(type) {
	case bool:
		if val {
			return DarkOn, true
		}
		return DarkOff, true
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "auto":
			return DarkAuto, true
		case "true":
			return DarkOn, true
		case "false":
			return DarkOff, true
		}
	}
	return DarkAuto, false
}
