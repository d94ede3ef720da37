package content

import (
	"path"
	"strings"

	"github.com/coreh/linkshare/config"
)

// DefaultTheme is the theme every lookup falls back to.
const DefaultTheme = "default"

// DefaultLocale needs no catalog.
const DefaultLocale = "en"

// DefaultsLookup provides a theme's built-in style values. Unknown themes
// should answer with config.BuiltinDefaults.
type DefaultsLookup interface {
	Defaults(theme string) config.ThemeDefaults
}

// DefaultsFunc adapts a function to DefaultsLookup.
type DefaultsFunc func(theme string) config.ThemeDefaults

func (f DefaultsFunc) Defaults(theme string) config.ThemeDefaults { return f(theme) }

// BuiltinDefaults answers config.BuiltinDefaults for every theme.
var BuiltinDefaults = DefaultsFunc(func(string) config.ThemeDefaults { return config.BuiltinDefaults })

type CDN struct {
	JS             string // jsdelivr, unpkg or cdnjs
	Fonts          string // google, bunny or none
	FontWeights    []int
	HighlightLight string
	HighlightDark  string
}

// DefaultCDN is the CDN config a fresh style starts from.
func DefaultCDN() CDN {
	return CDN{
		JS:             "jsdelivr",
		Fonts:          "google",
		FontWeights:    []int{400, 500, 600, 700},
		HighlightLight: "github",
		HighlightDark:  "github-dark",
	}
}

// ResolvedStyle is a section's effective style after inheritance. Background
// and Logo hold URLs, already resolved against the section that declared them.
type ResolvedStyle struct {
	Theme               string
	Color               string
	Dark                config.DarkMode
	Font                string
	Background          string
	BackgroundColor     string
	BackgroundColorDark string
	Logo                string
	AccentColor         string
	Locale              string
	CDN                 CDN
}

// ResolveStyle computes a section's style from its own config, its parent's
// resolved style (nil for the root) and the theme defaults.
//
// While inheriting and keeping the parent's theme, the parent style is the
// base. Otherwise the base is rebuilt from the chosen theme's defaults. Each
// field then takes the explicit config value if present, else the base value.
func ResolveStyle(cfg *config.SectionConfig, parent *ResolvedStyle, sectionPath string, defaults DefaultsLookup) ResolvedStyle {
	inherit := cfg.Inherits()

	theme := cfg.Theme
	if theme == "" {
		if inherit && parent != nil {
			theme = parent.Theme
		} else {
			theme = DefaultTheme
		}
	}
	themeChanged := cfg.Theme != "" && (parent == nil || cfg.Theme != parent.Theme)

	var base ResolvedStyle
	if inherit && parent != nil && !themeChanged {
		base = *parent
	} else {
		base = freshStyle(theme, defaults.Defaults(theme))
	}

	out := base
	out.Theme = theme
	out.Color = pick(cfg.Color, base.Color)
	if mode, ok := config.ParseDarkMode(cfg.Dark); ok {
		out.Dark = mode
	}
	out.Font = pick(cfg.Font, base.Font)
	out.BackgroundColor = pick(cfg.BackgroundColor, base.BackgroundColor)
	out.BackgroundColorDark = pick(cfg.BackgroundColorDark, base.BackgroundColorDark)
	out.Locale = pick(cfg.Locale, base.Locale)

	out.Background, out.Logo = "", ""
	if cfg.Background != "" {
		out.Background = JoinURL(sectionPath, cfg.Background)
	} else if inherit {
		out.Background = base.Background
	}
	if cfg.Logo != "" {
		out.Logo = JoinURL(sectionPath, cfg.Logo)
	} else if inherit {
		out.Logo = base.Logo
	}

	// A palette accent only follows a color set on this section, so an
	// empty child config reproduces its parent exactly.
	out.AccentColor = base.AccentColor
	if cfg.AccentColor != "" {
		out.AccentColor = cfg.AccentColor
	} else if cfg.Color != "" {
		if accent, ok := Accent500(out.Color); ok {
			out.AccentColor = accent
		}
	}

	out.CDN = CDN{
		JS:             pick(cfg.CDN.JS, base.CDN.JS),
		Fonts:          pick(cfg.CDN.Fonts, base.CDN.Fonts),
		FontWeights:    base.CDN.FontWeights,
		HighlightLight: pick(cfg.CDN.HighlightLight, base.CDN.HighlightLight),
		HighlightDark:  pick(cfg.CDN.HighlightDark, base.CDN.HighlightDark),
	}
	if len(cfg.CDN.FontWeights) > 0 {
		out.CDN.FontWeights = cfg.CDN.FontWeights
	}

	return out
}

func freshStyle(theme string, d config.ThemeDefaults) ResolvedStyle {
	accent, ok := Accent500(d.Color)
	if !ok {
		accent = FallbackAccent
	}
	return ResolvedStyle{
		Theme:               theme,
		Color:               d.Color,
		Dark:                d.Dark,
		Font:                d.Font,
		BackgroundColor:     d.BackgroundColor,
		BackgroundColorDark: d.BackgroundColorDark,
		AccentColor:         accent,
		Locale:              DefaultLocale,
		CDN:                 DefaultCDN(),
	}
}

func pick(explicit, fallback string) string {
	if explicit != "" {
		return explicit
	}
	return fallback
}

// JoinURL resolves ref against a section's URL path. Absolute URLs and
// root-relative paths pass through; anything else is joined below the section
// and cannot climb out of it.
func JoinURL(sectionPath, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || IsAbsoluteURL(ref) || strings.HasPrefix(ref, "/") {
		return ref
	}
	return path.Join(NormalizePath(sectionPath), path.Clean("/"+ref))
}

// IsAbsoluteURL reports whether ref carries a scheme or is protocol-relative.
func IsAbsoluteURL(ref string) bool {
	if strings.HasPrefix(ref, "//") {
		return true
	}
	i := strings.Index(ref, ":")
	if i <= 0 {
		return false
	}
	for _, c := range ref[:i] {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.') {
			return false
		}
	}
	return true
}
