package render

import (
	_ "embed"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gobuffalo/plush"

	"github.com/coreh/linkshare/assets"
	"github.com/coreh/linkshare/config"
	"github.com/coreh/linkshare/content"
	"github.com/coreh/linkshare/i18n"
	"github.com/coreh/linkshare/theme"
)

// HighlightVersion pins the highlight.js release loaded from the CDN.
const HighlightVersion = "11.9.0"

//go:embed shell.plush.html
var shellSource string

// darkScript toggles the dark class before first paint and follows changes
// of the system preference.
const darkScript = `(function () {
  var media = window.matchMedia("(prefers-color-scheme: dark)");
  function apply() {
    document.documentElement.classList.toggle("dark", media.matches);
  }
  apply();
  if (media.addEventListener) {
    media.addEventListener("change", apply);
  }
})();`

var (
	shellOnce     sync.Once
	shellTemplate *plush.Template
	shellErr      error

	darkOnce     sync.Once
	darkMinified string
)

func shell() (*plush.Template, error) {
	shellOnce.Do(func() {
		shellTemplate, shellErr = plush.Parse(shellSource)
	})
	return shellTemplate, shellErr
}

func darkPrepaint() string {
	darkOnce.Do(func() {
		out, err := assets.MinifyJS(darkScript)
		if err != nil {
			out = darkScript
		}
		darkMinified = strings.TrimSpace(out)
	})
	return darkMinified
}

// document is everything the layout shell needs besides the inner body.
type document struct {
	Title       string
	Description string
	Style       content.ResolvedStyle
	Theme       *theme.CompiledTheme
	Highlight   bool
	Body        string
}

func (d document) render() (string, error) {
	tpl, err := shell()
	if err != nil {
		return "", err
	}

	s := d.Style
	fontHref, fontOrigin := FontLink(s.CDN.Fonts, s.Font, s.CDN.FontWeights)
	hl := highlightLinks(s.CDN)
	bodyClass := d.Theme.Meta.Body.Class

	head, body := themeAssetTags(d.Theme)
	vars := map[string]any{
		"lang":            i18n.LangTag(s.Locale),
		"dir":             i18n.Direction(s.Locale),
		"dark":            s.Dark == config.DarkOn,
		"auto_dark":       s.Dark.IsAuto(),
		"title":           d.Title,
		"description":     d.Description,
		"dark_script":     template.HTML(darkPrepaint()),
		"font_href":       fontHref,
		"font_origin":     fontOrigin,
		"highlight":       d.Highlight,
		"highlight_css":   hl.css(s.Dark == config.DarkOn),
		"highlight_light": hl.light,
		"highlight_dark":  hl.dark,
		"highlight_js":    hl.js,
		"css":             template.HTML(StyleSheet(s, d.Theme)),
		"head_assets":     head,
		"body_assets":     body,
		"body_class":      bodyClass,
		"body_style":      d.Theme.Meta.Body.Style,
		"yield":           template.HTML(d.Body),
	}
	return theme.Exec(tpl, vars)
}

var fontNameChars = regexp.MustCompile(`[^A-Za-z0-9 ]`)

// FontLink returns the stylesheet URL and origin for a font on the given
// provider. Both are empty for provider "none" or an empty font.
func FontLink(provider, font string, weights []int) (href, origin string) {
	font = strings.TrimSpace(fontNameChars.ReplaceAllString(font, ""))
	if font == "" {
		return "", ""
	}
	ws := make([]string, 0, len(weights))
	for _, w := range weights {
		ws = append(ws, strconv.Itoa(w))
	}
	if len(ws) == 0 {
		ws = []string{"400"}
	}

	switch provider {
	case "google":
		return "https://fonts.googleapis.com/css2?family=" + strings.ReplaceAll(font, " ", "+") +
			":wght@" + strings.Join(ws, ";") + "&display=swap", "https://fonts.googleapis.com"
	case "bunny":
		return "https://fonts.bunny.net/css?family=" + strings.ToLower(strings.ReplaceAll(font, " ", "-")) +
			":" + strings.Join(ws, ",") + "&display=swap", "https://fonts.bunny.net"
	default:
		return "", ""
	}
}

type highlight struct {
	js, light, dark string
}

func (h highlight) css(dark bool) string {
	if dark {
		return h.dark
	}
	return h.light
}

var highlightStyleChars = regexp.MustCompile(`[^a-z0-9._-]`)

func highlightLinks(cdn content.CDN) highlight {
	var base string
	switch cdn.JS {
	case "unpkg":
		base = "https://unpkg.com/@highlightjs/cdn-assets@" + HighlightVersion
	case "cdnjs":
		base = "https://cdnjs.cloudflare.com/ajax/libs/highlight.js/" + HighlightVersion
	default:
		base = "https://cdn.jsdelivr.net/gh/highlightjs/cdn-release@" + HighlightVersion + "/build"
	}
	styleURL := func(name string) string {
		name = highlightStyleChars.ReplaceAllString(strings.ToLower(name), "")
		return base + "/styles/" + name + ".min.css"
	}
	return highlight{
		js:    base + "/highlight.min.js",
		light: styleURL(cdn.HighlightLight),
		dark:  styleURL(cdn.HighlightDark),
	}
}

var cssValueReplacer = strings.NewReplacer(
	"<", "", ">", "", "{", "", "}", "", ";", "", "\"", "", "'", "", "\\", "", "\n", " ", "\r", " ",
)

var cssURLReplacer = strings.NewReplacer(
	"\"", "%22", "\\", "%5C", "<", "%3C", ">", "%3E", "\n", "", "\r", "",
)

var cssIdentChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

func cssValue(v string) string { return strings.TrimSpace(cssValueReplacer.Replace(v)) }

// StyleSheet assembles the inline stylesheet of a page: accent shade
// variables, font and background rules, theme variables and finally the
// theme's own CSS.
func StyleSheet(s content.ResolvedStyle, th *theme.CompiledTheme) string {
	var b strings.Builder

	b.WriteString(":root{")
	shades := content.AccentShades(s.AccentColor)
	for i, step := range content.ShadeSteps {
		fmt.Fprintf(&b, "--accent-%d:%s;", step, shades[i])
	}
	fmt.Fprintf(&b, "--accent:%s;", cssValue(s.AccentColor))
	if font := cssValue(s.Font); font != "" {
		fmt.Fprintf(&b, "--font-family:'%s',system-ui,sans-serif;", font)
	} else {
		b.WriteString("--font-family:system-ui,sans-serif;")
	}
	fmt.Fprintf(&b, "--bg-light:%s;--bg-dark:%s;", cssValue(s.BackgroundColor), cssValue(s.BackgroundColorDark))

	names := make([]string, 0, len(th.Meta.Variables))
	for k := range th.Meta.Variables {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		name := cssIdentChars.ReplaceAllString(strings.TrimPrefix(k, "--"), "")
		if name == "" {
			continue
		}
		fmt.Fprintf(&b, "--%s:%s;", name, cssValue(th.Meta.Variables[k]))
	}
	b.WriteString("}")

	b.WriteString("body{font-family:var(--font-family)}")
	b.WriteString(backgroundRules(s))
	b.WriteString(th.CSS)
	return b.String()
}

func backgroundRules(s content.ResolvedStyle) string {
	light, dark := cssValue(s.BackgroundColor), cssValue(s.BackgroundColorDark)
	color := light
	if s.Dark == config.DarkOn && dark != "" {
		color = dark
	}

	var b strings.Builder
	if s.Background != "" {
		fmt.Fprintf(&b, `body{background-color:%s;background-image:url("%s");background-size:cover;background-position:center;background-attachment:fixed}`,
			color, cssURLReplacer.Replace(s.Background))
	} else {
		fmt.Fprintf(&b, "body{background-color:%s}", color)
	}
	if s.Dark.IsAuto() && dark != "" {
		fmt.Fprintf(&b, "@media (prefers-color-scheme: dark){body{background-color:%s}}", dark)
	}
	return b.String()
}

// themeAssetTags renders the extra scripts and stylesheets a theme declares,
// split by where they belong in the document.
func themeAssetTags(th *theme.CompiledTheme) (head, body template.HTML) {
	var h, bd strings.Builder
	for _, a := range th.Meta.Assets {
		src := html.EscapeString(th.AssetURL(a.Src))
		if src == "" {
			continue
		}
		var tag string
		if a.IsScript() {
			attrs := ""
			if a.Module {
				attrs += ` type="module"`
			}
			if a.Defer {
				attrs += " defer"
			}
			tag = `<script src="` + src + `"` + attrs + "></script>\n"
		} else {
			tag = `<link rel="stylesheet" href="` + src + "\">\n"
		}
		if a.InBody() {
			bd.WriteString(tag)
		} else {
			h.WriteString(tag)
		}
	}
	return template.HTML(h.String()), template.HTML(bd.String())
}
