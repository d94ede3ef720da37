package render

import (
	"html/template"
	"mime"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"github.com/coreh/linkshare/config"
	"github.com/coreh/linkshare/content"
)

// DefaultEmbedHeight applies to embed items without an explicit height.
const DefaultEmbedHeight = 480

var sanitizer = bluemonday.UGCPolicy()

// ItemURL resolves the address an item points at. A local file is joined
// below the section path and can never climb out of it; a url passes through.
func ItemURL(sectionPath string, item config.ItemConfig) string {
	if item.File != "" {
		if content.IsAbsoluteURL(item.File) {
			return item.File
		}
		return path.Join(content.NormalizePath(sectionPath), path.Clean("/"+item.File))
	}
	return strings.TrimSpace(item.URL)
}

var googleEditURL = regexp.MustCompile(`^https://docs\.google\.com/(document|spreadsheets|presentation)/d/([A-Za-z0-9_-]+)/edit/?(?:[?#].*)?$`)

// EmbedURL rewrites Google Docs, Sheets and Slides edit links to their
// embeddable form. Anything else, including already embeddable links, is
// returned unchanged.
func EmbedURL(raw string) string {
	m := googleEditURL.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return raw
	}
	kind, id := m[1], m[2]
	suffix := "preview"
	if kind == "presentation" {
		suffix = "embed"
	}
	return "https://docs.google.com/" + kind + "/d/" + id + "/" + suffix
}

var languageAliases = map[string]string{
	"js":     "javascript",
	"jsx":    "javascript",
	"mjs":    "javascript",
	"ts":     "typescript",
	"tsx":    "typescript",
	"py":     "python",
	"rb":     "ruby",
	"sh":     "bash",
	"shell":  "bash",
	"zsh":    "bash",
	"yml":    "yaml",
	"md":     "markdown",
	"golang": "go",
	"rs":     "rust",
	"kt":     "kotlin",
	"cs":     "csharp",
	"c#":     "csharp",
	"c++":    "cpp",
	"ps1":    "powershell",
	"text":   "plaintext",
	"txt":    "plaintext",
}

var unsafeLanguageChars = regexp.MustCompile(`[^a-z0-9_-]`)

// CodeClass returns the highlighting class for a code item's language hint.
func CodeClass(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if alias, ok := languageAliases[lang]; ok {
		lang = alias
	}
	lang = unsafeLanguageChars.ReplaceAllString(lang, "")
	if lang == "" {
		lang = "plaintext"
	}
	return "language-" + lang
}

// Markdown renders text item content to sanitized HTML.
func Markdown(src string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	out := markdown.ToHTML([]byte(src), p, nil)
	return template.HTML(sanitizer.SanitizeBytes(out))
}

// itemVars derives every variable an item template may use. All keys are
// always present so templates can test them without failing on unknown names.
func itemVars(sectionPath string, item config.ItemConfig) map[string]any {
	kind := item.Kind()
	target := ItemURL(sectionPath, item)

	vars := map[string]any{
		"type":        string(kind),
		"title":       item.Title,
		"description": item.Description,
		"icon":        item.Icon,
		"class":       item.Class,
		"url":         target,
		"host":        "",
		"content":     item.Content,
		"html":        template.HTML(""),
		"filename":    item.Filename,
		"mime":        "",
		"language":    item.Language,
		"lang_class":  CodeClass(item.Language),
		"height":      item.Height,
	}

	switch kind {
	case config.ItemLink:
		vars["host"] = displayHost(target)
		if item.Title == "" {
			vars["title"] = displayHost(target)
		}
	case config.ItemText:
		vars["html"] = Markdown(item.Content)
	case config.ItemFile:
		if item.Filename == "" {
			vars["filename"] = path.Base(target)
		}
		if item.Title == "" {
			vars["title"] = vars["filename"]
		}
		vars["mime"] = mime.TypeByExtension(path.Ext(target))
	case config.ItemVideo, config.ItemAudio, config.ItemImage:
		vars["mime"] = mime.TypeByExtension(path.Ext(target))
	case config.ItemEmbed:
		vars["url"] = EmbedURL(target)
		if item.Height <= 0 {
			vars["height"] = DefaultEmbedHeight
		}
	}

	return vars
}

func displayHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
