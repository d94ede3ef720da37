// Package render turns sections into complete HTML documents using the
// compiled themes. Rendering never fails: a broken theme degrades to a
// minimal fallback document and a broken card or item is left out.
package render

import (
	"context"
	"html/template"
	"strings"

	"github.com/gobuffalo/plush"

	"github.com/coreh/linkshare/config"
	"github.com/coreh/linkshare/content"
	"github.com/coreh/linkshare/i18n"
	"github.com/coreh/linkshare/logging"
	"github.com/coreh/linkshare/theme"
)

// Renderer renders pages against one snapshot of themes and catalogs.
type Renderer struct {
	Themes   *theme.Registry
	Catalogs *i18n.Catalogs
	Log      logging.Logger
}

// New returns a renderer for the given themes and catalogs.
func New(themes *theme.Registry, catalogs *i18n.Catalogs, log logging.Logger) *Renderer {
	if catalogs == nil {
		catalogs = i18n.Empty()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Renderer{Themes: themes, Catalogs: catalogs, Log: log.WithComponent("render")}
}

// Page renders the full document for section s.
func (r *Renderer) Page(tree *content.ScanResult, s *content.Section) string {
	th, ok := r.Themes.Lookup(s.Style.Theme)
	if !ok {
		return Fallback(s.Title(), "No theme is available to render this page.")
	}
	tr := r.Catalogs.Translator(s.Style.Locale)

	cards := r.cards(th, tr, s)
	items, hasCode := r.items(th, tr, s)

	vars := r.baseVars(tr, s.Style)
	vars["title"] = s.Title()
	vars["description"] = s.Config.Description
	vars["path"] = s.Path
	vars["children"] = template.HTML(cards)
	vars["has_children"] = cards != ""
	vars["items"] = template.HTML(items)
	vars["has_items"] = items != ""
	vars["protected"] = s.Protected
	vars["hidden"] = s.Hidden
	vars["not_found"] = false
	r.parentVars(vars, tree, s)

	return r.document(th, th.Page, vars, s.Title(), s.Config.Description, s.Style, hasCode)
}

// Login renders the password form for the gate at locking. The form posts
// back to requestPath; failed marks a rejected attempt.
func (r *Renderer) Login(locking *content.Section, requestPath string, failed bool) string {
	th, ok := r.Themes.Lookup(locking.Style.Theme)
	if !ok {
		return Fallback(locking.Title(), "This page is password protected.")
	}
	tr := r.Catalogs.Translator(locking.Style.Locale)

	vars := r.baseVars(tr, locking.Style)
	vars["title"] = locking.Title()
	vars["description"] = locking.Config.Description
	vars["path"] = content.NormalizePath(requestPath)
	vars["locking_path"] = locking.Path
	vars["error"] = failed

	title := tr.T("Password required") + " · " + locking.Title()
	return r.document(th, th.Login, vars, title, "", locking.Style, false)
}

// NotFound renders the themed 404 page with the root section's style.
func (r *Renderer) NotFound(tree *content.ScanResult, requestPath string) string {
	style := content.ResolveStyle(&config.SectionConfig{}, nil, "/", r.Themes)
	if tree != nil && tree.Root != nil {
		style = tree.Root.Style
	}
	th, ok := r.Themes.Lookup(style.Theme)
	if !ok {
		return Fallback("Not found", "The page you were looking for does not exist.")
	}
	tr := r.Catalogs.Translator(style.Locale)

	vars := r.baseVars(tr, style)
	vars["title"] = tr.T("Page not found")
	vars["description"] = tr.T("The page you were looking for does not exist.")
	vars["path"] = content.NormalizePath(requestPath)
	vars["children"] = template.HTML("")
	vars["has_children"] = false
	vars["items"] = template.HTML("")
	vars["has_items"] = false
	vars["protected"] = false
	vars["hidden"] = false
	vars["not_found"] = true
	vars["has_parent"] = true
	vars["show_nav"] = true
	vars["parent_url"] = "/"
	vars["parent_title"] = tr.T("Home")
	if tree != nil && tree.Root != nil {
		vars["parent_title"] = tree.Root.Title()
	}

	return r.document(th, th.Page, vars, tr.T("Page not found"), "", style, false)
}

// baseVars are shared by every page-level template.
func (r *Renderer) baseVars(tr i18n.Translator, s content.ResolvedStyle) map[string]any {
	return map[string]any{
		"t":            tr.T,
		"tc":           tr.TC,
		"locale":       tr.Locale(),
		"lang":         i18n.LangTag(s.Locale),
		"dir":          i18n.Direction(s.Locale),
		"dark":         s.Dark == config.DarkOn,
		"auto_dark":    s.Dark.IsAuto(),
		"theme":        s.Theme,
		"color":        s.Color,
		"accent":       s.AccentColor,
		"logo":         s.Logo,
		"background":   s.Background,
		"bg_light":     s.BackgroundColor,
		"bg_dark":      s.BackgroundColorDark,
		"font":         s.Font,
		"has_parent":   false,
		"show_nav":     false,
		"parent_url":   "",
		"parent_title": "",
	}
}

func (r *Renderer) parentVars(vars map[string]any, tree *content.ScanResult, s *content.Section) {
	if tree == nil {
		return
	}
	parent := tree.Parent(s)
	if parent == nil {
		return
	}
	vars["has_parent"] = true
	vars["show_nav"] = true
	vars["parent_url"] = parent.Path
	vars["parent_title"] = parent.Title()
}

func (r *Renderer) document(th *theme.CompiledTheme, tpl *plush.Template, vars map[string]any, title, description string, style content.ResolvedStyle, hasCode bool) string {
	ctx := context.Background()
	body, err := theme.Exec(tpl, vars)
	if err != nil {
		r.Log.Error(ctx, err, "page template failed", "theme", th.Name, "title", title)
		return Fallback(title, "This page could not be rendered.")
	}
	out, err := document{
		Title:       title,
		Description: description,
		Style:       style,
		Theme:       th,
		Highlight:   hasCode,
		Body:        body,
	}.render()
	if err != nil {
		r.Log.Error(ctx, err, "layout shell failed", "theme", th.Name)
		return Fallback(title, "This page could not be rendered.")
	}
	return out
}

// cards renders one section card per visible child. Cards take the dark
// settings of the page they appear on.
func (r *Renderer) cards(th *theme.CompiledTheme, tr i18n.Translator, s *content.Section) string {
	if th.Section == nil {
		return ""
	}
	var b strings.Builder
	for _, child := range s.VisibleChildren() {
		out, err := theme.Exec(th.Section, map[string]any{
			"t":            tr.T,
			"tc":           tr.TC,
			"title":        child.Title(),
			"description":  child.Config.Description,
			"path":         child.Path,
			"url":          child.Path,
			"protected":    child.Protected,
			"has_password": child.HasPassword(),
			"logo":         child.Style.Logo,
			"dark":         s.Style.Dark == config.DarkOn,
			"auto_dark":    s.Style.Dark.IsAuto(),
		})
		if err != nil {
			r.Log.Warn(context.Background(), err, "section card omitted", "theme", th.Name, "section", child.Path)
			continue
		}
		b.WriteString(out)
	}
	return b.String()
}

// items renders the section's items in declaration order. Items without a
// template for their type, or whose template fails, are omitted.
func (r *Renderer) items(th *theme.CompiledTheme, tr i18n.Translator, s *content.Section) (string, bool) {
	var b strings.Builder
	hasCode := false
	for i, item := range s.Config.Items {
		kind := item.Kind()
		tpl, ok := th.Item(kind)
		if !ok {
			r.Log.Debug(context.Background(), "no template for item type", "theme", th.Name, "type", kind)
			continue
		}
		vars := itemVars(s.Path, item)
		vars["t"] = tr.T
		vars["tc"] = tr.TC
		vars["index"] = i
		vars["dark"] = s.Style.Dark == config.DarkOn
		vars["auto_dark"] = s.Style.Dark.IsAuto()
		out, err := theme.Exec(tpl, vars)
		if err != nil {
			r.Log.Warn(context.Background(), err, "item omitted", "theme", th.Name, "section", s.Path, "type", kind)
			continue
		}
		if kind == config.ItemCode {
			hasCode = true
		}
		b.WriteString(out)
	}
	return b.String(), hasCode
}
