// Package theme loads theme packages: page and login templates, optional
// section-card and per-item templates, CSS and default style values.
package theme

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"

	"github.com/coreh/linkshare/assets"
	"github.com/coreh/linkshare/config"
	"github.com/coreh/linkshare/content"
	"github.com/coreh/linkshare/logging"
)

const (
	PageTemplate    = "page.html"
	LoginTemplate   = "login.html"
	SectionTemplate = "section.html"
	ItemsDir        = "items"
	StyleSheet      = "style.css"
	AssetsDir       = "assets"
)

// AssetRoute prefixes URLs of files under a theme's assets directory.
const AssetRoute = "/" + content.ReservedAssetsSlug + "/"

// ErrMissingTemplate excludes a theme lacking page.html or login.html.
var ErrMissingTemplate = errors.New("missing required template")

// CompiledTheme is an immutable, fully parsed theme.
type CompiledTheme struct {
	Name     string
	Dir      string
	Meta     *config.ThemeFile
	Defaults config.ThemeDefaults
	Page     *plush.Template
	Login    *plush.Template
	Section  *plush.Template
	Items    map[config.ItemType]*plush.Template
	CSS      string
}

// Item returns the template for an item type, if the theme has one.
func (t *CompiledTheme) Item(kind config.ItemType) (*plush.Template, bool) {
	tpl, ok := t.Items[kind]
	return tpl, ok
}

// AssetURL resolves a theme-relative asset reference to its public URL.
func (t *CompiledTheme) AssetURL(src string) string {
	if src == "" || content.IsAbsoluteURL(src) || strings.HasPrefix(src, "/") {
		return src
	}
	return path.Join(AssetRoute, t.Name, path.Clean("/"+src))
}

// AssetFile maps a path below the theme's assets folder to a file on disk.
// Dotfiles, directories and missing files report content.ErrNotFound.
func (t *CompiledTheme) AssetFile(rel string) (string, error) {
	clean := path.Clean("/" + rel)
	for _, seg := range strings.Split(strings.TrimPrefix(clean, "/"), "/") {
		if strings.HasPrefix(seg, ".") {
			return "", content.ErrNotFound
		}
	}
	file := filepath.Join(t.Dir, AssetsDir, filepath.FromSlash(clean))
	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return "", content.ErrNotFound
	}
	return file, nil
}

// Registry indexes compiled themes by directory name.
type Registry struct {
	themes map[string]*CompiledTheme
}

// Load compiles every theme under dir. Themes that fail to load are logged
// and left out; a missing directory yields an empty registry.
func Load(dir string, log logging.Logger) (*Registry, error) {
	log = log.WithComponent("theme")
	reg := &Registry{themes: map[string]*CompiledTheme{}}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		log.Warn(context.Background(), err, "themes directory missing", "dir", dir)
		return reg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "listing themes in %s", dir)
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		t, err := loadTheme(filepath.Join(dir, entry.Name()), entry.Name(), log)
		if err != nil {
			log.Warn(context.Background(), err, "theme excluded", "theme", entry.Name())
			continue
		}
		reg.themes[t.Name] = t
	}

	return reg, nil
}

func loadTheme(dir, name string, log logging.Logger) (*CompiledTheme, error) {
	raw, err := os.ReadFile(filepath.Join(dir, config.ThemeFileName))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", config.ThemeFileName)
	}
	meta, err := config.ParseTheme(raw)
	if err != nil {
		return nil, err
	}

	t := &CompiledTheme{
		Name:     name,
		Dir:      dir,
		Meta:     meta,
		Defaults: meta.Defaults.Resolve(),
		Items:    map[config.ItemType]*plush.Template{},
	}

	if t.Page, err = requiredTemplate(dir, PageTemplate); err != nil {
		return nil, err
	}
	if t.Login, err = requiredTemplate(dir, LoginTemplate); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if tpl, err := optionalTemplate(filepath.Join(dir, SectionTemplate)); err != nil {
		log.Warn(ctx, err, "section card template unusable", "theme", name)
	} else {
		t.Section = tpl
	}

	for _, kind := range config.ItemTypes {
		tpl, err := optionalTemplate(filepath.Join(dir, ItemsDir, string(kind)+".html"))
		if err != nil {
			log.Warn(ctx, err, "item template unusable", "theme", name, "type", kind)
			continue
		}
		if tpl != nil {
			t.Items[kind] = tpl
		}
	}

	css, err := os.ReadFile(filepath.Join(dir, StyleSheet))
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "reading %s", StyleSheet)
	}
	t.CSS = string(css)
	if minified, err := assets.MinifyCSS(t.CSS); err != nil {
		log.Warn(ctx, err, "stylesheet left unminified", "theme", name)
	} else {
		t.CSS = minified
	}

	return t, nil
}

func requiredTemplate(dir, file string) (*plush.Template, error) {
	tpl, err := optionalTemplate(filepath.Join(dir, file))
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, errors.Wrap(ErrMissingTemplate, file)
	}
	return tpl, nil
}

// optionalTemplate returns nil without error when the file does not exist.
func optionalTemplate(file string) (*plush.Template, error) {
	src, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	tpl, err := plush.Parse(string(src))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", filepath.Base(file))
	}
	return tpl, nil
}

// Get returns the theme named name.
func (r *Registry) Get(name string) (*CompiledTheme, bool) {
	t, ok := r.themes[name]
	return t, ok
}

// Lookup returns the theme named name, falling back to the default theme.
func (r *Registry) Lookup(name string) (*CompiledTheme, bool) {
	if t, ok := r.themes[name]; ok {
		return t, true
	}
	t, ok := r.themes[content.DefaultTheme]
	return t, ok
}

// Defaults implements content.DefaultsLookup.
func (r *Registry) Defaults(name string) config.ThemeDefaults {
	if t, ok := r.themes[name]; ok {
		return t.Defaults
	}
	return config.BuiltinDefaults
}

// Names lists the loaded themes.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.themes))
	for name := range r.themes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Exec runs tpl with vars bound in a fresh plush context.
func Exec(tpl *plush.Template, vars map[string]any) (string, error) {
	ctx := plush.NewContext()
	for k, v := range vars {
		ctx.Set(k, v)
	}
	out, err := tpl.Exec(ctx)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return out, nil
}
