package content

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/coreh/linkshare/config"
	"github.com/coreh/linkshare/logging"
)

// ReservedAssetsSlug is the root-level URL segment claimed by theme assets.
const ReservedAssetsSlug = "assets"

var orderPrefix = regexp.MustCompile(`^\d+-`)

// ConfigParseError aborts a scan: a partial tree could mis-route authorization.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

// StripOrderPrefix removes a leading "digits-" ordering prefix from a folder name.
func StripOrderPrefix(name string) string {
	if slug := orderPrefix.ReplaceAllString(name, ""); slug != "" {
		return slug
	}
	return name
}

type scanner struct {
	defaults DefaultsLookup
	log      logging.Logger
	sections map[string]*Section
}

// Scan walks contentDir into a section tree. Only folders holding a
// config.toml become sections; the root may omit it.
func Scan(ctx context.Context, contentDir string, defaults DefaultsLookup, log logging.Logger) (*ScanResult, error) {
	abs, err := filepath.Abs(contentDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving content dir %s", contentDir)
	}
	if defaults == nil {
		defaults = BuiltinDefaults
	}

	s := &scanner{
		defaults: defaults,
		log:      log.WithComponent("scanner"),
		sections: make(map[string]*Section),
	}

	root, err := s.walk(ctx, abs, "", nil)
	if err != nil {
		return nil, err
	}

	return &ScanResult{Root: root, Sections: s.sections, ContentDir: abs}, nil
}

func (s *scanner) walk(ctx context.Context, dir, slug string, parent *Section) (*Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	urlPath := "/"
	if parent != nil {
		urlPath = childPath(parent.Path, slug)
	}

	cfg, err := readSectionConfig(dir)
	if err != nil {
		return nil, err
	}
	if cfg.Title == "" {
		if parent == nil {
			cfg.Title = "Home"
		} else {
			cfg.Title = path.Base(urlPath)
		}
	}

	var parentStyle *ResolvedStyle
	parentProtected := false
	parentPath := ""
	if parent != nil {
		parentStyle = &parent.Style
		parentProtected = parent.Protected
		parentPath = parent.Path
	}

	section := &Section{
		Slug:       slug,
		Path:       urlPath,
		Dir:        dir,
		Config:     cfg,
		ParentPath: parentPath,
		Style:      ResolveStyle(cfg, parentStyle, urlPath, s.defaults),
		Protected:  cfg.Password != "" || parentProtected,
		Hidden:     cfg.Hidden,
	}
	s.sections[urlPath] = section

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warn(ctx, err, "unreadable section directory", "dir", dir, "path", urlPath)
		return section, nil
	}

	// os.ReadDir returns entries sorted by filename.
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		childDir := filepath.Join(dir, name)
		if !isDir(entry, childDir) || !hasSectionConfig(childDir) {
			continue
		}

		childSlug := StripOrderPrefix(name)
		key := childPath(urlPath, childSlug)
		if _, taken := s.sections[key]; taken {
			s.log.Warn(ctx, nil, "duplicate section slug, skipping folder", "dir", childDir, "path", key)
			continue
		}
		if parent == nil && childSlug == ReservedAssetsSlug {
			s.log.Warn(ctx, nil, "section collides with the reserved theme asset route and is unreachable", "dir", childDir)
		}

		child, err := s.walk(ctx, childDir, childSlug, section)
		if err != nil {
			return nil, err
		}
		section.Children = append(section.Children, child)
	}

	return section, nil
}

func readSectionConfig(dir string) (*config.SectionConfig, error) {
	file := filepath.Join(dir, config.SectionFile)
	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return &config.SectionConfig{Title: "Untitled"}, nil
	}
	if err != nil {
		return nil, &ConfigParseError{Path: file, Err: err}
	}

	cfg, err := config.ParseSection(data)
	if err != nil {
		return nil, &ConfigParseError{Path: file, Err: err}
	}
	return cfg, nil
}

func isDir(entry os.DirEntry, full string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.IsDir()
}

func hasSectionConfig(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, config.SectionFile))
	return err == nil && !info.IsDir()
}
