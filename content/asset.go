package content

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/coreh/linkshare/config"
)

// ErrNotFound is returned for assets that are missing or may not be served.
// Traversal attempts report it too so they do not reveal what exists.
var ErrNotFound = errors.New("not found")

// AssetOwner returns the section owning the nearest directory enclosing
// urlPath. Static requests are gated by that section's authorization chain.
func (r *ScanResult) AssetOwner(urlPath string) *Section {
	dir := path.Dir(NormalizePath(urlPath))
	for {
		if s, ok := r.Sections[dir]; ok {
			return s
		}
		if dir == "/" {
			return r.Root
		}
		dir = path.Dir(dir)
	}
}

// ResolveAsset maps a static request to a file inside the owning section's
// folder. Section configs, dotfiles, directories and anything outside the
// content root are reported as ErrNotFound.
func (r *ScanResult) ResolveAsset(urlPath string) (*Section, string, error) {
	clean := NormalizePath(urlPath)
	if clean == "/" {
		return nil, "", ErrNotFound
	}
	for _, seg := range strings.Split(strings.TrimPrefix(clean, "/"), "/") {
		if strings.HasPrefix(seg, ".") {
			return nil, "", ErrNotFound
		}
	}
	if strings.EqualFold(path.Ext(clean), ".toml") || path.Base(clean) == config.SectionFile {
		return nil, "", ErrNotFound
	}

	owner := r.AssetOwner(clean)
	rel := strings.TrimPrefix(strings.TrimPrefix(clean, owner.Path), "/")
	if ownsSection(owner.Dir, rel) {
		return nil, "", ErrNotFound
	}
	file := filepath.Join(owner.Dir, filepath.FromSlash(rel))

	if !r.contains(file) {
		return nil, "", ErrNotFound
	}

	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return nil, "", ErrNotFound
	}

	return owner, file, nil
}

// ownsSection reports whether a folder between dir and the file named by rel
// carries its own section config. Such files belong to that section (or to a
// folder the scan skipped) and are never reachable through dir's URL.
func ownsSection(dir, rel string) bool {
	segs := strings.Split(rel, "/")
	for _, seg := range segs[:len(segs)-1] {
		dir = filepath.Join(dir, seg)
		if _, err := os.Stat(filepath.Join(dir, config.SectionFile)); err == nil {
			return true
		}
	}
	return false
}

// contains reports whether file, with symlinks resolved, stays inside the
// content root.
func (r *ScanResult) contains(file string) bool {
	root, err := filepath.EvalSymlinks(r.ContentDir)
	if err != nil {
		return false
	}
	resolved, err := filepath.EvalSymlinks(file)
	if err != nil {
		return false
	}
	within, err := filepath.Rel(root, resolved)
	return err == nil && within != ".." && !strings.HasPrefix(within, ".."+string(filepath.Separator))
}
