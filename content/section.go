package content

import (
	"path"
	"strings"

	"github.com/coreh/linkshare/config"
)

// Section is one configured folder of the content tree.
//
// Sections live in the ScanResult arena: children are owned top-down, and the
// parent is referenced by its URL path rather than a pointer.
type Section struct {
	Slug       string
	Path       string
	Dir        string
	Config     *config.SectionConfig
	Children   []*Section
	ParentPath string
	Style      ResolvedStyle
	Protected  bool
	Hidden     bool
}

func (s *Section) IsRoot() bool { return s.ParentPath == "" }

// HasPassword reports whether this section declares its own password gate.
func (s *Section) HasPassword() bool { return s.Config.Password != "" }

func (s *Section) Title() string { return s.Config.Title }

// VisibleChildren returns the children that should appear in the section index.
func (s *Section) VisibleChildren() []*Section {
	out := make([]*Section, 0, len(s.Children))
	for _, c := range s.Children {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}

// ScanResult is a fully built content tree plus its path index.
type ScanResult struct {
	Root       *Section
	Sections   map[string]*Section
	ContentDir string
}

// Lookup finds the section served at urlPath.
func (r *ScanResult) Lookup(urlPath string) (*Section, bool) {
	s, ok := r.Sections[NormalizePath(urlPath)]
	return s, ok
}

// Parent returns the parent of s, or nil for the root.
func (r *ScanResult) Parent(s *Section) *Section {
	if s.IsRoot() {
		return nil
	}
	return r.Sections[s.ParentPath]
}

// Chain returns s and all its ancestors, root first.
func (r *ScanResult) Chain(s *Section) []*Section {
	var chain []*Section
	for cur := s; cur != nil; cur = r.Parent(cur) {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Walk visits every section depth-first in declared order.
func (r *ScanResult) Walk(fn func(s *Section) error) error {
	var visit func(s *Section) error
	visit = func(s *Section) error {
		if err := fn(s); err != nil {
			return err
		}
		for _, c := range s.Children {
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(r.Root)
}

// NormalizePath cleans a URL path into the form used as a section key:
// rooted, no trailing slash, "/" for the root.
func NormalizePath(p string) string {
	return path.Clean("/" + strings.TrimSpace(p))
}

func childPath(parent, slug string) string {
	if parent == "/" {
		return "/" + slug
	}
	return parent + "/" + slug
}
