// Package auth decides whether a request may see a section and which
// password gate it has to clear first.
package auth

import (
	"crypto/subtle"
	"sort"

	"github.com/coreh/linkshare/content"
)

// PathSet holds the section paths a client has unlocked.
type PathSet map[string]struct{}

func NewPathSet(paths ...string) PathSet {
	set := make(PathSet, len(paths))
	for _, p := range paths {
		set[content.NormalizePath(p)] = struct{}{}
	}
	return set
}

func (s PathSet) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// With returns a copy of s that also contains path.
func (s PathSet) With(path string) PathSet {
	out := make(PathSet, len(s)+1)
	for p := range s {
		out[p] = struct{}{}
	}
	out[content.NormalizePath(path)] = struct{}{}
	return out
}

// Paths returns the members in sorted order.
func (s PathSet) Paths() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Tree resolves a section's parent. *content.ScanResult implements it.
type Tree interface {
	Parent(s *content.Section) *content.Section
}

// IsAuthorized reports whether every password-bearing section from s up to
// the root has been unlocked individually. Unlocking a parent does not
// unlock a child with its own password.
func IsAuthorized(tree Tree, s *content.Section, unlocked PathSet) bool {
	for cur := s; cur != nil; cur = tree.Parent(cur) {
		if cur.HasPassword() && !unlocked.Has(cur.Path) {
			return false
		}
	}
	return true
}

// FindLockingSection returns the outermost locked gate on the way to s, or s
// itself when nothing is locked.
func FindLockingSection(tree Tree, s *content.Section, unlocked PathSet) *content.Section {
	var locking *content.Section
	for cur := s; cur != nil; cur = tree.Parent(cur) {
		if cur.HasPassword() && !unlocked.Has(cur.Path) {
			locking = cur
		}
	}
	if locking == nil {
		return s
	}
	return locking
}

// CheckPassword compares a submitted password against a section's in constant time.
func CheckPassword(want, got string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
