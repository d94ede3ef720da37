package auth

import (
	"path"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/coreh/linkshare/config"
	"github.com/coreh/linkshare/content"
)

// newTree builds an arena from path -> password pairs. Parents must be listed
// before their children.
func newTree(entries ...[2]string) *content.ScanResult {
	res := &content.ScanResult{Sections: map[string]*content.Section{}}
	for _, e := range entries {
		p, password := e[0], e[1]
		s := &content.Section{
			Path:   p,
			Slug:   path.Base(p),
			Config: &config.SectionConfig{Password: password},
		}
		if p == "/" {
			s.Slug = ""
			res.Root = s
		} else {
			s.ParentPath = path.Dir(p)
			parent := res.Sections[s.ParentPath]
			parent.Children = append(parent.Children, s)
			s.Protected = password != "" || parent.Protected
		}
		res.Sections[p] = s
	}
	return res
}

func gatedTree() *content.ScanResult {
	return newTree(
		[2]string{"/", ""},
		[2]string{"/a", "outer"},
		[2]string{"/a/b", "inner"},
		[2]string{"/a/b/c", ""},
		[2]string{"/open", ""},
	)
}

func TestIsAuthorized(t *testing.T) {
	tree := gatedTree()
	c := tree.Sections["/a/b/c"]

	assert.True(t, IsAuthorized(tree, tree.Sections["/open"], NewPathSet()))
	assert.True(t, IsAuthorized(tree, tree.Root, NewPathSet()))
	assert.False(t, IsAuthorized(tree, c, NewPathSet()))
	assert.False(t, IsAuthorized(tree, c, NewPathSet("/a")), "unlocking a parent does not unlock an inner gate")
	assert.False(t, IsAuthorized(tree, c, NewPathSet("/a/b")))
	assert.True(t, IsAuthorized(tree, c, NewPathSet("/a", "/a/b")))
}

func TestFindLockingSectionReturnsOutermost(t *testing.T) {
	tree := gatedTree()
	b := tree.Sections["/a/b"]

	assert.Equal(t, "/a", FindLockingSection(tree, b, NewPathSet()).Path)
	assert.Equal(t, "/a/b", FindLockingSection(tree, b, NewPathSet("/a")).Path)
	assert.Same(t, b, FindLockingSection(tree, b, NewPathSet("/a", "/a/b")), "no lock returns the section itself")

	open := tree.Sections["/open"]
	assert.Same(t, open, FindLockingSection(tree, open, NewPathSet()))
}

func TestAuthorizationMonotonicity(t *testing.T) {
	tree := gatedTree()
	all := []string{"/", "/a", "/a/b", "/a/b/c", "/open"}

	properties := gopter.NewProperties(nil)
	properties.Property("growing the unlocked set never revokes access", prop.ForAll(
		func(base, extra []int, target int) bool {
			set := NewPathSet()
			for _, i := range base {
				set = set.With(all[i])
			}
			bigger := set
			for _, i := range extra {
				bigger = bigger.With(all[i])
			}
			s := tree.Sections[all[target]]
			return !IsAuthorized(tree, s, set) || IsAuthorized(tree, s, bigger)
		},
		gen.SliceOf(gen.IntRange(0, len(all)-1)),
		gen.SliceOf(gen.IntRange(0, len(all)-1)),
		gen.IntRange(0, len(all)-1),
	))
	properties.TestingRun(t)
}

func TestPathSet(t *testing.T) {
	set := NewPathSet("/b/", "/a")
	assert.True(t, set.Has("/b"))
	assert.Equal(t, []string{"/a", "/b"}, set.Paths())

	grown := set.With("/c")
	assert.False(t, set.Has("/c"), "With does not mutate the receiver")
	assert.True(t, grown.Has("/c"))
}

func TestCheckPassword(t *testing.T) {
	assert.True(t, CheckPassword("x", "x"))
	assert.False(t, CheckPassword("x", "y"))
	assert.False(t, CheckPassword("x", ""))
	assert.False(t, CheckPassword("", ""), "a section without a password can never be unlocked by one")
}
