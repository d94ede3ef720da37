package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreh/linkshare/logging"
	"github.com/coreh/linkshare/site"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}
}

func testSite(t *testing.T) *site.Site {
	t.Helper()
	opts := site.Options{ContentDir: t.TempDir(), ThemesDir: t.TempDir()}
	writeFiles(t, opts.ThemesDir, map[string]string{
		"default/theme.toml":      `name = "Test"`,
		"default/page.html":       `<main><%= title %></main>`,
		"default/login.html":      `<form></form>`,
		"default/assets/site.css": "body{}",
	})
	writeFiles(t, opts.ContentDir, map[string]string{
		"config.toml":             "title = \"Home\"",
		"avatar.png":              "avatar",
		"images/banner.jpg":       "banner",
		"1-links/config.toml":     "title = \"Links\"",
		"2-work/config.toml":      "title = \"Work\"\npassword = \"x\"",
		"2-work/cv.pdf":           "secret",
		"2-work/deep/config.toml": "title = \"Deep\"",
		"3-drafts/config.toml":    "title = \"Drafts\"\nhidden = true",
		"3-drafts/.notes":         "private",
	})
	s, err := site.New(context.Background(), opts, logging.Discard())
	require.NoError(t, err)
	return s
}

func TestBuildStaticExportsPublicSections(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public")
	n, err := buildStatic(context.Background(), testSite(t), out, "https://x.io")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	read := func(rel string) string {
		raw, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
		return string(raw)
	}
	assert.Contains(t, read("index.html"), "<main>Home</main>")
	assert.Contains(t, read("links/index.html"), "<main>Links</main>")
	assert.Contains(t, read("drafts/index.html"), "<main>Drafts</main>")
	assert.Contains(t, read("404.html"), "Page not found")
	assert.Equal(t, "avatar", read("avatar.png"))
	assert.Equal(t, "banner", read("images/banner.jpg"))
	assert.Equal(t, "body{}", read("assets/default/site.css"))

	sitemap := read("sitemap.xml")
	assert.Contains(t, sitemap, "<loc>https://x.io/links</loc>")
	assert.NotContains(t, sitemap, "drafts")

	for _, rel := range []string{"work/index.html", "work/cv.pdf", "work/deep/index.html", "config.toml", "drafts/.notes"} {
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel)))
		assert.True(t, os.IsNotExist(err), rel)
	}
}

func TestPrintTree(t *testing.T) {
	s := testSite(t)
	var buf bytes.Buffer
	printTree(&buf, s.Snapshot(context.Background()).Tree)

	out := buf.String()
	assert.Contains(t, out, `/  "Home"  theme=default items=0`)
	assert.Contains(t, out, `  /work  "Work"  theme=default items=0  [password]`)
	assert.Contains(t, out, `    /work/deep  "Deep"  theme=default items=0  [protected]`)
	assert.Contains(t, out, `  /drafts  "Drafts"  theme=default items=0  [hidden]`)
}
