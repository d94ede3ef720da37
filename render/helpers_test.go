package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coreh/linkshare/content"
	"github.com/coreh/linkshare/i18n"
	"github.com/coreh/linkshare/logging"
	"github.com/coreh/linkshare/theme"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}
}

// testTheme is a compact theme whose templates expose the variables under test.
func testTheme() map[string]string {
	return map[string]string{
		"default/theme.toml": `
name = "Test"

[variables]
radius = "4px"

[body]
class = "test-body"

[[assets]]
src = "js/app.js"
position = "body"
defer = true

[[assets]]
src = "css/extra.css"
`,
		"default/page.html":       `<main data-nav="<%= show_nav %>" data-parent="<%= parent_url %>"><h1><%= title %></h1><%= children %><%= items %></main>`,
		"default/login.html":      `<form action="<%= path %>" data-lock="<%= locking_path %>"><%= title %><%= if (error) { %><p class="err"><%= t("Incorrect password") %></p><% } %></form>`,
		"default/section.html":    `<a class="card" href="<%= url %>" data-protected="<%= protected %>"><%= title %></a>`,
		"default/items/link.html": `<a class="link" href="<%= url %>"><%= title %></a>`,
		"default/items/text.html": `<div class="text"><%= html %></div>`,
		"default/items/code.html": `<pre><code class="<%= lang_class %>"><%= content %></code></pre>`,
		"default/items/file.html": `<a class="file" href="<%= url %>"><%= filename %></a>`,
		"default/style.css":       ".card { color: red; }",
	}
}

type fixture struct {
	tree     *content.ScanResult
	renderer *Renderer
}

func newFixture(t *testing.T, themeFiles, contentFiles, localeFiles map[string]string) *fixture {
	t.Helper()
	themesDir, contentDir, localesDir := t.TempDir(), t.TempDir(), t.TempDir()
	writeFiles(t, themesDir, themeFiles)
	writeFiles(t, contentDir, contentFiles)
	writeFiles(t, localesDir, localeFiles)

	reg, err := theme.Load(themesDir, logging.Discard())
	require.NoError(t, err)
	catalogs, err := i18n.Load(localesDir, logging.Discard())
	require.NoError(t, err)
	tree, err := content.Scan(context.Background(), contentDir, reg, logging.Discard())
	require.NoError(t, err)

	return &fixture{tree: tree, renderer: New(reg, catalogs, logging.Discard())}
}

func (f *fixture) section(t *testing.T, p string) *content.Section {
	t.Helper()
	s, ok := f.tree.Lookup(p)
	require.True(t, ok, "section %s", p)
	return s
}
