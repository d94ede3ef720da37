package cmd

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/coreh/linkshare/auth"
	"github.com/coreh/linkshare/config"
	"github.com/coreh/linkshare/content"
	"github.com/coreh/linkshare/handlers"
	"github.com/coreh/linkshare/site"
	"github.com/coreh/linkshare/theme"
	"github.com/coreh/linkshare/utils"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a static version of the public pages",
	Long: `Build renders every section that needs no password into OUTPUT_DIR, copies
their files and the theme assets next to them and writes a sitemap. Password
protected sections are left out; they need the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		opts := siteOptions()
		opts.Dev = false
		s, err := site.New(ctx, opts, logger)
		if err != nil {
			return errors.Wrap(err, "error loading site")
		}
		n, err := buildStatic(ctx, s, settings.OutputDir, settings.BaseURL)
		if err != nil {
			return err
		}
		cmd.Printf("Static site generated successfully in %s (%d pages)\n", settings.OutputDir, n)
		return nil
	},
}

// buildStatic exports every unprotected section of s into outDir and returns
// the number of pages written.
func buildStatic(ctx context.Context, s *site.Site, outDir, baseURL string) (int, error) {
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return 0, errors.Wrap(err, "error creating output directory")
	}

	server := httptest.NewServer(handlers.SetupRouter(&handlers.Server{
		Site:    s,
		Codec:   auth.NewCodec(nil),
		Log:     logger,
		BaseURL: baseURL,
	}))
	defer server.Close()

	snap := s.Snapshot(ctx)
	pages := 0
	err := snap.Tree.Walk(func(sec *content.Section) error {
		if sec.Protected {
			return nil
		}
		if err := generateStaticPage(server, sec.Path, filepath.Join(outDir, filepath.FromSlash(sec.Path), "index.html")); err != nil {
			return err
		}
		pages++
		return copySectionFiles(sec, filepath.Join(outDir, filepath.FromSlash(sec.Path)))
	})
	if err != nil {
		return pages, err
	}

	if err := generateStaticPage(server, "/404", filepath.Join(outDir, "404.html")); err != nil {
		return pages, err
	}

	for _, name := range snap.Themes.Names() {
		th, _ := snap.Themes.Get(name)
		src := filepath.Join(th.Dir, theme.AssetsDir)
		if err := copyTree(src, filepath.Join(outDir, content.ReservedAssetsSlug, name)); err != nil {
			return pages, err
		}
	}

	if err := utils.GenerateSitemaps(snap.Tree, baseURL, outDir); err != nil {
		return pages, err
	}
	return pages, nil
}

func generateStaticPage(server *httptest.Server, route, filePath string) error {
	resp, err := http.Get(server.URL + route)
	if err != nil {
		return errors.Wrapf(err, "fetching %s", route)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return errors.Errorf("rendering %s: unexpected status %d", route, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(filePath, body, 0o644))
}

// copySectionFiles copies the files of one section folder, skipping configs
// and dotfiles.
func copySectionFiles(sec *content.Section, dst string) error {
	entries, err := os.ReadDir(sec.Dir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || strings.EqualFold(filepath.Ext(name), ".toml") {
			continue
		}
		src := filepath.Join(sec.Dir, name)
		if e.IsDir() {
			// plain folders belong to this section; configured ones are sections of their own
			if _, err := os.Stat(filepath.Join(src, config.SectionFile)); err == nil {
				continue
			}
			if err := copyTree(src, filepath.Join(dst, name)); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(src, filepath.Join(dst, name)); err != nil {
			return err
		}
	}
	return nil
}

func copyTree(src, dst string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != src {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || strings.EqualFold(filepath.Ext(path), ".toml") {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.WithStack(err)
		}
		return copyFile(path, filepath.Join(dst, rel))
	})
}

func copyFile(src, dst string) error {
	input, err := os.ReadFile(src)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(dst, input, 0o644))
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("output", "o", "public", "output directory")
	_ = v.BindPFlag("output_dir", buildCmd.Flags().Lookup("output"))
}
