package utils

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/coreh/linkshare/content"
)

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// PublicPaths lists the sections anyone may discover: nothing hidden and
// nothing behind a password, in tree order.
func PublicPaths(tree *content.ScanResult) []string {
	var paths []string
	_ = tree.Walk(func(s *content.Section) error {
		if s.Protected {
			return nil
		}
		for _, c := range tree.Chain(s) {
			if c.Hidden {
				return nil
			}
		}
		paths = append(paths, s.Path)
		return nil
	})
	return paths
}

// GenerateSitemaps writes sitemap.xml for the public sections into outputDir.
func GenerateSitemaps(tree *content.ScanResult, baseURL, outputDir string) error {
	xmlOutput, err := GenerateSitemapContent(tree, baseURL, time.Now())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.WithStack(err)
	}
	err = os.WriteFile(filepath.Join(outputDir, "sitemap.xml"), []byte(xml.Header+xmlOutput), 0o644)
	return errors.Wrap(err, "writing sitemap")
}

func GenerateSitemapContent(tree *content.ScanResult, baseURL string, lastMod time.Time) (string, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	sitemap := Sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	for _, p := range PublicPaths(tree) {
		priority := "0.5"
		if p == "/" {
			priority = "1.0"
		}
		sitemap.Urls = append(sitemap.Urls, Url{
			Loc:      baseURL + p,
			LastMod:  lastMod.Format("2006-01-02"),
			Priority: priority,
		})
	}

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(xmlOutput), nil
}
