package index

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/aicodingstack/stackctl/internals/catalog"
	"github.com/pkg/errors"
)

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// Sitemap renders a sitemap.xml urlset: per locale the root page, one
// page per category and one page per entry.
func Sitemap(entries []catalog.Entry, categories []catalog.Category, siteURL string, locales []string) ([]byte, error) {
	base := strings.TrimSuffix(siteURL, "/")

	set := urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, locale := range locales {
		prefix := base + "/" + locale
		set.URLs = append(set.URLs, sitemapURL{Loc: prefix})
		for _, category := range categories {
			set.URLs = append(set.URLs, sitemapURL{Loc: prefix + "/" + category.Dir})
		}
		for _, entry := range entries {
			set.URLs = append(set.URLs, sitemapURL{Loc: prefix + "/" + entry.Category.Dir + "/" + entry.ID})
		}
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// WriteSitemap renders and persists the sitemap
func WriteSitemap(entries []catalog.Entry, categories []catalog.Category, siteURL string, locales []string, path string) error {
	data, err := Sitemap(entries, categories, siteURL, locales)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	return os.WriteFile(path, data, 0644)
}
