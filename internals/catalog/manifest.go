package catalog

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Manifest is the typed view of a catalog entry. The file on disk may
// carry more fields than these; the schema, not this struct, is the
// authority on shape. This view exists for the pieces of the toolchain
// that read entries (index, stars, browse).
type Manifest struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Summary       string                 `json:"summary,omitempty"`
	Description   string                 `json:"description,omitempty"`
	Vendor        string                 `json:"vendor,omitempty"`
	License       string                 `json:"license,omitempty"`
	Version       string                 `json:"version,omitempty"`
	Pricing       json.RawMessage        `json:"pricing,omitempty"`
	Platforms     []string               `json:"platforms,omitempty"`
	ResourceURLs  map[string]string      `json:"resourceUrls,omitempty"`
	CommunityURLs map[string]string      `json:"communityUrls,omitempty"`
	I18n          map[string]Translation `json:"i18n,omitempty"`
}

// Translation is a per locale override of the translatable fields
type Translation struct {
	Name        string `json:"name,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
}

// TranslatableFields are the only keys an i18n override may set
var TranslatableFields = []string{"name", "summary", "description"}

// GitHubRepo extracts "owner/repo" from the entry's GitHub URL, if it
// has one. Checked in resourceUrls first, then communityUrls.
func (m *Manifest) GitHubRepo() (string, bool) {
	for _, urls := range []map[string]string{m.ResourceURLs, m.CommunityURLs} {
		if raw, ok := urls["github"]; ok {
			if repo, ok := parseGitHubURL(raw); ok {
				return repo, true
			}
		}
	}
	return "", false
}

// DisplayName prefers the translated name for a locale, falling back
// to the base name
func (m *Manifest) DisplayName(locale string) string {
	if t, ok := m.I18n[locale]; ok && t.Name != "" {
		return t.Name
	}
	return m.Name
}

func parseGitHubURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || !strings.HasSuffix(u.Host, "github.com") {
		return "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return parts[0] + "/" + parts[1], true
}
