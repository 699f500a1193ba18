// Package credentials stores the GitHub API token, preferring the
// system keyring and falling back to a plain file in the global config
// directory when no keyring is available.
package credentials

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

const (
	service = "stackctl"
	user    = "github_token"

	tokenFile = "github-token"
)

// Store reads and writes the GitHub token
type Store struct {
	globalDir     string
	NoKeyRingMode bool
	GitHubToken   string
}

// New creates a store rooted at the global config directory and loads
// any existing token
func New(globalDir string) *Store {
	store := &Store{globalDir: globalDir}
	store.find()
	return store
}

// find looks up an existing token. The GITHUB_TOKEN environment
// variable always wins so CI never touches the keyring.
func (s *Store) find() {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		s.GitHubToken = token
		return
	}

	token, err := keyring.Get(service, user)
	switch err {
	case nil:
		s.GitHubToken = token
	case keyring.ErrNotFound:
		// no token (yet) is fine
	default:
		s.NoKeyRingMode = true
		s.findFromFile()
	}
}

func (s *Store) findFromFile() {
	raw, err := os.ReadFile(filepath.Join(s.globalDir, tokenFile))
	if err != nil {
		return
	}
	s.GitHubToken = strings.TrimSpace(string(raw))
}

// SetGitHubToken persists the token
func (s *Store) SetGitHubToken(token string) error {
	s.GitHubToken = token

	if s.NoKeyRingMode {
		return s.writeFile(token)
	}
	if err := keyring.Set(service, user, token); err != nil {
		s.NoKeyRingMode = true
		return s.writeFile(token)
	}
	return nil
}

func (s *Store) writeFile(token string) error {
	if err := os.MkdirAll(s.globalDir, 0700); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	return os.WriteFile(filepath.Join(s.globalDir, tokenFile), []byte(token+"\n"), 0600)
}
