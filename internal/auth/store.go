package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/ubuntu/decorate"
)

// ErrNoTokens is returned when no token cache exists yet.
var ErrNoTokens = errors.New("no OAuth 2.0 tokens found. Run 'xpost auth' first")

// Tokens is the on-disk representation of the OAuth 2.0 token cache.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Store persists OAuth 2.0 tokens to a JSON file.
type Store struct {
	path string
}

// NewStore returns a token store backed by the given file path.
func NewStore(path string) Store {
	return Store{path: path}
}

// Path returns the file path backing the store.
func (s Store) Path() string {
	return s.path
}

// Load reads the cached tokens. ErrNoTokens is returned when the cache file
// does not exist or does not parse.
func (s Store) Load() (Tokens, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Tokens{}, ErrNoTokens
	}

	var t Tokens
	if err := json.Unmarshal(raw, &t); err != nil {
		return Tokens{}, ErrNoTokens
	}
	return t, nil
}

// Save writes the tokens, creating the parent directory if needed. The file
// holds credentials so it is not group or world readable.
func (s Store) Save(t Tokens) (err error) {
	defer decorate.OnError(&err, "could not save OAuth 2.0 tokens")

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, raw, 0600)
}
