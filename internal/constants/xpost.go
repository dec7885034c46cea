// Package constants is responsible for defining the constants used in the application.
// It also provides the default paths for the OAuth 2.0 token cache and the
// OpenClaw credentials file.
package constants

import (
	"log/slog"
	"os"
	"path/filepath"
)

var (
	// Version is the version of the application.
	Version = "Dev"
)

const (
	// CmdName is the name of the command line tool.
	CmdName = "xpost"

	// APIBaseURL is the base URL of the X API v2.
	APIBaseURL = "https://api.x.com/2"

	// UpdateProfileURL is the v1.1 endpoint used for profile updates, which
	// has no v2 equivalent.
	UpdateProfileURL = "https://api.twitter.com/1.1/account/update_profile.json"

	// AuthorizeURL is the OAuth 2.0 authorization endpoint.
	AuthorizeURL = "https://twitter.com/i/oauth2/authorize"

	// TokenURL is the OAuth 2.0 token endpoint, used for both the code
	// exchange and the refresh-token grant.
	TokenURL = "https://api.x.com/2/oauth2/token"

	// CallbackAddr is the loopback address the one-shot redirect listener
	// binds to during the PKCE flow.
	CallbackAddr = "127.0.0.1:8017"

	// CallbackPath is the path component of the registered redirect URI.
	CallbackPath = "/callback"

	// PKCEScopes are the scopes requested during the PKCE flow. offline.access
	// is required to receive a refresh token.
	PKCEScopes = "bookmark.read bookmark.write tweet.read users.read offline.access"

	// TokenFileName is the base name of the OAuth 2.0 token cache file.
	TokenFileName = "tokens.json"

	// DefaultTokenDirName is the name of the directory holding the token cache.
	DefaultTokenDirName = ".xpost"

	// MaxTweetLength is the maximum length of a tweet or reply.
	MaxTweetLength = 280

	// RefreshLeeway is the number of seconds before expiry at which a PKCE
	// access token is refreshed.
	RefreshLeeway = 60

	// DefaultLogLevel is the default log level of the application.
	DefaultLogLevel = slog.LevelWarn
)

var (
	// DefaultTokenPath is the default path of the OAuth 2.0 token cache file.
	DefaultTokenPath string

	// OpenClawConfigPath is the path of the OpenClaw configuration file used
	// as a credentials fallback when the environment is not set.
	OpenClawConfigPath string
)

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to relative paths rather than refusing to start.
		slog.Warn("Could not determine home directory", "error", err)
	}

	DefaultTokenPath = filepath.Join(home, DefaultTokenDirName, TokenFileName)
	OpenClawConfigPath = filepath.Join(home, ".openclaw", "openclaw.json")
}
