// Package config loads X API credentials.
//
// Credentials are resolved from the environment first, then from the
// OpenClaw configuration file (~/.openclaw/openclaw.json), which stores
// environment variables under env.vars.
package config

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/ubuntu/decorate"
)

// Environment variable names recognized for each credential.
const (
	EnvConsumerKey       = "X_CONSUMER_KEY"
	EnvConsumerSecret    = "X_CONSUMER_SECRET"
	EnvAccessToken       = "X_ACCESS_TOKEN"
	EnvAccessTokenSecret = "X_ACCESS_TOKEN_SECRET"
	EnvBearerToken       = "X_BEARER_TOKEN"
	EnvClientID          = "X_CLIENT_ID"
	EnvClientSecret      = "X_CLIENT_SECRET"
)

var (
	// ErrMissingOAuth1 is returned when any of the four OAuth 1.0a credentials is not set.
	ErrMissingOAuth1 = errors.New("missing X API credentials")
	// ErrMissingBearer is returned when no bearer token is set.
	ErrMissingBearer = errors.New("missing X_BEARER_TOKEN. Get it from https://developer.x.com/en/portal/dashboard")
	// ErrMissingClientID is returned when no OAuth 2.0 client ID is set.
	ErrMissingClientID = errors.New("missing X_CLIENT_ID. Required for OAuth 2.0 PKCE (bookmarks)")
)

// OAuth1Creds holds the four credentials of an OAuth 1.0a user context.
type OAuth1Creds struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// Provider resolves credentials from the environment and the OpenClaw
// configuration file.
type Provider struct {
	lookupEnv  func(string) string
	configPath string

	fileVars map[string]string
	loaded   bool
}

type options struct {
	lookupEnv  func(string) string
	configPath string
}

// Options represents an optional function to override Provider default values.
type Options func(*options)

// New returns a credentials provider reading from the process environment
// and the given fallback configuration file.
func New(configPath string, args ...Options) *Provider {
	opts := options{
		lookupEnv:  os.Getenv,
		configPath: configPath,
	}
	for _, opt := range args {
		opt(&opts)
	}

	return &Provider{
		lookupEnv:  opts.lookupEnv,
		configPath: opts.configPath,
	}
}

// get resolves a single variable, environment first.
func (p *Provider) get(name string) string {
	if v := p.lookupEnv(name); v != "" {
		return v
	}
	return p.fileLookup(name)
}

// fileLookup reads env.vars from the OpenClaw configuration file. The file is
// parsed at most once; a missing or unparsable file resolves to nothing.
func (p *Provider) fileLookup(name string) string {
	if !p.loaded {
		p.loaded = true

		raw, err := os.ReadFile(p.configPath)
		if err != nil {
			return ""
		}

		var cfg struct {
			Env struct {
				Vars map[string]string `json:"vars"`
			} `json:"env"`
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return ""
		}
		p.fileVars = cfg.Env.Vars
	}

	return p.fileVars[name]
}

// OAuth1 returns the OAuth 1.0a credentials, or ErrMissingOAuth1 if any of
// the four is absent.
func (p *Provider) OAuth1() (creds OAuth1Creds, err error) {
	defer decorate.OnError(&err, "could not load OAuth 1.0a credentials")

	creds = OAuth1Creds{
		ConsumerKey:       p.get(EnvConsumerKey),
		ConsumerSecret:    p.get(EnvConsumerSecret),
		AccessToken:       p.get(EnvAccessToken),
		AccessTokenSecret: p.get(EnvAccessTokenSecret),
	}

	if creds.ConsumerKey == "" || creds.ConsumerSecret == "" || creds.AccessToken == "" || creds.AccessTokenSecret == "" {
		return OAuth1Creds{}, ErrMissingOAuth1
	}
	return creds, nil
}

// Bearer returns the app-only bearer token.
func (p *Provider) Bearer() (string, error) {
	token := p.get(EnvBearerToken)
	if token == "" {
		return "", ErrMissingBearer
	}
	return token, nil
}

// ClientID returns the OAuth 2.0 client ID.
func (p *Provider) ClientID() (string, error) {
	id := p.get(EnvClientID)
	if id == "" {
		return "", ErrMissingClientID
	}
	return id, nil
}

// ClientSecret returns the OAuth 2.0 client secret, which is optional for
// public clients. An empty string means none is configured.
func (p *Provider) ClientSecret() string {
	return p.get(EnvClientSecret)
}
