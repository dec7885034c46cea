// Package auth builds authenticated HTTP clients for the three schemes the
// X API requires: OAuth 1.0a user context, app-only bearer tokens, and
// OAuth 2.0 PKCE user context.
package auth

import (
	"net/http"

	"github.com/dghubble/oauth1"

	"github.com/openclaw/xpost/internal/config"
)

// OAuth1Client returns an *http.Client signing every request with the given
// OAuth 1.0a user context credentials. The signature covers form-encoded
// bodies, which the v1.1 profile update relies on.
func OAuth1Client(creds config.OAuth1Creds) *http.Client {
	cfg := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
	return cfg.Client(oauth1.NoContext, token)
}

// BearerClient returns an *http.Client attaching a static bearer token to
// every request. Used for app-only endpoints (streams, full-archive search,
// trends, spaces) and for PKCE access tokens.
func BearerClient(token string) *http.Client {
	return &http.Client{Transport: &bearerTransport{token: token}}
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	// Per the RoundTripper contract, the request must not be mutated.
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+t.token)
	return base.RoundTrip(r)
}
