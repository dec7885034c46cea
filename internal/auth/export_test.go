package auth

import (
	"io"
	"time"
)

// WithEndpoints overrides the authorization and token endpoints.
func WithEndpoints(authURL, tokenURL string) FlowOptions {
	return func(o *flowOptions) {
		o.authURL = authURL
		o.tokenURL = tokenURL
	}
}

// WithListenAddr overrides the loopback listener address.
func WithListenAddr(addr string) FlowOptions {
	return func(o *flowOptions) {
		o.listenAddr = addr
	}
}

// WithBrowserOpener overrides how the authorization URL is opened.
func WithBrowserOpener(f func(string) error) FlowOptions {
	return func(o *flowOptions) {
		o.openBrowser = f
	}
}

// WithStateGenerator overrides the state value generator.
func WithStateGenerator(f func() string) FlowOptions {
	return func(o *flowOptions) {
		o.newState = f
	}
}

// WithTimeNow overrides the clock used for expiry decisions.
func WithTimeNow(f func() time.Time) FlowOptions {
	return func(o *flowOptions) {
		o.timeNow = f
	}
}

// WithOutput redirects the interactive flow messages.
func WithOutput(w io.Writer) FlowOptions {
	return func(o *flowOptions) {
		o.out = w
	}
}
