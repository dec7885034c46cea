package auth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ubuntu/decorate"
	"golang.org/x/oauth2"

	"github.com/openclaw/xpost/internal/constants"
)

// Flow drives the OAuth 2.0 Authorization Code with PKCE flow and serves
// access tokens, refreshing them when they are close to expiry.
type Flow struct {
	oauth      *oauth2.Config
	store      Store
	listenAddr string

	openBrowser func(string) error
	newState    func() string
	timeNow     func() time.Time
	out         io.Writer
}

type flowOptions struct {
	authURL    string
	tokenURL   string
	listenAddr string

	openBrowser func(string) error
	newState    func() string
	timeNow     func() time.Time
	out         io.Writer
}

// FlowOptions represents an optional function to override Flow default values.
type FlowOptions func(*flowOptions)

// NewFlow returns a PKCE flow for the given OAuth 2.0 client. clientSecret
// may be empty for public clients.
func NewFlow(clientID, clientSecret string, store Store, args ...FlowOptions) *Flow {
	opts := flowOptions{
		authURL:     constants.AuthorizeURL,
		tokenURL:    constants.TokenURL,
		listenAddr:  constants.CallbackAddr,
		openBrowser: openBrowser,
		newState:    uuid.NewString,
		timeNow:     time.Now,
		out:         os.Stdout,
	}
	for _, opt := range args {
		opt(&opts)
	}

	return &Flow{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  opts.authURL,
				TokenURL: opts.tokenURL,
			},
			RedirectURL: "http://" + opts.listenAddr + constants.CallbackPath,
			Scopes:      strings.Fields(constants.PKCEScopes),
		},
		store:       store,
		listenAddr:  opts.listenAddr,
		openBrowser: opts.openBrowser,
		newState:    opts.newState,
		timeNow:     opts.timeNow,
		out:         opts.out,
	}
}

type callback struct {
	code    string
	state   string
	errCode string
}

// Authorize runs the interactive flow: it opens the browser on the
// authorization URL, captures exactly one redirect on the loopback listener,
// exchanges the code and persists the resulting tokens.
func (f *Flow) Authorize(ctx context.Context) (err error) {
	defer decorate.OnError(&err, "authorization failed")

	verifier := oauth2.GenerateVerifier()
	state := f.newState()
	authURL := f.oauth.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))

	ln, err := net.Listen("tcp", f.listenAddr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", f.listenAddr, err)
	}

	got := make(chan callback, 1)
	srv := &http.Server{Handler: callbackHandler(got)}
	go func() {
		// The server only lives until the first redirect arrives.
		_ = srv.Serve(ln)
	}()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	fmt.Fprintln(f.out, "Starting OAuth 2.0 PKCE authorization flow...")
	fmt.Fprintln(f.out, "Opening browser for authorization...")
	fmt.Fprintf(f.out, "If the browser doesn't open, visit:\n  %s\n\n", authURL)
	if err := f.openBrowser(authURL); err != nil {
		fmt.Fprintln(f.out, "Could not open the browser, use the URL above.")
	}

	var cb callback
	select {
	case <-ctx.Done():
		return ctx.Err()
	case cb = <-got:
	}

	if cb.errCode != "" {
		return fmt.Errorf("authorization denied: %s", cb.errCode)
	}
	if cb.code == "" {
		return fmt.Errorf("no authorization code received")
	}
	if cb.state != state {
		return fmt.Errorf("state mismatch, possible CSRF attack")
	}

	tok, err := f.oauth.Exchange(ctx, cb.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return fmt.Errorf("could not exchange code for token: %w", err)
	}

	expiresAt := tok.Expiry
	if expiresAt.IsZero() {
		expiresAt = f.timeNow().Add(2 * time.Hour)
	}
	if err := f.store.Save(Tokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    expiresAt.Unix(),
	}); err != nil {
		return err
	}

	fmt.Fprintf(f.out, "Authorization successful! Tokens saved to %s\n", f.store.Path())
	fmt.Fprintf(f.out, "Token expires in %d minutes (auto-refreshes).\n", int(time.Until(expiresAt).Minutes()))
	return nil
}

// AccessToken returns a valid access token, refreshing it when it is within
// the refresh leeway of expiry. A rotated refresh token is persisted.
func (f *Flow) AccessToken(ctx context.Context) (string, error) {
	t, err := f.store.Load()
	if err != nil {
		return "", err
	}

	if f.timeNow().Unix() < t.ExpiresAt-constants.RefreshLeeway {
		return t.AccessToken, nil
	}

	if t.RefreshToken == "" {
		return "", fmt.Errorf("no refresh token. Run 'xpost auth' to re-authorize")
	}

	tok, err := f.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: t.RefreshToken}).Token()
	if err != nil {
		return "", fmt.Errorf("could not refresh token: %v. Run 'xpost auth' to re-authorize", err)
	}

	refreshed := Tokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry.Unix(),
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = t.RefreshToken
	}
	if tok.Expiry.IsZero() {
		refreshed.ExpiresAt = f.timeNow().Add(2 * time.Hour).Unix()
	}
	if err := f.store.Save(refreshed); err != nil {
		return "", err
	}

	return refreshed.AccessToken, nil
}

// Client returns an *http.Client authenticated with a valid PKCE access token.
func (f *Flow) Client(ctx context.Context) (*http.Client, error) {
	token, err := f.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return BearerClient(token), nil
}

func callbackHandler(got chan<- callback) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		cb := callback{
			code:    q.Get("code"),
			state:   q.Get("state"),
			errCode: q.Get("error"),
		}

		w.Header().Set("Content-Type", "text/html")
		if cb.code != "" {
			fmt.Fprint(w, "<html><body><h2>Authorization successful!</h2><p>You can close this tab and return to the terminal.</p></body></html>")
		} else {
			errCode := cb.errCode
			if errCode == "" {
				errCode = "unknown"
			}
			fmt.Fprintf(w, "<html><body><h2>Authorization failed: %s</h2></body></html>", errCode)
		}

		select {
		case got <- cb:
		default:
			// A second request raced the first one; only the first counts.
		}
	})
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
