package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/xpost/internal/config"
)

var defaultCreds = map[string]string{
	"X_CONSUMER_KEY":        "ck",
	"X_CONSUMER_SECRET":     "cs",
	"X_ACCESS_TOKEN":        "at",
	"X_ACCESS_TOKEN_SECRET": "ats",
	"X_BEARER_TOKEN":        "apptoken",
	"X_CLIENT_ID":           "clientid",
}

// writeCredsFile writes an OpenClaw configuration file carrying the given
// variables under env.vars.
func writeCredsFile(t *testing.T, vars map[string]string) string {
	t.Helper()

	raw, err := json.Marshal(map[string]any{"env": map[string]any{"vars": vars}})
	require.NoError(t, err, "Setup: could not marshal credentials")

	path := filepath.Join(t.TempDir(), "openclaw.json")
	require.NoError(t, os.WriteFile(path, raw, 0600), "Setup: could not write credentials file")
	return path
}

// writeTokenFile writes a valid OAuth 2.0 token cache.
func writeTokenFile(t *testing.T) string {
	t.Helper()

	raw, err := json.Marshal(map[string]any{
		"access_token":  "pkcetoken",
		"refresh_token": "refresh",
		"expires_at":    time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err, "Setup: could not marshal tokens")

	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, raw, 0600), "Setup: could not write token file")
	return path
}

// newTestApp returns an app pointed at a local API server, with credentials
// resolved from a file rather than the environment.
func newTestApp(t *testing.T, handler http.Handler) (a *App, out, errOut *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := New()
	require.NoError(t, err, "Setup: could not create app")
	a.apiBaseURL = srv.URL
	a.creds = config.New(writeCredsFile(t, defaultCreds))

	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	a.cmd.SetOut(out)
	a.cmd.SetErr(errOut)
	return a, out, errOut
}

func TestUsageError(t *testing.T) {
	t.Parallel()

	a, err := New()
	require.NoError(t, err, "Setup: could not create app")
	a.cmd.SetOut(io.Discard)
	a.cmd.SetErr(io.Discard)
	a.cmd.SetArgs([]string{"no-such-command"})

	require.Error(t, a.Run(), "Unknown commands should fail")
	assert.True(t, a.UsageError(), "Unknown commands are usage errors")
}

func TestTweet(t *testing.T) {
	t.Parallel()

	var gotAuth, gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/tweets", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		fmt.Fprint(w, `{"data":{"id":"1","text":"hello"}}`)
	})

	a, out, _ := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"tweet", "hello"})

	require.NoError(t, a.Run(), "Tweet should not fail")
	assert.False(t, a.UsageError(), "A successful run is not a usage error")

	assert.True(t, strings.HasPrefix(gotAuth, "OAuth "), "Request should be signed with OAuth 1.0a")
	assert.JSONEq(t, `{"text":"hello"}`, gotBody)
	assert.Contains(t, out.String(), `"id": "1"`)
}

func TestTweetLength(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args []string

		wantErrCount string
	}{
		"Tweet at the limit":           {args: []string{"tweet", strings.Repeat("a", 280)}},
		"Multibyte tweet under limit":  {args: []string{"tweet", strings.Repeat("日", 200)}},
		"Multibyte reply at the limit": {args: []string{"reply", "9", strings.Repeat("é", 280)}},

		"Overlong tweet":           {args: []string{"tweet", strings.Repeat("a", 281)}, wantErrCount: "281 chars"},
		"Overlong multibyte tweet": {args: []string{"tweet", strings.Repeat("日", 281)}, wantErrCount: "281 chars"},
		"Overlong reply":           {args: []string{"reply", "9", strings.Repeat("日", 300)}, wantErrCount: "300 chars"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			requested := false
			mux := http.NewServeMux()
			mux.HandleFunc("/tweets", func(w http.ResponseWriter, r *http.Request) {
				requested = true
				fmt.Fprint(w, `{"data":{"id":"1"}}`)
			})

			a, _, _ := newTestApp(t, mux)
			a.cmd.SetArgs(tc.args)

			err := a.Run()
			if tc.wantErrCount != "" {
				require.Error(t, err, "Overlong text should be rejected before any request")
				assert.Contains(t, err.Error(), tc.wantErrCount, "The reported length should be in characters")
				assert.False(t, a.UsageError(), "The length check is a runtime error")
				assert.False(t, requested, "No request should be issued for overlong text")
				return
			}
			require.NoError(t, err, "Text within the character limit should be accepted")
			assert.True(t, requested, "The tweet should have been posted")
		})
	}
}

func TestMissingCredentials(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestApp(t, http.NewServeMux())
	a.creds = config.New(writeCredsFile(t, nil))
	a.cmd.SetArgs([]string{"tweet", "hello"})

	err := a.Run()
	require.Error(t, err, "Tweet without credentials should fail")
	assert.ErrorIs(t, err, config.ErrMissingOAuth1)
}

func TestVerify(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"42","username":"gopher","name":"Go Pher"}}`)
	})

	a, out, _ := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"verify"})

	require.NoError(t, a.Run(), "Verify should not fail")
	assert.Equal(t, "Authenticated as: @gopher (Go Pher)\n", out.String())
}

func TestSearch(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args     []string
		response string

		wantMaxResults string
		wantOut        string
		wantEmptyMsg   bool
	}{
		"Default max results": {
			args:           []string{"search", "golang"},
			response:       `{"data":[{"id":"1","text":"hi","author_id":"10"}],"includes":{"users":[{"id":"10","username":"gopher","name":"Go Pher"}]}}`,
			wantMaxResults: "10",
			wantOut:        `"username": "gopher"`,
		},
		"Requests below the API minimum are raised": {
			args:           []string{"search", "golang", "-n", "3"},
			response:       `{"data":[{"id":"1","text":"hi","author_id":"10"}]}`,
			wantMaxResults: "10",
		},
		"Requests above the API maximum are capped": {
			args:           []string{"search", "golang", "-n", "250"},
			response:       `{"data":[{"id":"1","text":"hi","author_id":"10"}]}`,
			wantMaxResults: "100",
		},
		"Empty results print a notice on stderr": {
			args:           []string{"search", "golang"},
			response:       `{"meta":{"result_count":0}}`,
			wantMaxResults: "10",
			wantEmptyMsg:   true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var gotMaxResults, gotQuery string
			mux := http.NewServeMux()
			mux.HandleFunc("/tweets/search/recent", func(w http.ResponseWriter, r *http.Request) {
				gotMaxResults = r.URL.Query().Get("max_results")
				gotQuery = r.URL.Query().Get("query")
				fmt.Fprint(w, tc.response)
			})

			a, out, errOut := newTestApp(t, mux)
			a.cmd.SetArgs(tc.args)

			require.NoError(t, a.Run(), "Search should not fail")
			assert.Equal(t, tc.wantMaxResults, gotMaxResults)
			assert.Equal(t, "golang", gotQuery)

			if tc.wantEmptyMsg {
				assert.Empty(t, out.String(), "Nothing should be printed to stdout")
				assert.Contains(t, errOut.String(), "No results found.")
				return
			}
			if tc.wantOut != "" {
				assert.Contains(t, out.String(), tc.wantOut, "Author info should be merged into tweets")
			}
		})
	}
}

func TestFollowResolvesUsername(t *testing.T) {
	t.Parallel()

	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"42"}}`)
	})
	mux.HandleFunc("/users/by/username/gopher", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"7"}}`)
	})
	mux.HandleFunc("/users/42/following", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		fmt.Fprint(w, `{"data":{"following":true}}`)
	})

	a, out, _ := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"follow", "@gopher"})

	require.NoError(t, a.Run(), "Follow should not fail")
	assert.JSONEq(t, `{"target_user_id":"7"}`, gotBody)
	assert.Contains(t, out.String(), `"following": true`)
}

func TestHide(t *testing.T) {
	t.Parallel()

	var gotMethod, gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/tweets/9/hidden", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		fmt.Fprint(w, `{"data":{"hidden":true}}`)
	})

	a, _, _ := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"hide", "9"})

	require.NoError(t, a.Run(), "Hide should not fail")
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.JSONEq(t, `{"hidden":true}`, gotBody)
}

func TestDM(t *testing.T) {
	t.Parallel()

	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/by/username/gopher", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"7"}}`)
	})
	mux.HandleFunc("/dm_conversations/with/7/messages", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		fmt.Fprint(w, `{"data":{"dm_event_id":"5"}}`)
	})

	a, _, _ := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"dm", "gopher", "hi there"})

	require.NoError(t, a.Run(), "DM should not fail")
	assert.JSONEq(t, `{"text":"hi there"}`, gotBody)
}

func TestProfile(t *testing.T) {
	t.Parallel()

	var gotForm string
	mux := http.NewServeMux()
	mux.HandleFunc("/account/update_profile.json", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotForm = string(raw)
		fmt.Fprint(w, `{"description":"new bio"}`)
	})

	a, out, _ := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"profile", "new bio"})

	require.NoError(t, a.Run(), "Profile should not fail")
	assert.Equal(t, "description=new+bio", gotForm)
	assert.Equal(t, "Bio updated: new bio\n", out.String())
}

func TestBookmarks(t *testing.T) {
	t.Parallel()

	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"data":{"id":"42"}}`)
	})
	mux.HandleFunc("/users/42/bookmarks", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"1","text":"saved","author_id":"10"},{"id":"2"}],"includes":{"users":[{"id":"10","username":"gopher","name":"Go Pher"}]}}`)
	})
	mux.HandleFunc("/tweets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("ids"), "Only the id-only bookmark should be looked up")
		fmt.Fprint(w, `{"data":[{"id":"2","text":"recovered","author_id":"10"}],"includes":{"users":[{"id":"10","username":"gopher","name":"Go Pher"}]}}`)
	})

	a, out, _ := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"--token-file", writeTokenFile(t), "bookmarks"})

	require.NoError(t, a.Run(), "Bookmarks should not fail")
	assert.Equal(t, "Bearer pkcetoken", gotAuth, "Bookmarks should use the cached PKCE token")
	assert.Contains(t, out.String(), `"text": "saved"`)
	assert.Contains(t, out.String(), `"text": "recovered"`, "Id-only bookmarks should be filled in")
}

func TestBookmarksWithoutTokens(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestApp(t, http.NewServeMux())
	a.cmd.SetArgs([]string{"--token-file", filepath.Join(t.TempDir(), "absent.json"), "bookmarks"})

	err := a.Run()
	require.Error(t, err, "Bookmarks without a token cache should fail")
	assert.Contains(t, err.Error(), "xpost auth")
}

func TestStreamRulesDelete(t *testing.T) {
	t.Parallel()

	var gotAuth, gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/tweets/search/stream/rules", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		fmt.Fprint(w, `{"meta":{"summary":{"deleted":1}}}`)
	})

	a, _, _ := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"stream-rules-delete", "r1"})

	require.NoError(t, a.Run(), "Rule deletion should not fail")
	assert.Equal(t, "Bearer apptoken", gotAuth, "Stream rules use the app-only bearer token")
	assert.JSONEq(t, `{"delete":{"ids":["r1"]}}`, gotBody)
}

func TestStreamSample(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/tweets/sample/stream", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"data":{"id":"1"}}`)
		fmt.Fprintln(w, `{"data":{"id":"2"}}`)
		fmt.Fprintln(w, `{"data":{"id":"3"}}`)
	})

	a, out, _ := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"stream-sample", "-n", "2"})

	require.NoError(t, a.Run(), "Stream sample should not fail")
	assert.Contains(t, out.String(), `"id": "2"`)
	assert.NotContains(t, out.String(), `"id": "3"`, "The stream should stop at the requested count")
}

func TestSearchAllProHint(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/tweets/search/all", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"title":"Client Forbidden"}`)
	})

	a, _, errOut := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"search-all", "golang"})

	require.Error(t, a.Run(), "Full-archive search without Pro access should fail")
	assert.Contains(t, errOut.String(), "requires Pro access", "A 403 should carry the Pro access hint")
}

func TestTrendsDefaultLocation(t *testing.T) {
	t.Parallel()

	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/trends/by/woeid/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"data":[{"trend_name":"#golang"}]}`)
	})

	a, out, _ := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"trends"})

	require.NoError(t, a.Run(), "Trends should not fail")
	assert.Equal(t, "/trends/by/woeid/1", gotPath, "The default location is worldwide")
	assert.Contains(t, out.String(), "#golang")
}

func TestThreadChain(t *testing.T) {
	t.Parallel()

	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/tweets/100", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"data":{"id":"100","conversation_id":"100","author_id":"10","created_at":"2024-01-01T00:00:00Z","text":"root"},
			"includes":{"users":[{"id":"10","username":"gopher","name":"Go Pher"}]}
		}`)
	})
	mux.HandleFunc("/tweets/search/recent", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		fmt.Fprint(w, `{"data":[
			{"id":"102","created_at":"2024-01-01T02:00:00Z","text":"third"},
			{"id":"101","created_at":"2024-01-01T01:00:00Z","text":"second"}
		]}`)
	})

	a, out, _ := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"thread-chain", "100"})

	require.NoError(t, a.Run(), "Thread chain should not fail")
	assert.Equal(t, "conversation_id:100 from:gopher", gotQuery)

	// The root tweet is not part of the search results but belongs at the
	// head of the chain.
	rootIdx := strings.Index(out.String(), `"text": "root"`)
	secondIdx := strings.Index(out.String(), `"text": "second"`)
	thirdIdx := strings.Index(out.String(), `"text": "third"`)
	require.NotEqual(t, -1, rootIdx, "The root tweet should be printed")
	assert.Less(t, rootIdx, secondIdx, "Tweets should be in chronological order")
	assert.Less(t, secondIdx, thirdIdx, "Tweets should be in chronological order")
}

func TestFollowersClampsResults(t *testing.T) {
	t.Parallel()

	var gotMaxResults string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/by/username/gopher", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"7"}}`)
	})
	mux.HandleFunc("/users/7/followers", func(w http.ResponseWriter, r *http.Request) {
		gotMaxResults = r.URL.Query().Get("max_results")
		fmt.Fprint(w, `{"data":[{"id":"8","username":"fan"}]}`)
	})

	a, _, _ := newTestApp(t, mux)
	a.cmd.SetArgs([]string{"followers", "gopher", "-n", "5000"})

	require.NoError(t, a.Run(), "Followers should not fail")
	assert.Equal(t, "1000", gotMaxResults, "max_results should be capped at the API limit")
}
