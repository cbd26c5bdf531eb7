package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/docshell/internal/nav"
	"github.com/ziadkadry99/docshell/internal/site"
	"github.com/ziadkadry99/docshell/internal/uistate"
)

func loadSite(t *testing.T, basePath string) *site.Site {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "sample_site")
	s, err := site.Load(site.Options{
		SiteTitle:  "Acme Docs",
		ContentDir: dir,
		NavFile:    filepath.Join(dir, "nav.yml"),
		BasePath:   basePath,
		Exclude:    []string{"**/.*"},
		MatchMode:  nav.MatchExact,
	})
	require.NoError(t, err)
	return s
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	srv, err := New(cfg, loadSite(t, ""), uistate.NewMemoryBackend())
	require.NoError(t, err)
	return srv
}

// do serves one request, carrying cookie when it is non-nil.
func do(srv *Server, method, target string, body []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func clientCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == ClientCookie {
			return c
		}
	}
	t.Fatalf("response did not set %s", ClientCookie)
	return nil
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := do(srv, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, Config{AllowAll: true})

	req := httptest.NewRequest(http.MethodOptions, "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPage(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := do(srv, http.MethodGet, "/guide/install", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<title>Install - Acme Docs</title>")
	assert.Contains(t, w.Body.String(), `data-live="true"`)

	c := clientCookie(t, w)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)

	w = do(srv, http.MethodGet, "/guide/install", nil, c)
	assert.Empty(t, w.Result().Cookies(), "a known client keeps its id")

	w = do(srv, http.MethodGet, "/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssets(t *testing.T) {
	srv := newTestServer(t, Config{Style: "github"})

	w := do(srv, http.MethodGet, "/assets/style.css", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, w.Body.String(), ".chroma")

	w = do(srv, http.MethodGet, "/assets/script.js", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(srv, http.MethodGet, "/search-index.json", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []site.SearchEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 5)
}

func TestNavAPI(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := do(srv, http.MethodGet, "/api/nav?uri=/guide/install", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	c := clientCookie(t, w)

	var got navResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.Fingerprint)
	assert.Len(t, got.Items, 4)
	assert.Equal(t, uistate.GroupState{"guide": true, "guide/advanced": false, "api": false}, got.Groups)
	assert.False(t, got.AllExpanded)
	assert.False(t, got.ExpandAllDisabled)

	toggle := func(target string) groupsResponse {
		t.Helper()
		w := do(srv, http.MethodPost, target, nil, c)
		require.Equal(t, http.StatusOK, w.Code)
		var got groupsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		return got
	}

	toggled := toggle("/api/nav/groups/api/toggle?uri=/guide/install")
	assert.True(t, toggled.Groups["api"])
	assert.True(t, toggled.Groups["guide"])
	assert.False(t, toggled.AllExpanded)

	toggled = toggle("/api/nav/groups/guide%2Fadvanced/toggle?uri=/guide/install")
	assert.True(t, toggled.Groups["guide/advanced"], "escaped ids with slashes resolve")
	assert.True(t, toggled.AllExpanded)

	w = do(srv, http.MethodPost, "/api/nav/groups/nope/toggle?uri=/guide/install", nil, c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	toggled = toggle("/api/nav/toggle-all?uri=/guide/install")
	assert.False(t, toggled.AllExpanded)
	for id, expanded := range toggled.Groups {
		assert.False(t, expanded, id)
	}

	toggled = toggle("/api/nav/toggle-all?uri=/guide/install")
	assert.True(t, toggled.AllExpanded)
	assert.Len(t, toggled.Groups, 3)
}

func TestNavState_IsPerClient(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := do(srv, http.MethodPost, "/api/nav/groups/api/toggle?uri=/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(srv, http.MethodGet, "/api/state/nav?uri=/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var groups uistate.GroupState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &groups))
	assert.False(t, groups["api"], "a new client starts from the defaults")
}

func TestStateAPI(t *testing.T) {
	srv := newTestServer(t, Config{})
	c := clientCookie(t, do(srv, http.MethodGet, "/", nil, nil))

	w := do(srv, http.MethodGet, "/api/state/sidebar", nil, c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", strings.TrimSpace(w.Body.String()))

	w = do(srv, http.MethodPut, "/api/state/sidebar", []byte("true"), c)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(srv, http.MethodGet, "/api/state/sidebar", nil, c)
	assert.Equal(t, "true", strings.TrimSpace(w.Body.String()))

	w = do(srv, http.MethodPut, "/api/state/language", []byte(`"python"`), c)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(srv, http.MethodGet, "/api/state/language", nil, c)
	assert.Equal(t, `"python"`, strings.TrimSpace(w.Body.String()))

	w = do(srv, http.MethodPut, "/api/state/nav?uri=/", []byte(`{"guide":true}`), c)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(srv, http.MethodGet, "/api/state/nav?uri=/", nil, c)
	var groups uistate.GroupState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &groups))
	assert.True(t, groups["guide"])

	w = do(srv, http.MethodPut, "/api/state/nav?uri=/", []byte(`{"bogus":true}`), c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(srv, http.MethodPut, "/api/state/sidebar", []byte("{"), c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(srv, http.MethodGet, "/api/state/theme", nil, c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStateAPI_RejectedNavPutChangesNothing(t *testing.T) {
	// Map order is random, so run against fresh servers until both orders
	// of the valid and unknown id have almost certainly been seen.
	for i := 0; i < 20; i++ {
		srv := newTestServer(t, Config{})
		c := clientCookie(t, do(srv, http.MethodGet, "/", nil, nil))

		w := do(srv, http.MethodPut, "/api/state/nav?uri=/", []byte(`{"api":true,"bogus":true}`), c)
		require.Equal(t, http.StatusBadRequest, w.Code)

		w = do(srv, http.MethodGet, "/api/state/nav?uri=/", nil, c)
		require.Equal(t, http.StatusOK, w.Code)
		var groups uistate.GroupState
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &groups))
		require.False(t, groups["api"], "a rejected update must not be partially applied")
	}
}

func TestBasePath(t *testing.T) {
	srv, err := New(Config{}, loadSite(t, "/docs"), uistate.NewMemoryBackend())
	require.NoError(t, err)

	w := do(srv, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/docs/", w.Header().Get("Location"))

	w = do(srv, http.MethodGet, "/docs/guide/install", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/docs", clientCookie(t, w).Path)

	w = do(srv, http.MethodGet, "/docs/api/nav?uri=/docs/guide/install", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestStateFeed(t *testing.T) {
	srv := newTestServer(t, Config{})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	c := clientCookie(t, do(srv, http.MethodGet, "/", nil, nil))

	header := http.Header{}
	header.Set("Cookie", c.String())
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/state"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return srv.Hub().Listeners(c.Value) == 1
	}, 2*time.Second, 10*time.Millisecond)

	w := do(srv, http.MethodPut, "/api/state/language", []byte(`"go"`), c)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Another client's writes stay private.
	do(srv, http.MethodPut, "/api/state/language", []byte(`"rust"`), nil)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var change uistate.Change
	require.NoError(t, conn.ReadJSON(&change))
	assert.Equal(t, c.Value, change.Scope)
	assert.Equal(t, uistate.KeyLanguage, change.Key)
	assert.JSONEq(t, `"go"`, string(change.Value))
}
