package webui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/sitesmith/sitesmith/pkg/history"
)

func newTestServer(t *testing.T) (*Server, *history.Store, *httptest.Server) {
	t.Helper()
	store := history.NewStore(t.TempDir())
	s := NewServer(store)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, store, ts
}

func seedVersion(t *testing.T, store *history.Store, project string) *history.Version {
	t.Helper()
	v, err := store.Save(project, "a restaurant", map[string]string{
		"src/App.jsx": "const App = () => <div>hello</div>;\nexport default App;",
	})
	require.NoError(t, err)
	return v
}

func TestPreviewLatest(t *testing.T) {
	_, store, ts := newTestServer(t)
	seedVersion(t, store, "proj")

	resp, err := http.Get(ts.URL + "/preview/proj")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	require.Contains(t, html, `<div id="root">`)
	require.Contains(t, html, `window.__SITESMITH_PROJECT__ = "proj";`)
	require.Contains(t, html, "new WebSocket")
}

func TestPreviewByVersionID(t *testing.T) {
	_, store, ts := newTestServer(t)
	v1 := seedVersion(t, store, "proj")
	_, err := store.Save("proj", "edit", map[string]string{
		"src/App.jsx": "const App = () => <div>edited</div>;\nexport default App;",
	})
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/preview/proj/" + v1.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	require.Contains(t, string(body), "hello")
	require.NotContains(t, string(body), "edited")
}

func TestPreviewUnknownProject(t *testing.T) {
	_, _, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/preview/ghost")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIndexListsProjects(t *testing.T) {
	_, store, ts := newTestServer(t)
	seedVersion(t, store, "alpha")
	seedVersion(t, store, "beta")

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Projects []string `json:"projects"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, []string{"alpha", "beta"}, out.Projects)
}

func TestNotifyReloadBroadcasts(t *testing.T) {
	s, _, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration races the dial returning; give the handler a beat.
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.conns) == 1
	}, time.Second, 10*time.Millisecond)

	s.NotifyReload("proj")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg map[string]string
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "reload", msg["type"])
	require.Equal(t, "proj", msg["project"])
}
