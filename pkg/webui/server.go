// Package webui serves rendered previews over HTTP with live reload. Each
// page holds a websocket to the server; saving a new version broadcasts a
// reload event and the page refreshes itself.
package webui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sitesmith/sitesmith/pkg/history"
	"github.com/sitesmith/sitesmith/pkg/logging"
	"github.com/sitesmith/sitesmith/pkg/preview"
)

// reloadClientScript is injected into served preview pages. It reconnects
// with a flat backoff so a server restart during development picks the page
// back up.
const reloadClientScript = `<script>
(function () {
  function connect() {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var sock = new WebSocket(proto + location.host + '/ws');
    sock.onmessage = function (event) {
      try {
        var msg = JSON.parse(event.data);
        if (msg.type === 'reload' && msg.project === window.__SITESMITH_PROJECT__) {
          location.reload();
        }
      } catch (err) {}
    };
    sock.onclose = function () { setTimeout(connect, 2000); };
  }
  connect();
})();
</script>`

// Server serves previews from the version ledger.
type Server struct {
	store  *history.Store
	logger *logging.Logger

	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*SafeConn]bool
}

func NewServer(store *history.Store) *Server {
	return &Server{
		store:  store,
		logger: logging.GetLogger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(map[*SafeConn]bool),
	}
}

// Handler returns the HTTP mux: project listing at /, previews at
// /preview/<project>[/<version-id>], reload socket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/preview/", s.handlePreview)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.LogProcessStep("Preview server listening on " + addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// WatchLedger polls the version ledger and broadcasts a reload whenever a
// project gains a new version. Edits run in a separate process from the
// server, so polling the shared ledger directory is the coordination point.
func (s *Server) WatchLedger(ctx context.Context, interval time.Duration) {
	seen := make(map[string]int)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			projects, err := s.store.Projects()
			if err != nil {
				continue
			}
			for _, project := range projects {
				latest, err := s.store.Latest(project)
				if err != nil {
					continue
				}
				if prev, ok := seen[project]; ok && latest.Number > prev {
					s.logger.Logf("version %d of %s detected, broadcasting reload", latest.Number, project)
					s.NotifyReload(project)
				}
				seen[project] = latest.Number
			}
		}
	}
}

// NotifyReload tells every connected page for the project to refresh.
func (s *Server) NotifyReload(project string) {
	msg := map[string]string{"type": "reload", "project": project}

	s.mu.Lock()
	conns := make([]*SafeConn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(msg); err != nil {
			s.logger.Logf("reload broadcast failed: %v", err)
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	projects, err := s.store.Projects()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"projects": projects})
}

// handlePreview renders /preview/<project> (latest) or
// /preview/<project>/<version-id>.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/preview/"), "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "project name required", http.StatusBadRequest)
		return
	}
	project := parts[0]

	var v *history.Version
	var err error
	if len(parts) > 1 {
		v, err = s.store.Get(project, parts[1])
	} else {
		v, err = s.store.Latest(project)
	}
	switch {
	case errors.Is(err, history.ErrNoVersions), errors.Is(err, history.ErrVersionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	html := preview.Render(v.Files, preview.ModeFromFiles(v.Files))
	html = injectReloadClient(html, project)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

// injectReloadClient adds the project marker and reload socket script just
// before the closing body tag.
func injectReloadClient(html, project string) string {
	projectJSON, _ := json.Marshal(project)
	snippet := "<script>window.__SITESMITH_PROJECT__ = " + string(projectJSON) + ";</script>\n" +
		reloadClientScript + "\n</body>"
	if strings.Contains(html, "</body>") {
		return strings.Replace(html, "</body>", snippet, 1)
	}
	return html + snippet
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Logf("websocket upgrade failed: %v", err)
		return
	}
	sc := NewSafeConn(conn)

	s.mu.Lock()
	s.conns[sc] = true
	s.mu.Unlock()

	// Read loop only detects disconnects; clients never send anything the
	// server acts on.
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.conns, sc)
			s.mu.Unlock()
			sc.Close()
		}()
		for {
			if _, _, err := sc.Underlying().ReadMessage(); err != nil {
				return
			}
		}
	}()
}
