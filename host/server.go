// Package host serves the game to browsers: one Game per websocket,
// frames and events pushed as JSON, pointer and phase commands read back.
package host

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/lixenwraith/drag-match/config"
	"github.com/lixenwraith/drag-match/content"
	"github.com/lixenwraith/drag-match/status"
)

// Version is reported by /version and the CLI
const Version = "0.1.0"

const (
	logDate string        = `2006-01-02T15:04:05.000-07:00`
	timeout time.Duration = 10 * time.Second
	qrSize                = 320
)

// Metric names
const (
	metricActive   = "sessions.active"
	metricServed   = "sessions.served"
	metricFrames   = "frames.sent"
	metricDropped  = "messages.dropped"
	metricCommands = "commands.total"
	metricUnknown  = "commands.unknown"
)

//go:embed static/index.html
var indexHTML []byte

//go:embed static/app.js
var appJS []byte

// Server owns the router and the catalog shared by every connection
type Server struct {
	cfg      *config.Config
	catalog  *content.Catalog
	router   *httprouter.Router
	upgrader websocket.Upgrader
	stats    *status.Registry
}

// New builds a server; a nil catalog uses the embedded pack
func New(cfg *config.Config, catalog *content.Catalog) (*Server, error) {
	if catalog == nil {
		c, err := content.NewCatalog(content.Default().Levels...)
		if err != nil {
			return nil, err
		}
		catalog = c
	}

	s := &Server{
		cfg:     cfg,
		catalog: catalog,
		router:  httprouter.New(),
		stats:   status.NewRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	prefix := strings.TrimSuffix(s.cfg.Prefix, "/")

	s.router.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		log.Printf("host: panic serving %s: %v", r.URL.Path, i)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		s.securityHeaders(w)
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "An error has occurred. Please try again.\n")
	}

	s.router.GET(prefix+"/", s.serveIndex)
	s.router.GET(prefix+"/app.js", s.serveScript)
	s.router.GET(prefix+"/ws", s.serveWS)
	s.router.GET(prefix+"/qr", s.serveQR)
	s.router.GET(prefix+"/healthz", s.serveHealthCheck)
	s.router.GET(prefix+"/version", s.serveVersion)
	s.router.GET(prefix+"/stats", s.serveStats)
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Active returns the number of open game connections
func (s *Server) Active() int {
	return int(s.stats.Counter(metricActive).Load())
}

// Stats exposes the server metrics registry
func (s *Server) Stats() *status.Registry {
	return s.stats
}

// Serve listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}

	errs := make(chan error, 1)
	go func() {
		logf(s.cfg, "SERVE: Listening on %s://%s%s/", s.cfg.Scheme(), ln.Addr(), s.cfg.Prefix)
		var err error
		if s.cfg.TLSCert != "" && s.cfg.TLSKey != "" {
			err = srv.ServeTLS(ln, s.cfg.TLSCert, s.cfg.TLSKey)
		} else {
			err = srv.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) securityHeaders(w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'")

	if s.cfg.Scheme() == "https" {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
	}
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	s.securityHeaders(w)
	_, _ = w.Write(indexHTML)
	logf(s.cfg, "SERVE: Index to %s", realIP(r))
}

func (s *Server) serveScript(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	s.securityHeaders(w)
	_, _ = w.Write(appJS)
}

func (s *Server) serveHealthCheck(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	s.securityHeaders(w)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) serveVersion(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	s.securityHeaders(w)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("dragmatch v" + Version + "\n"))
}

func (s *Server) serveStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	s.securityHeaders(w)
	if err := json.NewEncoder(w).Encode(s.stats.Snapshot()); err != nil {
		log.Printf("host: stats encode: %v", err)
	}
}

// serveQR encodes the play URL so a phone can join from the host screen
func (s *Server) serveQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	path := strings.TrimSuffix(r.URL.Path, "/qr") + "/"
	url := scheme + "://" + r.Host + path

	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
	logf(s.cfg, "SERVE: QR for %s to %s", url, realIP(r))
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("host: upgrade error: %v", err)
		return
	}

	c, err := newClient(s, conn, realIP(r))
	if err != nil {
		log.Printf("host: session setup failed: %v", err)
		_ = conn.Close()
		return
	}

	s.stats.Counter(metricActive).Add(1)
	n := s.stats.Counter(metricServed).Add(1)
	logf(s.cfg, "GAMES: Session %d opened for %s", n, c.remote)

	go c.writePump()
	c.readPump()

	s.stats.Counter(metricActive).Add(-1)
	logf(s.cfg, "GAMES: Session %d closed for %s", n, c.remote)
}
