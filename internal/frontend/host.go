// Package frontend serves the browser page and runs one view-model per
// websocket connection against the game server.
package frontend

import (
	_ "embed"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pefman/packet-pals/internal/api"
	"github.com/pefman/packet-pals/internal/prefs"
	"github.com/pefman/packet-pals/internal/view"
	"go.uber.org/zap"
)

//go:embed static/index.html
var indexHTML string

// SessionCookie identifies a browser across page loads; preferences are keyed
// by it.
const SessionCookie = "pals_sid"

type Host struct {
	API        *api.Client
	Prefs      prefs.Store
	Tutorial   []view.TutorialStep
	ResetDelay time.Duration
	Log        *zap.Logger
	Version    string
}

func (h *Host) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

func (h *Host) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", h.serveIndex).Methods("GET")
	r.HandleFunc("/ws", h.handleWS).Methods("GET")
	r.HandleFunc(view.WigleDownloadPath, h.handleDownloadWigle).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	}).Methods("GET")
	return r
}

// sessionID returns the browser's id, issuing a cookie when it has none.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   10 * 365 * 24 * 3600,
	})
	return id
}

func (h *Host) serveIndex(w http.ResponseWriter, r *http.Request) {
	sessionID(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	version := h.Version
	if version == "" {
		version = "dev"
	}
	_, _ = io.WriteString(w, strings.ReplaceAll(indexHTML, "{{BUILD_VERSION}}", version))
}

// handleDownloadWigle streams the export from the game server so the browser
// never talks to it directly.
func (h *Host) handleDownloadWigle(w http.ResponseWriter, r *http.Request) {
	body, header, err := h.API.DownloadWigle(r.Context())
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) {
			http.Error(w, se.Body, se.Code)
			return
		}
		h.logger().Warn("frontend: wigle download failed", zap.Error(err))
		http.Error(w, "Error: "+api.ErrorText(err), http.StatusBadGateway)
		return
	}
	defer body.Close()
	for _, k := range []string{"Content-Type", "Content-Disposition", "Content-Length"} {
		if v := header.Get(k); v != "" {
			w.Header().Set(k, v)
		}
	}
	if _, err := io.Copy(w, body); err != nil {
		h.logger().Warn("frontend: wigle download interrupted", zap.Error(err))
	}
}
