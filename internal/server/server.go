// Package server exposes the game world over the plain GET API the browser
// client talks to.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/pefman/packet-pals/internal/game"
	"github.com/pefman/packet-pals/internal/models"
	"github.com/pefman/packet-pals/internal/scan"
	"github.com/pefman/packet-pals/internal/stats"
	"go.uber.org/zap"
)

const scanDone = "Scan done, monsters updated, wigle data logged."

type Server struct {
	World  *game.World
	Source scan.Source
	Wigle  *scan.WigleLog
	Stats  *stats.Tracker
	Log    *zap.Logger

	mu      sync.Mutex
	current models.BattleStart
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Routes registers every endpoint on a new router.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, "ok")
	}).Methods("GET")
	r.HandleFunc("/scan", s.handleScan).Methods("GET")
	r.HandleFunc("/monsters", s.handleMonsters).Methods("GET")
	r.HandleFunc("/startBattle", s.handleStartBattle).Methods("GET")
	r.HandleFunc("/battleAction", s.handleBattleAction).Methods("GET")
	r.HandleFunc("/myParty", s.handleMyParty).Methods("GET")
	r.HandleFunc("/removeFromParty", s.handleRemove).Methods("GET")
	r.HandleFunc("/swapPartySlots", s.handleSwap).Methods("GET")
	r.HandleFunc("/downloadWigle", s.handleDownloadWigle).Methods("GET")
	r.HandleFunc("/clearWigle", s.handleClearWigle).Methods("GET")
	r.HandleFunc("/stats", s.handleStats).Methods("GET")
	r.HandleFunc("/resetStats", s.handleResetStats).Methods("GET")
	return r
}

// Handler is Routes wrapped for cross-origin browsers.
func (s *Server) Handler() http.Handler {
	return withCORS(s.Routes())
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	nets, err := s.Source.Scan(r.Context())
	if err != nil {
		s.logger().Error("server: scan failed", zap.Error(err))
		writeText(w, http.StatusInternalServerError, "Scan failed: "+err.Error())
		return
	}
	fresh := s.World.Scan(nets)
	s.Stats.RecordScan(len(fresh))
	if err := s.Wigle.Append(fresh...); err != nil {
		s.logger().Warn("server: wigle append failed", zap.Error(err))
	}
	s.logger().Info("server: scan",
		zap.Int("networks", len(nets)),
		zap.Int("new", len(fresh)),
	)
	writeText(w, http.StatusOK, scanDone)
}

func (s *Server) handleMonsters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"monsters": s.World.Monsters()})
}

func (s *Server) handleStartBattle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("wildIndex") || !q.Has("partyIndex") {
		s.fail(w, game.ErrMissingBattleArgs)
		return
	}
	wi, err := strconv.Atoi(q.Get("wildIndex"))
	if err != nil {
		s.fail(w, game.ErrInvalidWildIndex)
		return
	}
	pi, err := strconv.Atoi(q.Get("partyIndex"))
	if err != nil {
		s.fail(w, game.ErrInvalidPartyIndex)
		return
	}
	bs, err := s.World.StartBattle(wi, pi)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.mu.Lock()
	s.current = bs
	s.mu.Unlock()
	s.Stats.RecordBattleStart()
	writeJSON(w, bs)
}

func (s *Server) handleBattleAction(w http.ResponseWriter, r *http.Request) {
	if !s.World.InBattle() {
		s.fail(w, game.ErrNoBattle)
		return
	}
	action := r.URL.Query().Get("action")
	if action == "" {
		s.fail(w, game.ErrMissingAction)
		return
	}
	turn, err := s.World.Act(action)
	if err != nil {
		s.fail(w, err)
		return
	}
	if turn.BattleEnd {
		s.battleEnded(turn)
	}
	writeJSON(w, turn.BattleTurn)
}

func (s *Server) battleEnded(turn game.Turn) {
	s.mu.Lock()
	bs := s.current
	s.mu.Unlock()

	var o stats.Outcome
	switch {
	case turn.WildHP <= 0:
		o = stats.Won
	case turn.Captured:
		o = stats.Captured
	case turn.PartyHP <= 0:
		o = stats.Lost
	default:
		o = stats.Ran
	}
	s.Stats.RecordBattleEnd(o, bs.PartyName, bs.WildName, bs.WildLevel)
	s.logger().Info("server: battle ended",
		zap.String("outcome", string(o)),
		zap.String("party", bs.PartyName),
		zap.String("wild", bs.WildName),
		zap.Int("partyHP", turn.PartyHP),
		zap.Int("wildHP", turn.WildHP),
	)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	today := s.Stats.Today()
	writeJSON(w, map[string]any{
		"today":  today,
		"days":   s.Stats.Days(),
		"player": s.World.Player(),
	})
}

func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	n := s.Stats.Days()
	s.Stats.ResetDaily()
	s.logger().Info("server: stats reset", zap.Int("days", n))
	writeText(w, http.StatusOK, "Cleared stats")
}

func (s *Server) handleMyParty(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.World.Party())
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("slot") {
		s.fail(w, game.ErrMissingSlot)
		return
	}
	slot, err := strconv.Atoi(q.Get("slot"))
	if err != nil {
		s.fail(w, game.ErrInvalidSlot)
		return
	}
	msg, err := s.World.Remove(slot)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, msg)
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("slot1") || !q.Has("slot2") {
		s.fail(w, game.ErrMissingSwapSlots)
		return
	}
	a, errA := strconv.Atoi(q.Get("slot1"))
	b, errB := strconv.Atoi(q.Get("slot2"))
	if errA != nil || errB != nil {
		s.fail(w, game.ErrInvalidSwapSlots)
		return
	}
	msg, err := s.World.Swap(a, b)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, msg)
}

func (s *Server) handleDownloadWigle(w http.ResponseWriter, r *http.Request) {
	rc, err := s.Wigle.Open()
	if errors.Is(err, scan.ErrNoData) {
		writeText(w, http.StatusNotFound, "No wigle data found")
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	defer rc.Close()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="wigledata.csv"`)
	if _, err := io.Copy(w, rc); err != nil {
		s.logger().Warn("server: wigle download interrupted", zap.Error(err))
	}
}

func (s *Server) handleClearWigle(w http.ResponseWriter, r *http.Request) {
	err := s.Wigle.Clear()
	if errors.Is(err, scan.ErrNoData) {
		writeText(w, http.StatusNotFound, "No wigle data file found")
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeText(w, http.StatusOK, "Cleared wigle data")
}

// fail sends rule violations as 400 and anything else as 500, both as plain
// text the client shows verbatim.
func (s *Server) fail(w http.ResponseWriter, err error) {
	var rule game.RuleError
	if errors.As(err, &rule) {
		writeText(w, http.StatusBadRequest, rule.Error())
		return
	}
	s.logger().Error("server: request failed", zap.Error(err))
	writeText(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger().Debug("server: request",
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, msg)
}

// simple CORS for GET/OPTIONS
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
