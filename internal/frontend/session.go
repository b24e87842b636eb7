package frontend

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pefman/packet-pals/internal/models"
	"github.com/pefman/packet-pals/internal/prefs"
	"github.com/pefman/packet-pals/internal/view"
	"go.uber.org/zap"
)

// Message types on the websocket.
const (
	msgIntent = "intent"
	msgReset  = "reset"
	msgScreen = "screen"
	msgError  = "error"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type clientIn struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// conn serializes writes: the reader loop and the battle reset timer both
// send screens.
type conn struct {
	id  string
	ws  *websocket.Conn
	mu  sync.Mutex
	log *zap.Logger
}

func (c *conn) send(m models.WsMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteJSON(m); err != nil {
		c.log.Debug("ws: write error", zap.Error(err))
	}
}

func (c *conn) screen(s view.Screen) { c.send(models.WsMsg{Type: msgScreen, Data: s}) }

func (h *Host) handleWS(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	ws, err := upgrader.Upgrade(w, r, w.Header())
	if err != nil {
		h.logger().Warn("ws: upgrade failed", zap.Error(err))
		return
	}
	c := &conn{id: uuid.NewString(), ws: ws}
	c.log = h.logger().With(zap.String("conn", c.id), zap.String("session", sid))
	c.log.Info("ws: connect", zap.String("from", r.RemoteAddr))

	var p prefs.Store = h.Prefs
	if p == nil {
		p = prefs.NewMemoryStore()
	}
	vm := view.New(h.API,
		view.WithLogger(c.log),
		view.WithPrefs(prefs.For(p, sid)),
		view.WithObserver(c.screen),
		view.WithResetDelay(h.ResetDelay),
		view.WithTutorial(h.Tutorial),
	)
	defer func() {
		vm.Reset()
		_ = ws.Close()
		c.log.Info("ws: closed")
	}()

	c.screen(vm.Screen())
	for {
		var in clientIn
		if err := ws.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug("ws: read error", zap.Error(err))
			}
			return
		}
		switch in.Type {
		case msgIntent:
			var intent view.Intent
			if err := json.Unmarshal(in.Data, &intent); err != nil {
				c.send(models.WsMsg{Type: msgError, Data: "bad intent: " + err.Error()})
				continue
			}
			c.log.Debug("ws: intent", zap.String("type", intent.Type))
			s, err := vm.Dispatch(r.Context(), intent)
			if errors.Is(err, view.ErrUnknownIntent) {
				c.send(models.WsMsg{Type: msgError, Data: err.Error()})
				continue
			}
			c.screen(s)
		case msgReset:
			c.screen(vm.Reset())
		default:
			c.send(models.WsMsg{Type: msgError, Data: "unknown message type " + in.Type})
		}
	}
}
