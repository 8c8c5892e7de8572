package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"sandboxdash/internal/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

// localhost origins are always accepted; anything else must be listed in
// allow_origins
var localOrigins = []string{
	"http://localhost",
	"https://localhost",
	"http://127.0.0.1",
	"https://127.0.0.1",
	"http://[::1]",
	"https://[::1]",
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Allow connections without origin header (e.g., CLI tools)
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err == nil && u.Host == r.Host {
		return true
	}

	for _, allowed := range localOrigins {
		if origin == allowed || strings.HasPrefix(origin, allowed+":") {
			return true
		}
	}
	for _, allowed := range s.config.AllowOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logger.WithFields(logger.Fields{
		"origin": origin,
		"remote": r.RemoteAddr,
	}).Warn("WebSocket connection rejected - invalid origin")

	return false
}

// handleNotificationsWebSocket streams notifications as JSON text frames
// @Summary Notification stream
// @Description WebSocket that pushes a JSON notification whenever a clone settles
// @Tags notifications,websocket
// @Param since query int false "Replay retained notifications published at or after this unix-ms time"
// @Success 101 {string} string "Switching Protocols"
// @Router /ws/notifications [get]
func (s *Server) handleNotificationsWebSocket(c echo.Context) error {
	upgrader := websocket.Upgrader{
		CheckOrigin:     s.checkOrigin,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.GetLogger(c).WithError(err).Warn("Failed to upgrade WebSocket connection")
		// the upgrader has already written the HTTP error
		return nil
	}
	defer ws.Close()

	events, cancel := s.hub.Subscribe()
	defer cancel()

	log := logger.GetLogger(c)
	log.WithField("subscribers", s.hub.SubscriberCount()).Debug("Notification stream opened")

	// Replay what the page may have missed between rendering and subscribing.
	// Anything published after Subscribe is also queued on events.
	replayed := map[string]struct{}{}
	if since, ok := parseSince(c); ok {
		for _, n := range s.hub.Since(time.UnixMilli(since)) {
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := ws.WriteJSON(n); err != nil {
				log.WithError(err).Debug("Failed to replay notification")
				return nil
			}
			replayed[n.ID] = struct{}{}
		}
	}

	// The browser never sends anything meaningful; reading only surfaces
	// close frames and keeps pong handling alive.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		ws.SetReadLimit(512)
		_ = ws.SetReadDeadline(time.Now().Add(wsPongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.WithError(err).Debug("WebSocket read error")
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case n, ok := <-events:
			if !ok {
				return nil
			}
			if _, seen := replayed[n.ID]; seen {
				continue
			}
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := ws.WriteJSON(n); err != nil {
				log.WithError(err).Debug("Failed to write notification")
				return nil
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-closed:
			log.Debug("Notification stream closed")
			return nil
		case <-c.Request().Context().Done():
			return nil
		}
	}
}
