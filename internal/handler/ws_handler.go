package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/academy-uk/placement-exam/internal/middleware"
	"github.com/academy-uk/placement-exam/internal/model"
	"github.com/academy-uk/placement-exam/internal/service"
	ws "github.com/academy-uk/placement-exam/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams the countdown to the exam client over WebSocket.
type WSHandler struct {
	examService *service.ExamService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(examService *service.ExamService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		examService: examService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// TimerStream godoc
// WS /ws/v1/exam/stream?token=...
// Pushes one timer snapshot per second. When the session reaches Submitted,
// by the candidate or by expiry, a terminal event is sent and the stream
// closes. The server drives the stream; client messages are ignored except
// for close frames.
func (h *WSHandler) TimerStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, err := h.examService.Session(claims.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("session_id", session.ID.String()).Logger()
	wsLog.Info().Msg("Timer stream connected")

	// Drain client frames so close handshakes and pings are processed.
	// Reader errors signal disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		state := session.State()

		if state.Phase == model.PhaseSubmitted {
			h.sendTerminal(conn, wsLog, session)
			return
		}

		if err := ws.WriteTyped(conn, ws.NewTick(state)); err != nil {
			wsLog.Debug().Err(err).Msg("Timer stream write failed")
			return
		}

		select {
		case <-ticker.C:
		case <-done:
			wsLog.Debug().Msg("Timer stream client disconnected")
			return
		}
	}
}

func (h *WSHandler) sendTerminal(conn *websocket.Conn, wsLog zerolog.Logger, session *model.ExamSession) {
	band := ""
	if result := session.Result(); result != nil {
		band = result.Band
	}

	if err := ws.WriteTyped(conn, ws.SubmittedResponse{
		Event:         ws.EventSubmitted,
		AutoSubmitted: session.AutoSubmitted(),
		Band:          band,
	}); err != nil {
		wsLog.Debug().Err(err).Msg("Terminal event write failed")
		return
	}

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "exam submitted")
	conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second))
	wsLog.Info().Msg("Timer stream closed after submission")
}
