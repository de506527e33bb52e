package realtime

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Gateway streams a user's private channels to a websocket.
type Gateway struct {
	subscriber Subscriber
	upgrader   websocket.Upgrader
	logger     *zap.SugaredLogger
}

func NewGateway(subscriber Subscriber, allowOrigin string, logger *zap.SugaredLogger) *Gateway {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Gateway{
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowOrigin == "" || allowOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowOrigin
			},
		},
		logger: logger,
	}
}

// HandleConnection upgrades an authenticated request. The auth middleware must have
// set "uid".
func (g *Gateway) HandleConnection(c *gin.Context) {
	userID := c.GetString("uid")
	if userID == "" {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	// Subscribe before upgrading so nothing published after the handshake is missed.
	sub, err := g.subscriber.Subscribe(c.Request.Context(), UserChannels(userID)...)
	if err != nil {
		g.logger.Errorw("realtime subscribe failed", "user_id", userID, "error", err)
		c.String(http.StatusInternalServerError, "Failed to subscribe")
		return
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.logger.Warnw("websocket upgrade failed", "user_id", userID, "error", err)
		sub.Close()
		return
	}

	g.logger.Infow("realtime client connected", "user_id", userID)
	go g.serve(conn, sub, userID)
}

func (g *Gateway) serve(conn *websocket.Conn, sub Subscription, userID string) {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		g.readPump(conn)
	}()

	g.writePump(conn, sub, closed)

	sub.Close()
	conn.Close()
	g.logger.Infow("realtime client disconnected", "user_id", userID)
}

// readPump only services control frames; clients have nothing to send.
func (g *Gateway) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Debugw("websocket read error", "error", err)
			}
			return
		}
	}
}

func (g *Gateway) writePump(conn *websocket.Conn, sub Subscription, closed <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.Messages():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-closed:
			return
		}
	}
}
