package websocket

import (
	"net/http"
	"time"

	"github.com/aescanero/textcase/internal/application/transform"
	metrics "github.com/aescanero/textcase/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// maxFrameSize caps a single incoming text frame
	maxFrameSize = 64 << 10

	writeWait = 10 * time.Second

	// defaultPongWait is how long a stream may stay silent, pongs included
	defaultPongWait = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler handles WebSocket connections
type Handler struct {
	metrics *metrics.Collector
	logger  *zap.Logger

	pongWait   time.Duration
	pingPeriod time.Duration
}

// NewHandler creates a new WebSocket handler
func NewHandler(collector *metrics.Collector, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		metrics:    collector,
		logger:     logger,
		pongWait:   defaultPongWait,
		pingPeriod: defaultPongWait * 9 / 10,
	}
}

// HandleUppercaseStream answers every text frame with its uppercase form
func (h *Handler) HandleUppercaseStream(c *gin.Context) {
	// Upgrade connection; the upgrader replies 400 on a bad handshake
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	h.metrics.StreamOpened()
	defer h.metrics.StreamClosed()

	h.logger.Info("WebSocket connection established",
		zap.String("client", c.ClientIP()))

	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go h.ping(conn, done)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("WebSocket read failed", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))

		if messageType != websocket.TextMessage {
			msg := websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "unsupported data")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		}

		h.metrics.RecordTransformation("websocket", len(data))

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(transform.Upper(string(data)))); err != nil {
			h.logger.Error("failed to write message", zap.Error(err))
			return
		}
	}
}

// ping keeps the peer answering until done is closed or a ping fails.
// WriteControl may run concurrently with the reader's writes.
func (h *Handler) ping(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
