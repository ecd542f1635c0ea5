package websocket

import (
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	metrics "github.com/aescanero/textcase/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newHandler() *Handler {
	return NewHandler(metrics.NewCollectorWithRegistry(prometheus.NewRegistry()), zap.NewNop())
}

func newStreamServer(t *testing.T, h *Handler) *httptest.Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/uppercase/ws", h.HandleUppercaseStream)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/uppercase/ws"
	conn, res, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, res.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestHandleUppercaseStream(t *testing.T) {
	conn := dial(t, newStreamServer(t, newHandler()))

	for in, want := range map[string]string{
		"hello":        "HELLO",
		"MixedCase123": "MIXEDCASE123",
		"café":         "CAFÉ",
		"":             "",
	} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(in)))

		messageType, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.TextMessage, messageType)
		assert.Equal(t, want, string(data))
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	assert.NoError(t, conn.WriteMessage(websocket.CloseMessage, msg))
}

func TestHandleUppercaseStream_BinaryRejected(t *testing.T) {
	conn := dial(t, newStreamServer(t, newHandler()))

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x02}))

	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseUnsupportedData), "got %v", err)

	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, "unsupported data", closeErr.Text)
}

func TestHandleUppercaseStream_IdleStreamClosed(t *testing.T) {
	h := newHandler()
	h.pongWait = 200 * time.Millisecond
	h.pingPeriod = 100 * time.Millisecond

	conn := dial(t, newStreamServer(t, h))

	// Not reading means pings go unanswered
	time.Sleep(3 * h.pongWait)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	start := time.Now()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) {
				assert.False(t, netErr.Timeout(), "server kept the idle stream open")
			}
			break
		}
	}
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewHandler_NilLogger(t *testing.T) {
	h := NewHandler(metrics.NewCollectorWithRegistry(prometheus.NewRegistry()), nil)
	conn := dial(t, newStreamServer(t, h))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ok")))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "OK", string(data))

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x00}))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestHandleUppercaseStream_PlainRequestRejected(t *testing.T) {
	srv := newStreamServer(t, newHandler())

	res, err := http.Get(srv.URL + "/uppercase/ws")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
