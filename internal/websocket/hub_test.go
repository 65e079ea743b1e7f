package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSecret = []byte("test_secret")

func testToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "test-user",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zap.NewNop())
	go hub.Run()

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		ServeWs(hub, c, testSecret)
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return strings.Replace(srv.URL, "http", "ws", 1) + "/ws?token=" + token
}

func TestServeWsRejectsNonAdmins(t *testing.T) {
	_, srv := newTestServer(t)

	cases := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage token", "not.a.jwt", http.StatusUnauthorized},
		{"citizen token", testToken(t, "citizen"), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, res, err := gorilla.DefaultDialer.Dial(wsURL(srv, tc.token), nil)
			require.Error(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tc.status, res.StatusCode)
		})
	}
}

func TestAdminReceivesBroadcast(t *testing.T) {
	hub, srv := newTestServer(t)

	conn, _, err := gorilla.DefaultDialer.Dial(wsURL(srv, testToken(t, "admin")), nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the hub a moment to register the client before broadcasting.
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastJSON("complaint_submitted", map[string]string{"complaint_id": "MZF20251"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "complaint_submitted", event.Event)
}
