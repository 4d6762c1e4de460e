package events

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestBroadcastReachesWebsocketClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/events", WSHandler(hub))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, welcome, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(welcome), "welcome")

	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	hub.Publish(ScrapeEvent{Type: ScrapeCompleted, TriggeredBy: "admin", TotalBooks: 3, TotalCategories: 1, At: at})

	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got ScrapeEvent
	require.NoError(t, json.Unmarshal(msg, &got))
	require.Equal(t, ScrapeCompleted, got.Type)
	require.Equal(t, "admin", got.TriggeredBy)
	require.Equal(t, 3, got.TotalBooks)
	require.True(t, at.Equal(got.At))
}

func TestClosedClientIsRemoved(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/events", WSHandler(hub))
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/events", nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestBroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	hub.BroadcastJSON(map[string]string{"type": "noop"})
	require.Zero(t, hub.Count())
}
