package scraping

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"bookhub/internal/auth"
)

func fakeAuth(c *gin.Context) {
	c.Set(auth.CtxClaimsKey, &auth.Claims{
		Type:             auth.TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin"},
	})
	c.Next()
}

func newRouter(c *Coordinator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(c).RegisterRoutes(r.Group("/scraping"), fakeAuth)
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestTriggerHandlerSuccess(t *testing.T) {
	c, _, _ := newTestCoordinator(t, &fakeRunner{res: sampleResult()})
	w := serve(newRouter(c), http.MethodPost, "/scraping/trigger")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Message     string `json:"message"`
		TriggeredBy string `json:"triggered_by"`
		Timestamp   string `json:"timestamp"`
		Results     struct {
			TotalBooks      int    `json:"total_books"`
			TotalCategories int    `json:"total_categories"`
			ExecutionTime   string `json:"execution_time"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "admin", body.TriggeredBy)
	require.Equal(t, 2, body.Results.TotalBooks)
	require.Equal(t, 1, body.Results.TotalCategories)
	_, err := time.Parse(time.RFC3339, body.Timestamp)
	require.NoError(t, err)
}

func TestTriggerHandlerCooldown(t *testing.T) {
	c, cfg, _ := newTestCoordinator(t, &fakeRunner{res: sampleResult()})
	last := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	placeBooksFile(t, cfg, last)
	c.now = func() time.Time { return last.Add(45 * time.Minute) }

	w := serve(newRouter(c), http.MethodPost, "/scraping/trigger")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "900", w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "2026-03-01T12:00:00Z", body["last_execution"])
	require.Equal(t, "2026-03-01T13:00:00Z", body["next_allowed_execution"])
	require.EqualValues(t, 900, body["retry_after"])
	require.NotEmpty(t, body["error"])
}

func TestTriggerHandlerCooldownKeepsSubSecondMtime(t *testing.T) {
	c, cfg, _ := newTestCoordinator(t, &fakeRunner{res: sampleResult()})
	last := time.Date(2026, 3, 1, 12, 0, 0, 700_000_000, time.UTC)
	placeBooksFile(t, cfg, last)
	c.now = func() time.Time { return last.Add(45 * time.Minute) }
	r := newRouter(c)

	w := serve(r, http.MethodPost, "/scraping/trigger")
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "2026-03-01T12:00:00.7Z", body["last_execution"])
	require.Equal(t, "2026-03-01T13:00:00.7Z", body["next_allowed_execution"])

	next, err := time.Parse(time.RFC3339Nano, body["next_allowed_execution"].(string))
	require.NoError(t, err)
	c.now = func() time.Time { return next }

	w = serve(r, http.MethodPost, "/scraping/trigger")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestTriggerHandlerFailure(t *testing.T) {
	c, _, _ := newTestCoordinator(t, &fakeRunner{panic: true})
	w := serve(newRouter(c), http.MethodPost, "/scraping/trigger")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "parser exploded")
}

func TestTriggerHandlerInProgress(t *testing.T) {
	runner := &fakeRunner{res: sampleResult(), block: make(chan struct{})}
	c, _, _ := newTestCoordinator(t, runner)
	r := newRouter(c)

	done := make(chan int, 1)
	go func() { done <- serve(r, http.MethodPost, "/scraping/trigger").Code }()
	require.Eventually(t, func() bool { return runner.Calls() == 1 }, 2*time.Second, 5*time.Millisecond)

	w := serve(r, http.MethodPost, "/scraping/trigger")
	require.Equal(t, http.StatusConflict, w.Code)

	w = serve(r, http.MethodGet, "/scraping/status")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"state":"running"`)

	close(runner.block)
	require.Equal(t, http.StatusOK, <-done)
}

func TestStatusHandlerIdle(t *testing.T) {
	c, _, _ := newTestCoordinator(t, &fakeRunner{})
	w := serve(newRouter(c), http.MethodGet, "/scraping/status")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"state":"idle","last_execution":null,"next_allowed_execution":null}`, w.Body.String())
}
