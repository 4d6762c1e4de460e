package server

import (
	"github.com/gin-gonic/gin"

	"bookhub/internal/auth"
	"bookhub/internal/book"
	"bookhub/internal/category"
	"bookhub/internal/events"
	"bookhub/internal/health"
	"bookhub/internal/scraping"
)

const APIPrefix = "/api/v1"

// Deps are the components the HTTP layer is built from. Everything is
// constructed once at startup and passed in here.
type Deps struct {
	Books       *book.Service
	Categories  *category.Repo
	Users       *auth.Repo
	Tokens      auth.TokenService
	Coordinator *scraping.Coordinator
	Health      *health.Checker
	Hub         *events.Hub

	// RateLimitRPS enables per-client throttling when positive.
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"127.0.0.1"})

	r.Use(RequestID(), AccessLog(), Recovery())
	if d.RateLimitRPS > 0 {
		r.Use(NewRateLimiter(d.RateLimitRPS, d.RateLimitBurst).Middleware())
	}

	api := r.Group(APIPrefix)

	book.NewHandler(d.Books).RegisterRoutes(api)
	category.NewHandler(d.Categories).RegisterRoutes(api)
	health.NewHandler(d.Health).RegisterRoutes(api)
	auth.NewHandler(d.Users, d.Tokens).RegisterRoutes(api.Group("/auth"))

	scrapingGroup := api.Group("/scraping")
	scraping.NewHandler(d.Coordinator).RegisterRoutes(scrapingGroup, auth.AuthMiddleware(d.Tokens, d.Users))
	if d.Hub != nil {
		scrapingGroup.GET("/events", events.WSHandler(d.Hub))
	}

	return r
}
