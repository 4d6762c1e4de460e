package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Checker *Checker
}

func NewHandler(checker *Checker) *Handler {
	return &Handler{Checker: checker}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
}

func (h *Handler) health(c *gin.Context) {
	rep := h.Checker.Check(c.Request.Context())
	code := http.StatusOK
	if !rep.OK() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, rep)
}
