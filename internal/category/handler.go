package category

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.list)
}

func (h *Handler) list(c *gin.Context) {
	cats, err := h.Repo.All(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "list categories failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, cats)
}
