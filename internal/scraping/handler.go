package scraping

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bookhub/internal/auth"
)

type Handler struct {
	Coord *Coordinator
}

func NewHandler(coord *Coordinator) *Handler {
	return &Handler{Coord: coord}
}

// RegisterRoutes mounts the scraping routes. requireAuth guards the trigger.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/trigger", requireAuth, h.trigger)
	rg.GET("/status", h.status)
}

func (h *Handler) trigger(c *gin.Context) {
	initiator := "unknown"
	if claims := auth.MustGetClaims(c); claims != nil && claims.Subject != "" {
		initiator = claims.Subject
	}

	sum, err := h.Coord.Trigger(c.Request.Context(), initiator)
	if err != nil {
		var cd *CooldownError
		switch {
		case errors.As(err, &cd):
			retry := cd.RetryAfter(h.Coord.Now())
			secs := int(retry / time.Second)
			c.Header("Retry-After", strconv.Itoa(secs))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":                  "scraping was already executed recently",
				"last_execution":         cd.LastExecution.UTC().Format(time.RFC3339Nano),
				"retry_after":            secs,
				"next_allowed_execution": cd.NextAllowed.UTC().Format(time.RFC3339Nano),
			})
		case errors.Is(err, ErrRunInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// client went away; the run keeps going in the background
			slog.WarnContext(c.Request.Context(), "trigger request ended before run finished", "by", initiator, "err", err)
			c.JSON(http.StatusAccepted, gin.H{"message": "scraping continues in background", "triggered_by": initiator})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error during scraping execution"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Scraping completed successfully",
		"triggered_by": sum.TriggeredBy,
		"timestamp":    sum.CompletedAt.UTC().Format(time.RFC3339),
		"results": gin.H{
			"total_books":      sum.TotalBooks,
			"total_categories": sum.TotalCategories,
			"execution_time":   sum.CompletedAt.UTC().Format(time.RFC3339),
			"duration_ms":      sum.Duration().Milliseconds(),
		},
	})
}

func (h *Handler) status(c *gin.Context) {
	st, err := h.Coord.Status()
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "scraping status failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "status failed"})
		return
	}
	c.JSON(http.StatusOK, st)
}
