package book

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

// RegisterRoutes mounts /books and /stats under rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	books.GET("", h.list)
	books.GET("/search", h.search)
	books.GET("/top-rated", h.topRated)
	books.GET("/price-range", h.priceRange)
	books.GET("/:id", h.getByID)

	stats := rg.Group("/stats")
	stats.GET("/overview", h.overview)
	stats.GET("/categories", h.categoryStats)
}

type listQuery struct {
	Category string   `form:"category"`
	InStock  *bool    `form:"in_stock"`
	MinPrice *float64 `form:"min_price"`
	MaxPrice *float64 `form:"max_price"`
	Rating   *int     `form:"rating" binding:"omitempty,min=1,max=5"`
	Limit    int      `form:"limit,default=100" binding:"min=1,max=1000"`
	Offset   int      `form:"offset,default=0" binding:"min=0"`
}

func (h *Handler) list(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}

	f := Filter{
		Category: q.Category,
		InStock:  q.InStock,
		MinPrice: toDecimal(q.MinPrice),
		MaxPrice: toDecimal(q.MaxPrice),
		Rating:   q.Rating,
	}
	books, err := h.Service.List(c.Request.Context(), f, q.Limit, q.Offset)
	if err != nil {
		h.fail(c, "list books", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

type searchQuery struct {
	Title    string `form:"title"`
	Category string `form:"category"`
	Limit    int    `form:"limit,default=20" binding:"min=1,max=100"`
}

func (h *Handler) search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}
	if q.Title == "" && q.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one search parameter (title or category) is required"})
		return
	}

	books, err := h.Service.Search(c.Request.Context(), q.Title, q.Category, q.Limit)
	if err != nil {
		h.fail(c, "search books", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

type topRatedQuery struct {
	Limit int `form:"limit,default=10" binding:"min=1,max=50"`
}

func (h *Handler) topRated(c *gin.Context) {
	var q topRatedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}

	books, err := h.Service.TopRated(c.Request.Context(), q.Limit)
	if err != nil {
		h.fail(c, "top rated books", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

type priceRangeQuery struct {
	MinPrice *float64 `form:"min_price"`
	MaxPrice *float64 `form:"max_price"`
}

func (h *Handler) priceRange(c *gin.Context) {
	var q priceRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}
	if q.MinPrice == nil && q.MaxPrice == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one price parameter (min_price or max_price) is required"})
		return
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_price cannot be greater than max_price"})
		return
	}

	books, err := h.Service.PriceRange(c.Request.Context(), toDecimal(q.MinPrice), toDecimal(q.MaxPrice))
	if err != nil {
		h.fail(c, "price range", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *Handler) getByID(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	if err != nil {
		h.fail(c, "get book", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) overview(c *gin.Context) {
	ov, err := h.Service.Overview(c.Request.Context())
	if err != nil {
		h.fail(c, "overview stats", err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (h *Handler) categoryStats(c *gin.Context) {
	stats, err := h.Service.CategoryStats(c.Request.Context())
	if err != nil {
		h.fail(c, "category stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	slog.ErrorContext(c.Request.Context(), op+" failed", "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func toDecimal(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}
