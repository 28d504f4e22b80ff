package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mbodji/stockroom/internal/domain/models"
	"github.com/mbodji/stockroom/internal/inventory"
	"github.com/mbodji/stockroom/internal/service/stock"
)

// StockHandler exposes the inventory operations over HTTP.
type StockHandler struct {
	svc              *stock.Service
	defaultThreshold int
	logger           *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter. defaultThreshold
// is used by the low-stock route when no threshold query is given.
func NewStockHandler(svc *stock.Service, defaultThreshold int, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{svc: svc, defaultThreshold: defaultThreshold, logger: logger}
}

// Add increments the stock of the item in the path by the qty in the body.
func (h *StockHandler) Add(c *gin.Context) {
	var req models.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid adjustment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "qty must be an integer"})
		return
	}

	item := c.Param("item")
	qty, err := h.svc.AddItem(item, *req.Qty)
	if err != nil {
		h.fail(c, "add", err)
		return
	}

	c.JSON(http.StatusOK, models.QuantityResponse{Item: item, Quantity: qty})
}

// Remove decrements the stock of the item in the path by the qty in the body.
func (h *StockHandler) Remove(c *gin.Context) {
	var req models.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid adjustment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "qty must be an integer"})
		return
	}

	item := c.Param("item")
	qty, err := h.svc.RemoveItem(item, *req.Qty)
	if err != nil {
		h.fail(c, "remove", err)
		return
	}

	c.JSON(http.StatusOK, models.QuantityResponse{Item: item, Quantity: qty})
}

// Quantity reports the current stock of the item in the path.
func (h *StockHandler) Quantity(c *gin.Context) {
	item := c.Param("item")
	qty, err := h.svc.Quantity(item)
	if err != nil {
		h.fail(c, "quantity", err)
		return
	}
	c.JSON(http.StatusOK, models.QuantityResponse{Item: item, Quantity: qty})
}

// LowStock lists item names strictly below the threshold query parameter.
func (h *StockHandler) LowStock(c *gin.Context) {
	threshold := h.defaultThreshold
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be an integer"})
			return
		}
		threshold = n
	}

	items, err := h.svc.LowStock(threshold)
	if err != nil {
		h.fail(c, "low stock", err)
		return
	}
	if items == nil {
		items = []string{}
	}
	c.JSON(http.StatusOK, models.LowStockResponse{Threshold: threshold, Items: items})
}

// Report renders the sorted plain-text stock listing.
func (h *StockHandler) Report(c *gin.Context) {
	c.String(http.StatusOK, h.svc.Report())
}

// Save persists the stock to the configured inventory file.
func (h *StockHandler) Save(c *gin.Context) {
	if err := h.svc.Persist(); err != nil {
		h.logger.Error("failed persisting inventory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to save inventory"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Load replaces the stock from the configured inventory file.
func (h *StockHandler) Load(c *gin.Context) {
	if err := h.svc.Restore(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load inventory"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Journal returns the retained mutation entries, oldest first.
func (h *StockHandler) Journal(c *gin.Context) {
	entries := h.svc.Journal()
	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.JournalEntry{At: e.At, Message: e.Message})
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

func (h *StockHandler) fail(c *gin.Context, op string, err error) {
	var verr *inventory.ValidationError
	switch {
	case errors.As(err, &verr):
		h.logger.Warn("rejected "+op, zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, inventory.ErrNotFound):
		h.logger.Warn("item not found", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("failed "+op, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
