package transport

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"marnie-pos/internal/domain"
	"marnie-pos/internal/service"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	ledger service.LedgerService
	health HealthReporter
	log    log.FieldLogger
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.ledger.ListProducts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products, "count": len(products)})
}

func (h *Handler) createProduct(c *gin.Context) {
	raw, err := readInput(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	product, err := h.ledger.CreateProduct(c.Request.Context(), raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.ledger.ListCustomers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "customers": customers, "count": len(customers)})
}

func (h *Handler) createCustomer(c *gin.Context) {
	raw, err := readInput(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	customer, err := h.ledger.CreateCustomer(c.Request.Context(), raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "customer": customer})
}

func (h *Handler) listPurchases(c *gin.Context) {
	purchases, err := h.ledger.ListPurchases(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "purchases": purchases})
}

func (h *Handler) createPurchase(c *gin.Context) {
	raw, err := readInput(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	purchase, err := h.ledger.CreatePurchase(c.Request.Context(), raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "purchase": purchase})
}

func (h *Handler) dashboardStats(c *gin.Context) {
	stats, err := h.ledger.DashboardStats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h *Handler) healthCheck(c *gin.Context) {
	body := gin.H{
		"status":    "healthy",
		"service":   ServiceName,
		"version":   Version,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	code := http.StatusOK

	if h.health != nil {
		report := h.health.Health()
		body["database"] = report
		if report["status"] != "up" {
			body["status"] = "unhealthy"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, body)
}

func readInput(c *gin.Context) (domain.RawInput, error) {
	if c.Request.Body == nil {
		return nil, domain.ErrMissingInput
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.ErrBodyTooLarge
		}
		return nil, err
	}
	return domain.ParseRawInput(body)
}

// fail writes the error envelope. Input problems are the client's and are
// echoed back; anything else is logged and hidden.
func (h *Handler) fail(c *gin.Context, err error) {
	if domain.IsInvalidInput(err) {
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	h.log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	c.JSON(http.StatusInternalServerError, errorBody("internal server error"))
}

func errorBody(msg string) gin.H {
	return gin.H{"success": false, "error": msg}
}
