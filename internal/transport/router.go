package transport

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"marnie-pos/internal/service"
)

const (
	ServiceName = "Marnie POS System"
	Version     = "1.0.0"
)

// HealthReporter is satisfied by database.Service. A reporter whose
// "status" is anything but "up" marks the service unhealthy.
type HealthReporter interface {
	Health() map[string]string
}

type Options struct {
	CORSOrigins []string
	StaticDir   string
	TemplateDir string
	Health      HealthReporter
	Logger      log.FieldLogger
}

func NewRouter(ledger service.LedgerService, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	r := gin.New()
	r.Use(recovery(logger), requestLogger(logger), cors.New(corsConfig(opts.CORSOrigins)))

	h := &Handler{ledger: ledger, health: opts.Health, log: logger}

	api := r.Group("/api")
	api.GET("/products", h.listProducts)
	api.POST("/products", h.createProduct)
	api.GET("/customers", h.listCustomers)
	api.POST("/customers", h.createCustomer)
	api.GET("/purchases", h.listPurchases)
	api.POST("/purchases", h.createPurchase)
	api.GET("/dashboard/stats", h.dashboardStats)
	api.GET("/health", h.healthCheck)

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}
	if opts.TemplateDir != "" {
		pattern := filepath.Join(opts.TemplateDir, "*.html")
		if matches, _ := filepath.Glob(pattern); len(matches) > 0 {
			r.LoadHTMLGlob(pattern)
			r.GET("/", func(c *gin.Context) {
				c.HTML(http.StatusOK, "index.html", nil)
			})
		} else {
			logger.WithField("dir", opts.TemplateDir).Warn("no templates found, index page disabled")
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
