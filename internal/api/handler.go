package api

import (
	"net/http"
	"strconv"
	"time"

	"eventops-service/internal/service"
	"eventops-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	ledger   *service.LedgerService
	tickets  *service.TicketService
	registry *service.RegistryService
	products *service.ProductService
	tables   *service.TableService
	reports  *service.ReportService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	ledger *service.LedgerService,
	tickets *service.TicketService,
	registry *service.RegistryService,
	products *service.ProductService,
	tables *service.TableService,
	reports *service.ReportService,
) *Handler {
	return &Handler{
		ledger:   ledger,
		tickets:  tickets,
		registry: registry,
		products: products,
		tables:   tables,
		reports:  reports,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/pessoas", h.listPessoas)
		v1.POST("/pessoas", h.createPessoa)
		v1.PUT("/pessoas/:id", h.updatePessoa)
		v1.DELETE("/pessoas/:id", h.deletePessoa)

		v1.GET("/ingressos", h.listIngressos)
		v1.POST("/ingressos", h.createIngresso)
		v1.POST("/ingressos/:id/check-in", h.checkInIngresso)
		v1.DELETE("/ingressos/:id", h.deleteIngresso)

		v1.GET("/produtos", h.listProdutos)
		v1.POST("/produtos", h.createProduto)
		v1.PUT("/produtos/:id", h.updateProduto)
		v1.DELETE("/produtos/:id", h.deleteProduto)

		v1.GET("/vendas-bar", h.listVendas)
		v1.POST("/vendas-bar", h.createVenda)
		v1.DELETE("/vendas-bar/:id", h.deleteVenda)

		v1.GET("/colaboradores", h.listColaboradores)
		v1.POST("/colaboradores", h.createColaborador)
		v1.PUT("/colaboradores/:id", h.updateColaborador)
		v1.DELETE("/colaboradores/:id", h.deleteColaborador)

		v1.GET("/mesas-camarote", h.listMesas)
		v1.POST("/mesas-camarote", h.createMesa)
		v1.PUT("/mesas-camarote/:id", h.updateMesa)
		v1.DELETE("/mesas-camarote/:id", h.deleteMesa)
		v1.POST("/mesas-camarote/:id/pessoas", h.addMesaPessoa)
		v1.DELETE("/mesas-camarote/:id/pessoas", h.removeMesaPessoa)
		v1.POST("/mesas-camarote/:id/garrafas", h.addGarrafa)

		v1.GET("/dashboard", h.dashboard)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// dashboard serves the aggregate summary views
func (h *Handler) dashboard(c *gin.Context) {
	summary, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
