package dashboard

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/it407/it-assets/internal/views"
	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	service *DashboardService
	logger  *zap.Logger
}

func NewDashboardHandler(service *DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/views/:name", h.GetView)
}

func (h *DashboardHandler) GetView(c *gin.Context) {
	pipeline, ok := h.service.Pipeline(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown view", "details": c.Param("name")})
		return
	}

	principal, exists := security.PrincipalFromContext(c)
	if !exists || !principal.Role.In(pipeline.Roles...) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	view, err := h.service.Run(c.Request.Context(), principal, pipeline, Query(c.Request.URL.Query()))
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to build view", "details": err.Error()})
		return
	}

	if c.Query("format") == "csv" {
		h.writeCSV(c, view)
		return
	}

	diagnostics := view.Diagnostics
	if diagnostics == nil {
		diagnostics = []views.Diagnostic{}
	}
	c.JSON(http.StatusOK, gin.H{
		"view":        view.Name,
		"columns":     view.Columns,
		"rows":        view.Records(),
		"diagnostics": diagnostics,
	})
}

func (h *DashboardHandler) writeCSV(c *gin.Context, view views.View) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", view.Name+".csv"))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(view.Columns); err != nil {
		h.logger.Error("Unable to write CSV header", zap.String("view", view.Name), zap.Error(err))
		return
	}
	if err := w.WriteAll(view.Cells()); err != nil {
		h.logger.Error("Unable to write CSV rows", zap.String("view", view.Name), zap.Error(err))
	}
}
