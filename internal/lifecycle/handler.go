package lifecycle

import (
	"errors"
	"net/http"

	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/models"
	"github.com/it407/it-assets/pkg/roles"
	"github.com/it407/it-assets/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	manager *Manager
	logger  *zap.Logger
}

func NewHandler(manager *Manager, logger *zap.Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// RegisterRoutes mounts the assignment endpoints under basePath, e.g. /assets.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, basePath string) {
	router.GET(basePath+"/available", security.Authorize(roles.Admin), h.GetAvailable)
	router.POST(basePath+"/assignments", security.Authorize(roles.Admin), h.Assign)
	router.POST(basePath+"/returns", security.Authorize(roles.Admin), h.Return)
}

func (h *Handler) Assign(c *gin.Context) {
	var req models.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	principal, _ := security.PrincipalFromContext(c)
	assignment, err := h.manager.Assign(c.Request.Context(), principal, req)
	if err != nil {
		h.logger.Info("Assignment rejected", zap.String("item_id", req.ItemID), zap.Error(err))
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{
			"error":   "Unable to assign " + h.manager.Kind().Name,
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

func (h *Handler) Return(c *gin.Context) {
	var req models.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	principal, _ := security.PrincipalFromContext(c)
	assignment, err := h.manager.Return(c.Request.Context(), principal, req)
	var pending *PendingDeactivationError
	if errors.As(err, &pending) {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{
			"error":      "Return recorded but " + h.manager.Kind().Name + " " + pending.ItemID + " is still active in the catalog",
			"details":    err.Error(),
			"assignment": assignment,
			"pending":    "deactivate",
		})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{
			"error":   "Unable to return " + h.manager.Kind().Name,
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, assignment)
}

func (h *Handler) GetAvailable(c *gin.Context) {
	items, err := h.manager.Available(c.Request.Context())
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not obtain available items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}
