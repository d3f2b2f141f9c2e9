package software

import (
	"net/http"
	"strings"

	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/models"
	"github.com/it407/it-assets/pkg/roles"
	"github.com/it407/it-assets/pkg/security"

	"github.com/gin-gonic/gin"
)

type SoftwareHandler struct {
	service *SoftwareService
}

func NewSoftwareHandler(service *SoftwareService) *SoftwareHandler {
	return &SoftwareHandler{
		service: service,
	}
}

func (h *SoftwareHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/software", security.Authorize(roles.Admin), h.GetSoftware)
	router.POST("/software", security.Authorize(roles.Admin), h.CreateSoftware)
}

func (h *SoftwareHandler) CreateSoftware(c *gin.Context) {
	var req models.CreateSoftwareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	principal, _ := security.PrincipalFromContext(c)
	software, err := h.service.CreateSoftware(c.Request.Context(), principal, req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Failed to register software", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, software)
}

func (h *SoftwareHandler) GetSoftware(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	if strings.EqualFold(status, "All") {
		status = ""
	}

	list, err := h.service.ListSoftware(c.Request.Context(), status)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not obtain list of software", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}
