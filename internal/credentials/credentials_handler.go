package credentials

import (
	"net/http"
	"strings"

	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/models"
	"github.com/it407/it-assets/pkg/roles"
	"github.com/it407/it-assets/pkg/security"

	"github.com/gin-gonic/gin"
)

type CredentialHandler struct {
	service *CredentialService
}

func NewCredentialHandler(service *CredentialService) *CredentialHandler {
	return &CredentialHandler{
		service: service,
	}
}

func (h *CredentialHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/credentials", security.Authorize(roles.Admin), h.GetCredentials)
	router.POST("/credentials", security.Authorize(roles.Admin), h.CreateCredential)
	router.GET("/credentials/network", security.Authorize(roles.Admin), h.GetNetworkCredentials)
	router.POST("/credentials/network", security.Authorize(roles.Admin), h.CreateNetworkCredential)
}

func (h *CredentialHandler) CreateCredential(c *gin.Context) {
	var req models.CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	principal, _ := security.PrincipalFromContext(c)
	credential, err := h.service.CreateCredential(c.Request.Context(), principal, req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Failed to store credential", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, credential)
}

func (h *CredentialHandler) GetCredentials(c *gin.Context) {
	list, err := h.service.ListCredentials(c.Request.Context())
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not obtain list of credentials", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *CredentialHandler) CreateNetworkCredential(c *gin.Context) {
	var req models.CreateNetworkCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	principal, _ := security.PrincipalFromContext(c)
	credential, err := h.service.CreateNetworkCredential(c.Request.Context(), principal, req)
	if err != nil {
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), gin.H{"error": "Failed to store network credential", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, credential)
}

func (h *CredentialHandler) GetNetworkCredentials(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if strings.EqualFold(location, "All") {
		location = ""
	}

	list, err := h.service.ListNetworkCredentials(c.Request.Context(), location)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not obtain list of network credentials", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}
