package assets

import (
	"net/http"

	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/models"
	"github.com/it407/it-assets/pkg/roles"
	"github.com/it407/it-assets/pkg/security"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	service *AssetService
}

func NewAssetHandler(service *AssetService) *AssetHandler {
	return &AssetHandler{
		service: service,
	}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/assets", security.Authorize(roles.Admin), h.GetAssets)
	router.POST("/assets", security.Authorize(roles.Admin), h.CreateAssets)
	router.GET("/assets/options", security.Authorize(roles.Admin), h.GetOptions)
}

func (h *AssetHandler) CreateAssets(c *gin.Context) {
	var req models.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	principal, _ := security.PrincipalFromContext(c)
	assets, err := h.service.CreateAssets(c.Request.Context(), principal, req)
	if err != nil {
		response := gin.H{"error": "Failed to create assets", "details": err.Error()}
		if len(assets) > 0 {
			response["created"] = assets
		}
		c.AbortWithStatusJSON(custom_error.HTTPStatus(err), response)
		return
	}

	c.JSON(http.StatusCreated, assets)
}

func (h *AssetHandler) GetAssets(c *gin.Context) {
	assets, err := h.service.ListAssets(c.Request.Context())
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not obtain list of assets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) GetOptions(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context())
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not obtain asset options", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, options)
}
