package employees

import (
	"net/http"

	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/roles"
	"github.com/it407/it-assets/pkg/security"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	Repository EmployeeRepository
}

func NewHandler(r EmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{
		Repository: r,
	}
}

func (h *EmployeeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/employees/active", security.Authorize(roles.Admin), h.GetActiveEmployees)
}

func (h *EmployeeHandler) GetActiveEmployees(c *gin.Context) {
	employees, err := h.Repository.GetActiveEmployees(c.Request.Context())
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Could not obtain list of employees", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, employees)
}
