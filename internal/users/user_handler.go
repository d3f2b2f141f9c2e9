package users

import (
	"errors"
	"net/http"

	"github.com/it407/it-assets/internal/employees"
	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/models"
	"github.com/it407/it-assets/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UsersHandler struct {
	Employees employees.EmployeeRepository
	logger    *zap.Logger
}

func NewHandler(r employees.EmployeeRepository, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		Employees: r,
		logger:    logger,
	}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.GetMe)
}

type meResponse struct {
	security.Principal
	Employee *models.Employee `json:"employee"`
}

// GetMe returns the signed-in principal with its employee record, or a null
// employee when the account is not linked to one.
func (h *UsersHandler) GetMe(c *gin.Context) {
	principal, ok := security.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
		return
	}

	response := meResponse{Principal: principal}
	if principal.EmployeeID != "" {
		employee, err := h.Employees.GetEmployee(c.Request.Context(), principal.EmployeeID)
		var lookup *custom_error.LookupError
		switch {
		case errors.As(err, &lookup):
			h.logger.Warn("User is linked to an unknown employee",
				zap.String("user_id", principal.UserID),
				zap.String("employee_id", principal.EmployeeID),
			)
		case err != nil:
			c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Failed to get employee", "details": err.Error()})
			return
		default:
			response.Employee = employee
		}
	}

	c.JSON(http.StatusOK, response)
}
