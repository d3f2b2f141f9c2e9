package security

import (
	"errors"
	"net/http"

	"github.com/it407/it-assets/internal/store"
	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginHandler struct {
	tables store.TableStore
	issuer *TokenIssuer
	logger *zap.Logger
}

func NewLoginHandler(tables store.TableStore, issuer *TokenIssuer, logger *zap.Logger) *LoginHandler {
	return &LoginHandler{
		tables: tables,
		issuer: issuer,
		logger: logger,
	}
}

func (l *LoginHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth", l.LoginHandler())
}

func (l *LoginHandler) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		user, err := AuthenticateUser(c.Request.Context(), l.tables, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			l.logger.Error("Unable to read user access table", zap.Error(err))
			c.JSON(custom_error.HTTPStatus(err), gin.H{"error": "Unable to verify credentials"})
			return
		}

		token, err := l.issuer.GenerateJWT(Principal{
			UserID:     user.ID,
			EmployeeID: user.EmployeeID,
			Email:      user.Email,
			Role:       user.Role,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		l.logger.Info("User signed in", zap.String("user_id", user.ID), zap.String("role", user.Role.String()))
		c.JSON(http.StatusOK, gin.H{"token": token, "role": user.Role})
	}
}
