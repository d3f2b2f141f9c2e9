package security

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/it407/it-assets/internal/store"
	"github.com/it407/it-assets/internal/store/memory"
	"github.com/it407/it-assets/pkg/roles"
	"github.com/it407/it-assets/pkg/table"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedUsers(t *testing.T) *memory.Store {
	s := memory.NewStore()
	rows := []table.Row{
		{"user_id": "U1", "employee_id": "E1", "email": "admin@example.com", "password": "secret", "role": "Admin", "is_active": "TRUE"},
		{"user_id": "U2", "employee_id": "E2", "email": "asha@example.com", "password": "pw", "role": "User", "is_active": "true"},
		{"user_id": "U3", "employee_id": "E3", "email": "gone@example.com", "password": "pw", "role": "User", "is_active": "false"},
		{"user_id": "U4", "employee_id": "E4", "email": "moved@example.com", "password": "old", "role": "User", "is_active": "false"},
		{"user_id": "U5", "employee_id": "E4", "email": "moved@example.com", "password": "new", "role": "Manager", "is_active": "true"},
	}
	for _, r := range rows {
		require.NoError(t, s.AppendRow(context.Background(), store.UserAccess, r))
	}
	return s
}

func TestAuthenticateUser(t *testing.T) {
	s := seedUsers(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantUser string
		wantErr  bool
	}{
		{"valid admin", "admin@example.com", "secret", "U1", false},
		{"email is case insensitive", "  Asha@Example.com", "pw", "U2", false},
		{"wrong password", "admin@example.com", "nope", "", true},
		{"inactive user", "gone@example.com", "pw", "", true},
		{"unknown user", "who@example.com", "pw", "", true},
		{"active row behind an inactive one", "moved@example.com", "new", "U5", false},
		{"password of the inactive row", "moved@example.com", "old", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := AuthenticateUser(context.Background(), s, tt.email, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user.ID)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	principal := Principal{UserID: "U1", EmployeeID: "E1", Email: "admin@example.com", Role: roles.Admin}

	token, err := issuer.GenerateJWT(principal)
	require.NoError(t, err)

	parsed, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, principal, parsed)

	_, err = NewTokenIssuer("other-secret", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.GenerateJWT(Principal{UserID: "U1", Role: roles.User})
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestLoginHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := NewTokenIssuer("test-secret", time.Hour)
	router := gin.New()
	NewLoginHandler(seedUsers(t), issuer, zap.NewNop()).RegisterRoutes(router)

	tests := []struct {
		name           string
		payload        interface{}
		expectedStatus int
	}{
		{"successful login", map[string]string{"email": "admin@example.com", "password": "secret"}, http.StatusOK},
		{"bad password", map[string]string{"email": "admin@example.com", "password": "x"}, http.StatusUnauthorized},
		{"missing password", map[string]string{"email": "admin@example.com"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.payload)
			req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var response map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				p, err := issuer.Parse(response["token"])
				require.NoError(t, err)
				assert.Equal(t, "E1", p.EmployeeID)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := NewTokenIssuer("test-secret", time.Hour)

	router := gin.New()
	protected := router.Group("")
	protected.Use(JWTMiddleware(issuer))
	protected.GET("/admin", Authorize(roles.Admin, roles.Manager), func(c *gin.Context) {
		p, _ := PrincipalFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID})
	})

	adminToken, _ := issuer.GenerateJWT(Principal{UserID: "U1", Role: roles.Admin})
	hrToken, _ := issuer.GenerateJWT(Principal{UserID: "U4", Role: roles.Hr})

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"admin allowed", "Bearer " + adminToken, http.StatusOK},
		{"hr forbidden", "Bearer " + hrToken, http.StatusForbidden},
		{"missing header", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nonsense", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
