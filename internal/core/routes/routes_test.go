package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/it407/it-assets/internal/core/config"
	"github.com/it407/it-assets/internal/core/container"
	"github.com/it407/it-assets/internal/store"
	"github.com/it407/it-assets/pkg/table"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupServer(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	cfg := &config.Config{StoreDriver: config.DriverMemory, JWTSecret: "test-secret", JWTTTL: time.Hour, AttendanceSheet: "odata"}
	c, err := container.NewAppContainer(ctx, cfg, zap.NewNop())
	require.NoError(t, err)

	fixtures := map[string][]table.Row{
		store.UserAccess: {
			{"user_id": "U1", "employee_id": "E1", "email": "admin@example.com", "password": "admin-pass", "role": "Admin", "is_active": "TRUE"},
			{"user_id": "U2", "employee_id": "E2", "email": "ravi@example.com", "password": "user-pass", "role": "User", "is_active": "TRUE"},
		},
		store.EmployeeMaster: {
			{"employee_id": "E1", "employee_name": "Asha", "department": "IT", "location": "HO", "employment_status": "Active"},
			{"employee_id": "E2", "employee_name": "Ravi", "department": "Sales", "location": "HO", "employment_status": "Active"},
		},
	}
	for name, rows := range fixtures {
		for _, row := range rows {
			require.NoError(t, c.Tables.AppendRow(ctx, name, row))
		}
	}

	router := gin.New()
	RegisterUtilityRoutes(router)
	RegisterPublicRoutes(router, c)
	RegisterProtectedRoutes(router, c)
	return router
}

func call(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine, email, password string) string {
	w := call(router, http.MethodPost, "/auth", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response["token"]
}

func TestAssetLifecycleEndToEnd(t *testing.T) {
	router := setupServer(t)
	admin := login(t, router, "admin@example.com", "admin-pass")

	w := call(router, http.MethodPost, "/assets", admin, map[string]interface{}{
		"asset_name": "ThinkPad", "category": "Laptop", "location": "HO", "quantity": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(router, http.MethodPost, "/assets/assignments", admin, map[string]string{"item_id": "AST-002", "employee_id": "E2"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(router, http.MethodGet, "/views/asset-summary", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Rows []map[string]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Len(t, summary.Rows, 1)
	assert.Equal(t, map[string]string{
		"category": "Laptop", "location": "HO", "total_qty": "3",
		"out_of_service_qty": "0", "total_assigned": "1", "available_qty": "2",
	}, summary.Rows[0])

	user := login(t, router, "ravi@example.com", "user-pass")
	w = call(router, http.MethodGet, "/views/my-assets", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AST-002")

	assert.Equal(t, http.StatusForbidden, call(router, http.MethodPost, "/assets/returns", user,
		map[string]string{"assignment_id": "ASN-0001", "return_reason": "Other"}).Code)

	w = call(router, http.MethodGet, "/me", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"employee_name":"Ravi"`)
}

func TestAuthentication(t *testing.T) {
	router := setupServer(t)

	assert.Equal(t, http.StatusOK, call(router, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(router, http.MethodGet, "/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(router, http.MethodGet, "/me", "not-a-token", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(router, http.MethodPost, "/auth", "",
		map[string]string{"email": "admin@example.com", "password": "wrong"}).Code)
}
