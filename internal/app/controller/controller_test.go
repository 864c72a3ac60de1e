package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Maya170605/customs-backend/config"
	"github.com/Maya170605/customs-backend/internal/app/controller"
	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/repository"
	"github.com/Maya170605/customs-backend/internal/app/service"
	"github.com/Maya170605/customs-backend/internal/db"
	"github.com/Maya170605/customs-backend/internal/middleware"
	"github.com/Maya170605/customs-backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret"

// testServer wires the full application against an in-memory database, so
// controller tests exercise the real route table and middleware stack.
type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
	auth   service.AuthService
}

func setupTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	require.NoError(t, testDB.Create(&model.Unp{Unp: "123456789", CompanyName: "Acme Ltd"}).Error)
	require.NoError(t, testDB.Create(&model.Unp{Unp: "987654321", CompanyName: "Globex Corp"}).Error)

	userRepo := repository.NewUserRepository(testDB)
	unpRepo := repository.NewUnpRepository(testDB)
	declarationRepo := repository.NewDeclarationRepository(testDB)
	paymentRepo := repository.NewPaymentRepository(testDB)
	vehicleRepo := repository.NewVehicleRepository(testDB)
	activityRepo := repository.NewActivityRepository(testDB)

	authService := service.NewAuthService(userRepo, unpRepo, testJWTSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo)
	declarationService := service.NewDeclarationService(declarationRepo, userRepo)
	paymentService := service.NewPaymentService(paymentRepo, declarationRepo, userRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, userRepo)
	activityService := service.NewActivityService(activityRepo, userRepo)

	require.NoError(t, authService.BootstrapAdmin("admin", "admin123", "admin@example.com"))

	cfg := &config.Config{}
	cfg.Server.GinMode = gin.TestMode
	cfg.CORS.AllowedOrigins = []string{"*"}

	r := router.NewRouter(
		controller.NewAuthController(authService, userService),
		controller.NewUserController(userService, authService),
		controller.NewActivityController(activityService),
		controller.NewDeclarationController(declarationService),
		controller.NewPaymentController(paymentService, declarationService),
		controller.NewVehicleController(vehicleService),
		middleware.NewAuthMiddleware(testJWTSecret, userRepo),
		cfg,
	)

	return &testServer{engine: r.Setup(), db: testDB, auth: authService}
}

func (s *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	return list
}

// registerAndLogin creates the account and returns (token, user id).
func (s *testServer) registerAndLogin(t *testing.T, req service.RegisterRequest) (string, uint) {
	t.Helper()

	w := s.request(t, http.MethodPost, "/api/auth/register", "", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": req.Username,
		"password": req.Password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, _ := body["accessToken"].(string)
	require.NotEmpty(t, token)
	id, _ := body["id"].(float64)
	return token, uint(id)
}

func (s *testServer) loginAdmin(t *testing.T) string {
	t.Helper()
	w := s.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decodeBody(t, w)["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}

func clientRegistration(username, unp string) service.RegisterRequest {
	return service.RegisterRequest{
		Username: username,
		Password: "password123",
		Role:     "CLIENT",
		Name:     "Acme Ltd",
		Unp:      unp,
	}
}

func driverRegistration(username string) service.RegisterRequest {
	return service.RegisterRequest{
		Username: username,
		Password: "password123",
		Role:     "DRIVER",
	}
}
