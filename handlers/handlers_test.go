package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yusufkaramustafa/Timesheet-App/handlers"
	"github.com/yusufkaramustafa/Timesheet-App/repository"
	"github.com/yusufkaramustafa/Timesheet-App/services"
)

var testSecret = []byte("test-secret")

// newTestRouter wires the same route groups as main.go against the given
// database.
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	userRepo := repository.NewUserRepository(db)
	timesheetRepo := repository.NewTimesheetRepository(db)
	statsService := services.NewStatsService(timesheetRepo, userRepo)
	exportService := services.NewExportService(timesheetRepo, userRepo)

	authHandler := handlers.NewAuthHandler(userRepo, testSecret)
	timesheetHandler := handlers.NewTimesheetHandler(timesheetRepo)
	adminHandler := handlers.NewAdminHandler(userRepo, timesheetRepo, statsService, exportService)

	router := gin.New()

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	requireAuth := handlers.RequireAuth(userRepo, testSecret)

	timesheet := router.Group("/timesheet")
	timesheet.Use(requireAuth)
	{
		timesheet.GET("/projects", timesheetHandler.GetProjects)
		timesheet.POST("/", timesheetHandler.Create)
		timesheet.GET("/", timesheetHandler.List)
		timesheet.PUT("/:id", timesheetHandler.Update)
		timesheet.DELETE("/:id", timesheetHandler.Delete)
	}

	admin := router.Group("/admin")
	admin.Use(requireAuth, handlers.AdminOnly())
	{
		admin.GET("/users", adminHandler.GetUsers)
		admin.GET("/timesheets", adminHandler.GetAllTimesheets)
		admin.GET("/statistics", adminHandler.GetStatistics)
		admin.GET("/export/timesheet", adminHandler.ExportTimesheets)
	}

	return router
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("want status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func decodeList(data []byte, out *[]map[string]interface{}) error {
	return json.Unmarshal(data, out)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
