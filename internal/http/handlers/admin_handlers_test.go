package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasim4u/atcl-leave-system/domain"
	"github.com/iamasim4u/atcl-leave-system/internal/infrastructure/repositories"
	"github.com/iamasim4u/atcl-leave-system/internal/mocks"
)

func buildAdminRouter(userRepo domain.UserRepository, settingsRepo domain.SettingsRepository, exportSvc domain.ExportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandlers(userRepo, settingsRepo, mocks.NewMockPasswordService(), exportSvc)

	r := gin.New()
	adm := r.Group("/admin", testIdentity("3", "hr"))
	adm.GET("/users", h.ListUsers)
	adm.POST("/users", h.CreateUser)
	adm.PUT("/users/:id", h.UpdateUser)
	adm.DELETE("/users/:id", h.DeleteUser)
	adm.GET("/quotas", h.GetQuotas)
	adm.PUT("/quotas", h.UpdateQuotas)
	adm.GET("/holidays", h.ListHolidays)
	adm.POST("/holidays", h.AddHoliday)
	adm.GET("/leaves/export", h.ExportCSV)
	return r
}

func defaultSettingsRepo() domain.SettingsRepository {
	return repositories.NewSettingsRepository(
		domain.LeaveQuotas{Annual: 30, Sick: 15, Emergency: 5, Maternity: 90, Hajj: 21, Unpaid: 30},
		[]domain.Holiday{{ID: 1, Name: "National Day", Date: time.Date(2025, 9, 23, 0, 0, 0, 0, time.UTC), Type: "public"}},
	)
}

func TestAdminHandlers_CreateUser(t *testing.T) {
	tests := []struct {
		name           string
		body           CreateUserRequest
		setupMocks     func(*mocks.MockUserRepository)
		expectedStatus int
	}{
		{
			name: "successful creation",
			body: CreateUserRequest{
				Username:   "new.hire",
				Name:       "New Hire",
				Email:      "new.hire@atcl.sa",
				Password:   "password123",
				Role:       "employee",
				Department: "Sales",
			},
			setupMocks: func(repo *mocks.MockUserRepository) {
				repo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					if user.PasswordHash != "hashed_password123" {
						t.Errorf("password not hashed before storage: %q", user.PasswordHash)
					}
					user.ID = 9
					return nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate username",
			body: CreateUserRequest{
				Username:   "john.doe",
				Name:       "John Doe",
				Email:      "john.doe@atcl.sa",
				Password:   "password123",
				Role:       "employee",
				Department: "Sales",
			},
			setupMocks: func(repo *mocks.MockUserRepository) {
				repo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					return domain.ErrUsernameTaken
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "short password rejected",
			body: CreateUserRequest{
				Username:   "new.hire",
				Name:       "New Hire",
				Email:      "new.hire@atcl.sa",
				Password:   "short",
				Role:       "employee",
				Department: "Sales",
			},
			setupMocks:     func(repo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(userRepo)
			router := buildAdminRouter(userRepo, defaultSettingsRepo(), mocks.NewMockExportService())

			payload, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/admin/users", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status %d, want %d (body: %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestAdminHandlers_UpdateUser(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	var updated *domain.User
	userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		updated = user
		return nil
	}
	router := buildAdminRouter(userRepo, defaultSettingsRepo(), mocks.NewMockExportService())

	payload, _ := json.Marshal(UpdateUserRequest{Department: "Finance", ManagerID: uintPtr(8)})
	req := httptest.NewRequest(http.MethodPut, "/admin/users/1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d (body: %s)", w.Code, w.Body.String())
	}
	if updated == nil || updated.Department != "Finance" {
		t.Errorf("department not applied: %+v", updated)
	}
	if updated.ManagerID == nil || *updated.ManagerID != 8 {
		t.Error("manager binding not applied")
	}
	// Untouched fields keep their stored values.
	if updated.Name != "Mock User" {
		t.Errorf("name should be unchanged, got %q", updated.Name)
	}
}

func uintPtr(v uint) *uint { return &v }

func TestAdminHandlers_CreateUser_WritesAuditLine(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	userRepo := mocks.NewMockUserRepository()
	userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		user.ID = 9
		return nil
	}
	router := buildAdminRouter(userRepo, defaultSettingsRepo(), mocks.NewMockExportService())

	payload, _ := json.Marshal(CreateUserRequest{
		Username:   "new.hire",
		Name:       "New Hire",
		Email:      "new.hire@atcl.sa",
		Password:   "password123",
		Role:       "employee",
		Department: "Sales",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/users", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status %d (body: %s)", w.Code, w.Body.String())
	}
	logged := buf.String()
	if !strings.Contains(logged, string(domain.UserCreatedEvent)) {
		t.Error("creation should write a USER_CREATED audit line")
	}
	if !strings.Contains(logged, "new.hire") {
		t.Error("audit line should carry the username")
	}
}

func TestAdminHandlers_DeleteUser_WritesAuditLine(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	router := buildAdminRouter(mocks.NewMockUserRepository(), defaultSettingsRepo(), mocks.NewMockExportService())

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d (body: %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(buf.String(), string(domain.UserDeletedEvent)) {
		t.Error("deletion should write a USER_DELETED audit line")
	}
}

func TestAdminHandlers_Quotas(t *testing.T) {
	router := buildAdminRouter(mocks.NewMockUserRepository(), defaultSettingsRepo(), mocks.NewMockExportService())

	req := httptest.NewRequest(http.MethodGet, "/admin/quotas", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	var resp struct {
		Data domain.LeaveQuotas `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Data.Annual != 30 {
		t.Errorf("unexpected quotas: %+v", resp.Data)
	}

	payload, _ := json.Marshal(domain.LeaveQuotas{Annual: 25, Sick: 15, Emergency: 5, Maternity: 90, Hajj: 21, Unpaid: 30})
	req = httptest.NewRequest(http.MethodPut, "/admin/quotas", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update status %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/quotas", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Annual != 25 {
		t.Errorf("update did not take: %+v", resp.Data)
	}
}

func TestAdminHandlers_Holidays(t *testing.T) {
	router := buildAdminRouter(mocks.NewMockUserRepository(), defaultSettingsRepo(), mocks.NewMockExportService())

	payload, _ := json.Marshal(HolidayRequest{Name: "Founding Day", Date: "2026-02-22", Type: "public"})
	req := httptest.NewRequest(http.MethodPost, "/admin/holidays", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d (body: %s)", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/holidays", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Data []domain.Holiday `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 holidays, got %d", len(resp.Data))
	}

	// Malformed dates bounce.
	payload, _ = json.Marshal(HolidayRequest{Name: "Bad", Date: "22/02/2026", Type: "public"})
	req = httptest.NewRequest(http.MethodPost, "/admin/holidays", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestAdminHandlers_ExportCSV(t *testing.T) {
	exportSvc := mocks.NewMockExportService()
	exportSvc.RequestsCSVFunc = func(ctx context.Context) ([]byte, string, error) {
		return []byte("Request ID,Employee Name\n"), "leave_requests_2025-01-05.csv", nil
	}
	router := buildAdminRouter(mocks.NewMockUserRepository(), defaultSettingsRepo(), exportSvc)

	req := httptest.NewRequest(http.MethodGet, "/admin/leaves/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="leave_requests_2025-01-05.csv"` {
		t.Errorf("content disposition %q", cd)
	}
}
