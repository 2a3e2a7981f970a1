package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/iamasim4u/atcl-leave-system/domain"
	"github.com/iamasim4u/atcl-leave-system/internal/mocks"
)

// testIdentity injects the context values the auth middleware would set.
func testIdentity(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}

func buildLeaveRouter(workflowSvc domain.WorkflowService, exportSvc domain.ExportService, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewLeaveHandlers(workflowSvc, exportSvc)

	r := gin.New()
	g := r.Group("/", testIdentity(userID, role))
	g.POST("/leaves", h.Submit)
	g.GET("/leaves", h.All)
	g.GET("/leaves/mine", h.Mine)
	g.GET("/leaves/pending", h.Pending)
	g.POST("/leaves/:id/steps/:stepID/decision", h.Decide)
	g.GET("/leaves/:id/certificate", h.Certificate)
	return r
}

func TestLeaveHandlers_Submit(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		setupMocks     func(*mocks.MockWorkflowService)
		expectedStatus int
	}{
		{
			name: "successful submission",
			body: map[string]interface{}{
				"leave_type": "annual",
				"start_date": "2025-01-10",
				"end_date":   "2025-01-12",
				"reason":     "Family vacation",
			},
			setupMocks: func(svc *mocks.MockWorkflowService) {
				svc.SubmitFunc = func(ctx context.Context, in domain.SubmitLeaveInput) (*domain.LeaveRequest, error) {
					if in.EmployeeID != 1 {
						t.Errorf("expected employee 1 from context, got %d", in.EmployeeID)
					}
					return &domain.LeaveRequest{ID: "req_1", EmployeeID: in.EmployeeID, Duration: 3, CurrentStep: 1, FinalStatus: domain.StatusPending}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing reason",
			body: map[string]interface{}{
				"leave_type": "annual",
				"start_date": "2025-01-10",
				"end_date":   "2025-01-12",
			},
			setupMocks:     func(svc *mocks.MockWorkflowService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "malformed date",
			body: map[string]interface{}{
				"leave_type": "annual",
				"start_date": "10/01/2025",
				"end_date":   "2025-01-12",
				"reason":     "x",
			},
			setupMocks:     func(svc *mocks.MockWorkflowService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "reversed range",
			body: map[string]interface{}{
				"leave_type": "annual",
				"start_date": "2025-01-12",
				"end_date":   "2025-01-10",
				"reason":     "x",
			},
			setupMocks: func(svc *mocks.MockWorkflowService) {
				svc.SubmitFunc = func(ctx context.Context, in domain.SubmitLeaveInput) (*domain.LeaveRequest, error) {
					return nil, domain.ErrInvalidDateRange
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workflowSvc := mocks.NewMockWorkflowService()
			tt.setupMocks(workflowSvc)
			router := buildLeaveRouter(workflowSvc, mocks.NewMockExportService(), "1", "employee")

			payload, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status %d, want %d (body: %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestLeaveHandlers_Decide(t *testing.T) {
	tests := []struct {
		name           string
		decideErr      error
		expectedStatus int
	}{
		{"successful decision", nil, http.StatusOK},
		{"unknown request", domain.ErrRequestNotFound, http.StatusNotFound},
		{"unknown step", domain.ErrStepNotFound, http.StatusNotFound},
		{"already finalized", domain.ErrRequestFinalized, http.StatusConflict},
		{"inactive step", domain.ErrStepNotActive, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workflowSvc := mocks.NewMockWorkflowService()
			workflowSvc.DecideFunc = func(ctx context.Context, in domain.DecideInput) (*domain.LeaveRequest, error) {
				if tt.decideErr != nil {
					return nil, tt.decideErr
				}
				if in.RequestID != "req_1" || in.StepID != "step_1" {
					t.Errorf("route params not forwarded: %+v", in)
				}
				if in.ActorID != 2 {
					t.Errorf("expected actor 2 from context, got %d", in.ActorID)
				}
				return &domain.LeaveRequest{ID: in.RequestID, CurrentStep: 2, FinalStatus: domain.StatusPending}, nil
			}
			router := buildLeaveRouter(workflowSvc, mocks.NewMockExportService(), "2", "manager")

			payload, _ := json.Marshal(DecisionRequest{Approved: true, Remarks: "OK", OTPVerified: true})
			req := httptest.NewRequest(http.MethodPost, "/leaves/req_1/steps/step_1/decision", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status %d, want %d (body: %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestLeaveHandlers_Pending(t *testing.T) {
	workflowSvc := mocks.NewMockWorkflowService()
	workflowSvc.PendingForApproverFunc = func(ctx context.Context, role domain.Role, approverID uint) ([]*domain.LeaveRequest, error) {
		if role != domain.RoleHR {
			t.Errorf("expected role hr from context, got %s", role)
		}
		if approverID != 3 {
			t.Errorf("expected approver 3, got %d", approverID)
		}
		return []*domain.LeaveRequest{{ID: "req_1"}}, nil
	}
	router := buildLeaveRouter(workflowSvc, mocks.NewMockExportService(), "3", "hr")

	req := httptest.NewRequest(http.MethodGet, "/leaves/pending", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Data []domain.LeaveRequest `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "req_1" {
		t.Errorf("unexpected queue: %+v", resp.Data)
	}
}

func TestLeaveHandlers_Mine(t *testing.T) {
	workflowSvc := mocks.NewMockWorkflowService()
	workflowSvc.ByEmployeeFunc = func(ctx context.Context, employeeID uint) ([]*domain.LeaveRequest, error) {
		if employeeID != 1 {
			t.Errorf("expected employee 1, got %d", employeeID)
		}
		return []*domain.LeaveRequest{{ID: "req_1"}, {ID: "req_2"}}, nil
	}
	router := buildLeaveRouter(workflowSvc, mocks.NewMockExportService(), "1", "employee")

	req := httptest.NewRequest(http.MethodGet, "/leaves/mine", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
}

func TestLeaveHandlers_Certificate(t *testing.T) {
	tests := []struct {
		name           string
		exportErr      error
		expectedStatus int
	}{
		{"ready certificate", nil, http.StatusOK},
		{"unknown request", domain.ErrRequestNotFound, http.StatusNotFound},
		{"not finalized", domain.ErrCertificateNotReady, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exportSvc := mocks.NewMockExportService()
			exportSvc.CertificateFunc = func(ctx context.Context, requestID string) ([]byte, string, error) {
				if tt.exportErr != nil {
					return nil, "", tt.exportErr
				}
				return []byte("%PDF-1.3 mock"), "ATCL_Leave_Request_req_1_John_Doe.pdf", nil
			}
			router := buildLeaveRouter(mocks.NewMockWorkflowService(), exportSvc, "1", "employee")

			req := httptest.NewRequest(http.MethodGet, "/leaves/req_1/certificate", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.exportErr == nil {
				if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
					t.Errorf("content type %q", ct)
				}
				if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="ATCL_Leave_Request_req_1_John_Doe.pdf"` {
					t.Errorf("content disposition %q", cd)
				}
			}
		})
	}
}
