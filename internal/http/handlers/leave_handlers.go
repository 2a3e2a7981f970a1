package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

const dateLayout = "2006-01-02"

// LeaveHandlers handles leave workflow HTTP requests
type LeaveHandlers struct {
	workflowSvc domain.WorkflowService
	exportSvc   domain.ExportService
}

// NewLeaveHandlers creates new leave handlers
func NewLeaveHandlers(workflowSvc domain.WorkflowService, exportSvc domain.ExportService) *LeaveHandlers {
	return &LeaveHandlers{workflowSvc: workflowSvc, exportSvc: exportSvc}
}

// SubmitRequest represents a leave submission
type SubmitRequest struct {
	LeaveType        string                  `json:"leave_type" binding:"required"`
	StartDate        string                  `json:"start_date" binding:"required"`
	EndDate          string                  `json:"end_date" binding:"required"`
	ExitReentryVisa  bool                    `json:"exit_reentry_visa"`
	EmergencyContact domain.EmergencyContact `json:"emergency_contact"`
	Reason           string                  `json:"reason" binding:"required"`
}

// DecisionRequest represents an approve/reject decision on a step
type DecisionRequest struct {
	Approved    bool   `json:"approved"`
	Remarks     string `json:"remarks"`
	OTPVerified bool   `json:"otp_verified"`
}

// Submit handles POST /leaves: the authenticated user files a request for
// themselves.
func (h *LeaveHandlers) Submit(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}

	result, err := h.workflowSvc.Submit(c.Request.Context(), domain.SubmitLeaveInput{
		EmployeeID:       userID,
		LeaveType:        domain.LeaveType(req.LeaveType),
		StartDate:        start,
		EndDate:          end,
		ExitReentryVisa:  req.ExitReentryVisa,
		EmergencyContact: req.EmergencyContact,
		Reason:           req.Reason,
	})
	if err != nil {
		switch err {
		case domain.ErrEmployeeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		case domain.ErrInvalidDateRange:
			c.JSON(http.StatusBadRequest, gin.H{"error": "End date must not precede start date"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit leave request"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// Decide handles POST /leaves/:id/steps/:stepID/decision
func (h *LeaveHandlers) Decide(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.workflowSvc.Decide(c.Request.Context(), domain.DecideInput{
		RequestID:   c.Param("id"),
		StepID:      c.Param("stepID"),
		Approved:    req.Approved,
		Remarks:     req.Remarks,
		OTPVerified: req.OTPVerified,
		ActorID:     userID,
	})
	if err != nil {
		switch err {
		case domain.ErrRequestNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Leave request not found"})
		case domain.ErrStepNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Approval step not found"})
		case domain.ErrRequestFinalized:
			c.JSON(http.StatusConflict, gin.H{"error": "Request already finalized"})
		case domain.ErrStepNotActive:
			c.JSON(http.StatusConflict, gin.H{"error": "Step is not the active pending step"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply decision"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// Mine handles GET /leaves/mine: the authenticated user's own requests.
func (h *LeaveHandlers) Mine(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	requests, err := h.workflowSvc.ByEmployee(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leave requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": requests})
}

// Pending handles GET /leaves/pending: the approval queue for the
// authenticated approver, routed by role.
func (h *LeaveHandlers) Pending(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	roleVal, exists := c.Get("user_role")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User role not found in context"})
		return
	}

	requests, err := h.workflowSvc.PendingForApprover(c.Request.Context(), domain.Role(roleVal.(string)), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": requests})
}

// All handles GET /leaves: the organization-wide request list.
func (h *LeaveHandlers) All(c *gin.Context) {
	requests, err := h.workflowSvc.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leave requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": requests})
}

// Certificate handles GET /leaves/:id/certificate: the PDF download for a
// finalized request.
func (h *LeaveHandlers) Certificate(c *gin.Context) {
	payload, filename, err := h.exportSvc.Certificate(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch err {
		case domain.ErrRequestNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Leave request not found"})
		case domain.ErrCertificateNotReady:
			c.JSON(http.StatusConflict, gin.H{"error": "Request has not reached a final decision"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate certificate"})
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
