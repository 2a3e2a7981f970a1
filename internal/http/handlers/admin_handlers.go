package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// AdminHandlers handles the HR administration surface: the user directory,
// leave quotas, the holiday calendar and the tabular export.
type AdminHandlers struct {
	userRepo     domain.UserRepository
	settingsRepo domain.SettingsRepository
	passwordSvc  domain.PasswordService
	exportSvc    domain.ExportService
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(
	userRepo domain.UserRepository,
	settingsRepo domain.SettingsRepository,
	passwordSvc domain.PasswordService,
	exportSvc domain.ExportService,
) *AdminHandlers {
	return &AdminHandlers{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		passwordSvc:  passwordSvc,
		exportSvc:    exportSvc,
	}
}

// CreateUserRequest represents a new directory entry
type CreateUserRequest struct {
	Username   string `json:"username" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department" binding:"required"`
	ManagerID  *uint  `json:"manager_id"`
}

// UpdateUserRequest carries the mutable user fields
type UpdateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	Department string `json:"department"`
	ManagerID  *uint  `json:"manager_id"`
}

// HolidayRequest represents a new holiday calendar entry
type HolidayRequest struct {
	Name string `json:"name" binding:"required"`
	Date string `json:"date" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// ListUsers handles GET /admin/users
func (h *AdminHandlers) ListUsers(c *gin.Context) {
	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userPayload(u))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// CreateUser handles POST /admin/users
func (h *AdminHandlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := h.passwordSvc.Hash(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := &domain.User{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         domain.Role(req.Role),
		Department:   req.Department,
		ManagerID:    req.ManagerID,
	}

	if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
		if err == domain.ErrUsernameTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	audit(domain.NewAuditEvent(domain.UserCreatedEvent, user.ID).
		WithMetadata("username", user.Username).
		WithMetadata("role", string(user.Role)))
	c.JSON(http.StatusCreated, gin.H{"data": userPayload(user)})
}

// UpdateUser handles PUT /admin/users/:id
func (h *AdminHandlers) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find user"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = domain.Role(req.Role)
	}
	if req.Department != "" {
		user.Department = req.Department
	}
	if req.ManagerID != nil {
		user.ManagerID = req.ManagerID
	}

	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	audit(domain.NewAuditEvent(domain.UserUpdatedEvent, user.ID))
	c.JSON(http.StatusOK, gin.H{"data": userPayload(user)})
}

// DeleteUser handles DELETE /admin/users/:id
func (h *AdminHandlers) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.userRepo.Delete(c.Request.Context(), uint(id)); err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	audit(domain.NewAuditEvent(domain.UserDeletedEvent, uint(id)))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "User deleted"}})
}

// GetQuotas handles GET /admin/quotas
func (h *AdminHandlers) GetQuotas(c *gin.Context) {
	quotas, err := h.settingsRepo.Quotas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quotas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": quotas})
}

// UpdateQuotas handles PUT /admin/quotas
func (h *AdminHandlers) UpdateQuotas(c *gin.Context) {
	var quotas domain.LeaveQuotas
	if err := c.ShouldBindJSON(&quotas); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settingsRepo.UpdateQuotas(c.Request.Context(), quotas); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quotas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": quotas})
}

// ListHolidays handles GET /admin/holidays
func (h *AdminHandlers) ListHolidays(c *gin.Context) {
	holidays, err := h.settingsRepo.Holidays(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load holidays"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": holidays})
}

// AddHoliday handles POST /admin/holidays
func (h *AdminHandlers) AddHoliday(c *gin.Context) {
	var req HolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	holiday, err := h.settingsRepo.AddHoliday(c.Request.Context(), domain.Holiday{
		Name: req.Name,
		Date: date,
		Type: req.Type,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add holiday"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": holiday})
}

// ExportCSV handles GET /admin/leaves/export: the full request list as CSV.
func (h *AdminHandlers) ExportCSV(c *gin.Context) {
	payload, filename, err := h.exportSvc.RequestsCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export leave requests"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// audit writes a structured audit line for directory mutations.
func audit(e *domain.AuditEvent) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Printf("AUDIT_ENCODE_FAILED: event=%s error=%v", e.EventType, err)
		return
	}
	log.Printf("AUDIT: %s", data)
}

func userPayload(u *domain.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"name":       u.Name,
		"email":      u.Email,
		"phone":      u.Phone,
		"role":       u.Role,
		"department": u.Department,
		"manager_id": u.ManagerID,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}
