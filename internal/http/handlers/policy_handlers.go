package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// PolicyHandlers exposes the role-route grant table for administration.
type PolicyHandlers struct {
	policySvc domain.PolicyService
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policySvc domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc}
}

type policyReq struct{ Sub, Obj, Act string }

func (h *PolicyHandlers) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.policySvc.GetPolicies())
}

func (h *PolicyHandlers) Add(c *gin.Context) {
	var r policyReq
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.policySvc.AddPolicy(r.Sub, r.Obj, r.Act); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not added"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r policyReq
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.policySvc.RemovePolicy(r.Sub, r.Obj, r.Act); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not removed"})
		return
	}
	c.Status(http.StatusNoContent)
}
