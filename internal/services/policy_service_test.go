package services

import (
	"errors"
	"testing"

	"github.com/iamasim4u/atcl-leave-system/domain"
	"github.com/iamasim4u/atcl-leave-system/internal/mocks"
)

// createPolicyServiceForTest creates a PolicyService with a mock Casbin enforcer.
func createPolicyServiceForTest(t *testing.T) (domain.PolicyService, *mocks.MockCasbinEnforcer) {
	t.Helper()

	enforcer := mocks.NewMockCasbinEnforcer()
	return NewPolicyServiceWithEnforcer(enforcer), enforcer
}

func TestPolicyServiceImpl_AddPolicy(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockCasbinEnforcer)
		wantErr   bool
		wantSave  bool
	}{
		{
			name:      "successful addition persists the policy",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer) {},
			wantErr:   false,
			wantSave:  true,
		},
		{
			name: "enforcer failure surfaces",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer) {
				enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
					return false, errors.New("adapter down")
				}
			},
			wantErr:  true,
			wantSave: false,
		},
		{
			name: "save failure surfaces",
			setupMock: func(enforcer *mocks.MockCasbinEnforcer) {
				enforcer.SavePolicyFunc = func() error {
					return errors.New("adapter down")
				}
			},
			wantErr:  true,
			wantSave: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, enforcer := createPolicyServiceForTest(t)
			saveCalled := false
			tt.setupMock(enforcer)
			if enforcer.SavePolicyFunc == nil {
				enforcer.SavePolicyFunc = func() error {
					saveCalled = true
					return nil
				}
			} else {
				inner := enforcer.SavePolicyFunc
				enforcer.SavePolicyFunc = func() error {
					saveCalled = true
					return inner()
				}
			}

			err := svc.AddPolicy("role_manager", "/leaves/*", "GET")
			if (err != nil) != tt.wantErr {
				t.Errorf("AddPolicy error = %v, wantErr %v", err, tt.wantErr)
			}
			if saveCalled != tt.wantSave {
				t.Errorf("SavePolicy called = %v, want %v", saveCalled, tt.wantSave)
			}
		})
	}
}

func TestPolicyServiceImpl_RemovePolicy(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t)

	if err := svc.AddPolicy("role_manager", "/leaves/*", "GET"); err != nil {
		t.Fatalf("AddPolicy failed: %v", err)
	}
	if err := svc.RemovePolicy("role_manager", "/leaves/*", "GET"); err != nil {
		t.Fatalf("RemovePolicy failed: %v", err)
	}

	policies, _ := enforcer.GetPolicy()
	for _, p := range policies {
		if p[0] == "role_manager" {
			t.Errorf("policy still present after removal: %v", p)
		}
	}
}

func TestPolicyServiceImpl_CheckPermission(t *testing.T) {
	svc, _ := createPolicyServiceForTest(t)

	allowed, err := svc.CheckPermission("role_hr", "/admin/*", "(GET|POST|PUT|DELETE)")
	if err != nil {
		t.Fatalf("CheckPermission failed: %v", err)
	}
	if !allowed {
		t.Error("seeded grant should be allowed")
	}

	allowed, err = svc.CheckPermission("role_employee", "/admin/*", "GET")
	if err != nil {
		t.Fatalf("CheckPermission failed: %v", err)
	}
	if allowed {
		t.Error("employee must not hold the admin grant")
	}
}

func TestPolicyServiceImpl_GetPolicies(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t)

	seeded, _ := enforcer.GetPolicy()
	got := svc.GetPolicies()
	if len(got) != len(seeded) {
		t.Errorf("GetPolicies returned %d policies, want %d", len(got), len(seeded))
	}
}
