package mocks

import "github.com/iamasim4u/atcl-leave-system/domain"

// MockCasbinEnforcer implements the CasbinEnforcer interface for testing
type MockCasbinEnforcer struct {
	AddPolicyFunc    func(params ...interface{}) (bool, error)
	RemovePolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc      func(rvals ...interface{}) (bool, error)
	GetPolicyFunc    func() ([][]string, error)
	SavePolicyFunc   func() error
	policies         [][]string
}

var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)

// NewMockCasbinEnforcer creates a new MockCasbinEnforcer seeded with the
// default role grants.
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{
		policies: [][]string{
			{"role_hr", "/admin/*", "(GET|POST|PUT|DELETE)"},
			{"role_employee", "/auth/me", "GET"},
			{"role_employee", "/auth/logout", "POST"},
		},
	}
}

// AddPolicy adds a new policy rule
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	if len(params) < 3 {
		return false, nil
	}
	policy := make([]string, len(params))
	for i, param := range params {
		if str, ok := param.(string); ok {
			policy[i] = str
		}
	}
	m.policies = append(m.policies, policy)
	return true, nil
}

// RemovePolicy removes a policy rule
func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	if len(params) < 3 {
		return false, nil
	}
	for i, policy := range m.policies {
		if len(policy) != len(params) {
			continue
		}
		match := true
		for j, val := range policy {
			if str, ok := params[j].(string); !ok || str != val {
				match = false
				break
			}
		}
		if match {
			m.policies = append(m.policies[:i], m.policies[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Enforce checks if a request should be allowed
func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	if len(rvals) < 3 {
		return false, nil
	}
	for _, policy := range m.policies {
		match := true
		for j := 0; j < 3; j++ {
			if str, ok := rvals[j].(string); !ok || str != policy[j] {
				match = false
				break
			}
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// GetPolicy returns all policies
func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	result := make([][]string, len(m.policies))
	for i, policy := range m.policies {
		result[i] = make([]string, len(policy))
		copy(result[i], policy)
	}
	return result, nil
}

// SavePolicy saves all policies
func (m *MockCasbinEnforcer) SavePolicy() error {
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	return nil
}
