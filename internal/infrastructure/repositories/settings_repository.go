package repositories

import (
	"context"
	"sync"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// SettingsRepositoryImpl implements domain.SettingsRepository in memory,
// seeded from config at boot. Quotas are replaced wholesale; holidays get
// incrementing ids past the seeded ones.
type SettingsRepositoryImpl struct {
	mu       sync.RWMutex
	quotas   domain.LeaveQuotas
	holidays []domain.Holiday
	nextID   int
}

// NewSettingsRepository creates the settings store from the seeded values
func NewSettingsRepository(quotas domain.LeaveQuotas, holidays []domain.Holiday) domain.SettingsRepository {
	nextID := 1
	for _, h := range holidays {
		if h.ID >= nextID {
			nextID = h.ID + 1
		}
	}
	cp := make([]domain.Holiday, len(holidays))
	copy(cp, holidays)
	return &SettingsRepositoryImpl{
		quotas:   quotas,
		holidays: cp,
		nextID:   nextID,
	}
}

// Quotas implements domain.SettingsRepository
func (r *SettingsRepositoryImpl) Quotas(ctx context.Context) (domain.LeaveQuotas, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.quotas, nil
}

// UpdateQuotas implements domain.SettingsRepository
func (r *SettingsRepositoryImpl) UpdateQuotas(ctx context.Context, q domain.LeaveQuotas) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotas = q
	return nil
}

// Holidays implements domain.SettingsRepository
func (r *SettingsRepositoryImpl) Holidays(ctx context.Context) ([]domain.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Holiday, len(r.holidays))
	copy(out, r.holidays)
	return out, nil
}

// AddHoliday implements domain.SettingsRepository
func (r *SettingsRepositoryImpl) AddHoliday(ctx context.Context, h domain.Holiday) (domain.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h.ID = r.nextID
	r.nextID++
	r.holidays = append(r.holidays, h)
	return h, nil
}
