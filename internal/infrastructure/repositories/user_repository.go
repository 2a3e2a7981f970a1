package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/iamasim4u/atcl-leave-system/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint           `gorm:"primaryKey"`
	Username     string         `gorm:"uniqueIndex;size:128"`
	Name         string         `gorm:"size:255"`
	Email        string         `gorm:"uniqueIndex;size:255"`
	Phone        string         `gorm:"size:32"`
	PasswordHash string         `gorm:"column:password"`
	Role         string         `gorm:"index;size:32"`
	Department   string         `gorm:"index;size:128"`
	ManagerID    *uint          `gorm:"index"`
	CreatedAt    time.Time      `gorm:"index"`
	UpdatedAt    time.Time      `gorm:"index"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. A unique-index collision (the
// username column in practice) comes back as ErrUsernameTaken; the caller
// maps it to a conflict response.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	user.ID = dbUser.ID
	return nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByUsername implements domain.UserRepository
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	return r.db.WithContext(ctx).Save(dbUser).Error
}

// Delete implements domain.UserRepository
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBUser{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context) ([]*domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Order("id").Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, r.dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// ListByRole implements domain.UserRepository
func (r *UserRepositoryImpl) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Where("role = ?", string(role)).Order("id").Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, r.dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:           user.ID,
		Username:     user.Username,
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Department:   user.Department,
		ManagerID:    user.ManagerID,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Username:     dbUser.Username,
		Name:         dbUser.Name,
		Email:        dbUser.Email,
		Phone:        dbUser.Phone,
		PasswordHash: dbUser.PasswordHash,
		Role:         domain.Role(dbUser.Role),
		Department:   dbUser.Department,
		ManagerID:    dbUser.ManagerID,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
