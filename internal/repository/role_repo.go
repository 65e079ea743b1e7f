package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRoleRepository resolves role assignments for accounts.
type UserRoleRepository interface {
	GetRole(ctx context.Context, userID uuid.UUID) (string, error)
	Assign(ctx context.Context, userID uuid.UUID, role string) error
}

type userRoleRepository struct {
	db *gorm.DB
}

func NewUserRoleRepository(db *gorm.DB) UserRoleRepository {
	return &userRoleRepository{db: db}
}

// GetRole returns the role assigned to userID. A missing row surfaces as
// gorm.ErrRecordNotFound so callers can distinguish it from query failures.
func (r *userRoleRepository) GetRole(ctx context.Context, userID uuid.UUID) (string, error) {
	var assignment model.UserRole
	if err := GetDB(ctx, r.db).First(&assignment, "user_id = ?", userID).Error; err != nil {
		return "", err
	}
	return assignment.Role, nil
}

func (r *userRoleRepository) Assign(ctx context.Context, userID uuid.UUID, role string) error {
	return GetDB(ctx, r.db).Create(&model.UserRole{UserID: userID, Role: role}).Error
}
