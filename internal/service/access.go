package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AccessService classifies accounts as admin or citizen from the role
// assignment table. There is no finer-grained authorization model.
type AccessService interface {
	RoleFor(ctx context.Context, userID uuid.UUID) string
	IsAdmin(ctx context.Context, userID uuid.UUID) bool
}

type accessService struct {
	roles  repository.UserRoleRepository
	logger *zap.Logger
}

func NewAccessService(roles repository.UserRoleRepository, logger *zap.Logger) AccessService {
	return &accessService{roles: roles, logger: logger}
}

// RoleFor resolves the account's role. Both a missing assignment row and a
// query failure classify the account as citizen, but they are logged at
// different levels so operators can tell a healthy miss from a broken store.
func (s *accessService) RoleFor(ctx context.Context, userID uuid.UUID) string {
	role, err := s.roles.GetRole(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug("no role assignment, defaulting to citizen", zap.String("user_id", userID.String()))
		} else {
			s.logger.Warn("role lookup failed, defaulting to citizen", zap.String("user_id", userID.String()), zap.Error(err))
		}
		return model.RoleCitizen
	}
	return role
}

func (s *accessService) IsAdmin(ctx context.Context, userID uuid.UUID) bool {
	return s.RoleFor(ctx, userID) == model.RoleAdmin
}
