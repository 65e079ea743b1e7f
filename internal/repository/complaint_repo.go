package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplaintRepository defines data access for citizen complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) error
	GetByTrackingCode(ctx context.Context, code string) (*model.Complaint, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Complaint, error)
}

type complaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *model.Complaint) error {
	return GetDB(ctx, r.db).Create(complaint).Error
}

// GetByTrackingCode does an exact match on the shareable code. A miss comes
// back as gorm.ErrRecordNotFound, distinct from query failures.
func (r *complaintRepository) GetByTrackingCode(ctx context.Context, code string) (*model.Complaint, error) {
	var complaint model.Complaint
	if err := GetDB(ctx, r.db).First(&complaint, "complaint_id = ?", code).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := GetDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}
