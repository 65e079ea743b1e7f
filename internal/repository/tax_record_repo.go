package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaxRecordRepository defines data access for the tax ledger.
type TaxRecordRepository interface {
	Create(ctx context.Context, record *model.TaxRecord) error
	Update(ctx context.Context, record *model.TaxRecord) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.TaxRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TaxRecord, error)
	ListAll(ctx context.Context, page, limit int, query string) ([]model.TaxRecord, int64, error)
}

type taxRecordRepository struct {
	db *gorm.DB
}

func NewTaxRecordRepository(db *gorm.DB) TaxRecordRepository {
	return &taxRecordRepository{db: db}
}

func (r *taxRecordRepository) Create(ctx context.Context, record *model.TaxRecord) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *taxRecordRepository) Update(ctx context.Context, record *model.TaxRecord) error {
	return GetDB(ctx, r.db).Save(record).Error
}

// Delete hard-deletes the record and reports how many rows were removed so
// the service can distinguish a miss from success.
func (r *taxRecordRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TaxRecord{})
	return res.RowsAffected, res.Error
}

func (r *taxRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TaxRecord, error) {
	var record model.TaxRecord
	if err := GetDB(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *taxRecordRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TaxRecord, error) {
	var records []model.TaxRecord
	if err := GetDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListAll returns the paginated ledger, most recent first. A non-empty query
// substring-matches property id, tax type, and the payer's full name and
// Aadhaar number.
func (r *taxRecordRepository) ListAll(ctx context.Context, page, limit int, query string) ([]model.TaxRecord, int64, error) {
	var records []model.TaxRecord
	var total int64

	db := GetDB(ctx, r.db).Model(&model.TaxRecord{})
	if query != "" {
		like := "%" + query + "%"
		db = db.Joins("JOIN users ON users.id = tax_records.user_id").
			Where(`LOWER(tax_records.property_id) LIKE LOWER(?)
				OR LOWER(tax_records.tax_type) LIKE LOWER(?)
				OR LOWER(users.full_name) LIKE LOWER(?)
				OR users.aadhar_number LIKE ?`, like, like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("User").Order("tax_records.created_at desc").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
