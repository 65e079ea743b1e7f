package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"
	"backend/pkg/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// DTOs for request validation
type CreateTaxRecordRequest struct {
	UserID          string          `json:"user_id" binding:"required"`
	PropertyID      string          `json:"property_id" binding:"required"`
	PropertyAddress *string         `json:"property_address"`
	TaxType         string          `json:"tax_type" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	DueDate         string          `json:"due_date" binding:"required"` // YYYY-MM-DD
	FinancialYear   string          `json:"financial_year" binding:"required"`
}

type UpdateTaxRecordRequest struct {
	PropertyID      string           `json:"property_id"`
	PropertyAddress *string          `json:"property_address"`
	TaxType         string           `json:"tax_type"`
	Amount          *decimal.Decimal `json:"amount"`
	DueDate         string           `json:"due_date"`
	FinancialYear   string           `json:"financial_year"`
	Status          string           `json:"status"`
}

// TaxRecordResponse is the ledger row as presented to clients. Status is the
// effective status: a pending record past its due date reads as overdue.
type TaxRecordResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	UserName        string          `json:"user_name,omitempty"`
	AadharNumber    string          `json:"aadhar_number,omitempty"`
	PropertyID      string          `json:"property_id"`
	PropertyAddress *string         `json:"property_address,omitempty"`
	TaxType         string          `json:"tax_type"`
	Amount          decimal.Decimal `json:"amount"`
	DueDate         string          `json:"due_date"`
	FinancialYear   string          `json:"financial_year"`
	Status          string          `json:"status"`
	PaidDate        *string         `json:"paid_date,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

// TaxService is the tax ledger: admin CRUD plus the citizen self-service
// payment path.
type TaxService interface {
	Create(ctx context.Context, actorID uuid.UUID, req CreateTaxRecordRequest) (*TaxRecordResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req UpdateTaxRecordRequest) (*TaxRecordResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	MarkPaid(ctx context.Context, actorID, id uuid.UUID) (*TaxRecordResponse, error)
	PayAsOwner(ctx context.Context, callerID, id uuid.UUID) (*TaxRecordResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]TaxRecordResponse, error)
	ListAll(ctx context.Context, page, limit int, query string) ([]TaxRecordResponse, int64, error)
}

type taxService struct {
	records repository.TaxRecordRepository
	users   repository.UserRepository
	audits  repository.AuditLogRepository
	txMgr   repository.TransactionManager
	now     func() time.Time
}

// NewTaxService returns a new instance of TaxService
func NewTaxService(
	records repository.TaxRecordRepository,
	users repository.UserRepository,
	audits repository.AuditLogRepository,
	txMgr repository.TransactionManager,
) TaxService {
	return &taxService{records: records, users: users, audits: audits, txMgr: txMgr, now: time.Now}
}

// effectiveStatus derives overdue lazily from the due date; nothing is
// written back, the stored status stays pending until payment.
func effectiveStatus(record *model.TaxRecord, now time.Time) string {
	if record.Status == model.TaxStatusPending && record.DueDate.Before(now.Truncate(24*time.Hour)) {
		return model.TaxStatusOverdue
	}
	return record.Status
}

func (s *taxService) mapToResponse(record *model.TaxRecord) *TaxRecordResponse {
	res := &TaxRecordResponse{
		ID:              record.ID,
		UserID:          record.UserID,
		PropertyID:      record.PropertyID,
		PropertyAddress: record.PropertyAddress,
		TaxType:         record.TaxType,
		Amount:          record.Amount,
		DueDate:         record.DueDate.Format(dateLayout),
		FinancialYear:   record.FinancialYear,
		Status:          effectiveStatus(record, s.now()),
		CreatedAt:       record.CreatedAt.Format(time.RFC3339),
	}
	if record.PaidDate != nil {
		paid := record.PaidDate.Format(dateLayout)
		res.PaidDate = &paid
	}
	if record.User != nil {
		res.UserName = record.User.FullName
		res.AadharNumber = record.User.AadharNumber
	}
	return res
}

func (s *taxService) audit(ctx context.Context, actorID uuid.UUID, action string, record *model.TaxRecord) error {
	details, _ := json.Marshal(map[string]interface{}{
		"property_id":    record.PropertyID,
		"tax_type":       record.TaxType,
		"amount":         record.Amount,
		"financial_year": record.FinancialYear,
		"status":         record.Status,
	})
	actor := actorID
	return s.audits.Create(ctx, &model.AuditLog{
		UserID:     &actor,
		Action:     action,
		EntityID:   record.ID.String(),
		EntityName: record.PropertyID,
		Details:    string(details),
	})
}

// resolveEligiblePayer enforces the creation policy: the payer id must
// reference an existing, eligible profile. An existence query, not a
// string-shape check, so malformed and unknown ids fail identically.
func (s *taxService) resolveEligiblePayer(ctx context.Context, id string) (*model.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("user does not resolve to an eligible profile")
	}
	user, err := s.users.GetByID(ctx, uid.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("user does not resolve to an eligible profile")
		}
		return nil, apperr.Retrieval("failed to resolve user", err)
	}
	if !validation.EligibleProfile(user) {
		return nil, apperr.Validation("user profile is incomplete and cannot receive tax records")
	}
	return user, nil
}

func (s *taxService) Create(ctx context.Context, actorID uuid.UUID, req CreateTaxRecordRequest) (*TaxRecordResponse, error) {
	user, err := s.resolveEligiblePayer(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !validation.TaxTypeOK(req.TaxType) {
		return nil, apperr.Validation("unknown tax type")
	}
	if !req.Amount.IsPositive() {
		return nil, apperr.Validation("amount must be greater than zero")
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, apperr.Validation("due_date must be formatted as YYYY-MM-DD")
	}

	record := &model.TaxRecord{
		UserID:          user.ID,
		PropertyID:      req.PropertyID,
		PropertyAddress: req.PropertyAddress,
		TaxType:         req.TaxType,
		Amount:          req.Amount,
		DueDate:         dueDate,
		FinancialYear:   req.FinancialYear,
		Status:          model.TaxStatusPending,
	}

	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.records.Create(txCtx, record); err != nil {
			return err
		}
		return s.audit(txCtx, actorID, model.ActionCreateTaxRecord, record)
	})
	if err != nil {
		return nil, apperr.Retrieval("failed to create tax record", err)
	}

	return s.mapToResponse(record), nil
}

func (s *taxService) Update(ctx context.Context, actorID, id uuid.UUID, req UpdateTaxRecordRequest) (*TaxRecordResponse, error) {
	record, err := s.findRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PropertyID != "" {
		record.PropertyID = req.PropertyID
	}
	if req.PropertyAddress != nil {
		record.PropertyAddress = req.PropertyAddress
	}
	if req.TaxType != "" {
		if !validation.TaxTypeOK(req.TaxType) {
			return nil, apperr.Validation("unknown tax type")
		}
		record.TaxType = req.TaxType
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, apperr.Validation("amount must be greater than zero")
		}
		record.Amount = *req.Amount
	}
	if req.DueDate != "" {
		dueDate, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return nil, apperr.Validation("due_date must be formatted as YYYY-MM-DD")
		}
		record.DueDate = dueDate
	}
	if req.FinancialYear != "" {
		record.FinancialYear = req.FinancialYear
	}
	if req.Status != "" {
		switch req.Status {
		case model.TaxStatusPaid:
			if record.PaidDate == nil {
				paid := s.now()
				record.PaidDate = &paid
			}
		case model.TaxStatusPending:
			// Moving off paid clears the payment date so the
			// status/paid_date invariant holds.
			record.PaidDate = nil
		default:
			return nil, apperr.Validation("status must be pending or paid")
		}
		record.Status = req.Status
	}

	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.records.Update(txCtx, record); err != nil {
			return err
		}
		return s.audit(txCtx, actorID, model.ActionUpdateTaxRecord, record)
	})
	if err != nil {
		return nil, apperr.Retrieval("failed to update tax record", err)
	}

	return s.mapToResponse(record), nil
}

func (s *taxService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	record, err := s.findRecord(ctx, id)
	if err != nil {
		return err
	}

	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		rows, err := s.records.Delete(txCtx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return gorm.ErrRecordNotFound
		}
		return s.audit(txCtx, actorID, model.ActionDeleteTaxRecord, record)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("tax record not found")
		}
		return apperr.Retrieval("failed to delete tax record", err)
	}
	return nil
}

func (s *taxService) MarkPaid(ctx context.Context, actorID, id uuid.UUID) (*TaxRecordResponse, error) {
	return s.pay(ctx, actorID, id, model.ActionMarkTaxPaid, nil)
}

// PayAsOwner is the self-service variant of MarkPaid, restricted to records
// the caller owns.
func (s *taxService) PayAsOwner(ctx context.Context, callerID, id uuid.UUID) (*TaxRecordResponse, error) {
	return s.pay(ctx, callerID, id, model.ActionPayTaxRecord, &callerID)
}

func (s *taxService) pay(ctx context.Context, actorID, id uuid.UUID, action string, requiredOwner *uuid.UUID) (*TaxRecordResponse, error) {
	record, err := s.findRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if requiredOwner != nil && record.UserID != *requiredOwner {
		return nil, apperr.Forbidden("you can only pay your own tax records")
	}

	// Idempotent: a record already paid keeps its original paid date.
	if record.Status == model.TaxStatusPaid {
		return s.mapToResponse(record), nil
	}

	paid := s.now()
	record.Status = model.TaxStatusPaid
	record.PaidDate = &paid

	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.records.Update(txCtx, record); err != nil {
			return err
		}
		return s.audit(txCtx, actorID, action, record)
	})
	if err != nil {
		return nil, apperr.Retrieval("failed to mark tax record as paid", err)
	}

	return s.mapToResponse(record), nil
}

func (s *taxService) ListForUser(ctx context.Context, userID uuid.UUID) ([]TaxRecordResponse, error) {
	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Retrieval("failed to fetch tax records", err)
	}

	responses := make([]TaxRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *s.mapToResponse(&records[i]))
	}
	return responses, nil
}

func (s *taxService) ListAll(ctx context.Context, page, limit int, query string) ([]TaxRecordResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	records, total, err := s.records.ListAll(ctx, page, limit, query)
	if err != nil {
		return nil, 0, apperr.Retrieval("failed to fetch tax records", err)
	}

	responses := make([]TaxRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *s.mapToResponse(&records[i]))
	}
	return responses, total, nil
}

func (s *taxService) findRecord(ctx context.Context, id uuid.UUID) (*model.TaxRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tax record not found")
		}
		return nil, apperr.Retrieval("failed to fetch tax record", err)
	}
	return record, nil
}
