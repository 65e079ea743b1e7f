package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backend/internal/model"
	"backend/internal/notifier"
	"backend/internal/repository"
	"backend/pkg/apperr"
	"backend/pkg/tracking"
	"backend/pkg/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultComplaintPageSize = 5

// Broadcaster pushes realtime events to connected admin dashboards.
// Implemented by the websocket hub; safe to leave nil in tests.
type Broadcaster interface {
	BroadcastJSON(event string, payload interface{})
}

// DTOs for request validation
type SubmitComplaintRequest struct {
	ComplaintType string  `json:"complaint_type" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Location      *string `json:"location"`
}

type ComplaintResponse struct {
	ComplaintID   string  `json:"complaint_id"`
	ComplaintType string  `json:"complaint_type"`
	Description   string  `json:"description"`
	Location      *string `json:"location,omitempty"`
	Status        string  `json:"status"`
	UserName      string  `json:"user_name"`
	CreatedAt     string  `json:"created_at"`
}

// ComplaintService handles complaint intake and retrieval. Status changes
// are an admin/back-office concern and are not exposed to citizens.
type ComplaintService interface {
	Submit(ctx context.Context, userID uuid.UUID, req SubmitComplaintRequest) (*ComplaintResponse, error)
	TrackByCode(ctx context.Context, code string) (*ComplaintResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]ComplaintResponse, error)
}

type complaintService struct {
	complaints repository.ComplaintRepository
	users      repository.UserRepository
	audits     repository.AuditLogRepository
	txMgr      repository.TransactionManager
	dispatcher notifier.Dispatcher
	realtime   Broadcaster
	logger     *zap.Logger
	now        func() time.Time
}

// NewComplaintService returns a new instance of ComplaintService
func NewComplaintService(
	complaints repository.ComplaintRepository,
	users repository.UserRepository,
	audits repository.AuditLogRepository,
	txMgr repository.TransactionManager,
	dispatcher notifier.Dispatcher,
	realtime Broadcaster,
	logger *zap.Logger,
) ComplaintService {
	return &complaintService{
		complaints: complaints,
		users:      users,
		audits:     audits,
		txMgr:      txMgr,
		dispatcher: dispatcher,
		realtime:   realtime,
		logger:     logger,
		now:        time.Now,
	}
}

func mapToComplaintResponse(c *model.Complaint) *ComplaintResponse {
	return &ComplaintResponse{
		ComplaintID:   c.ComplaintID,
		ComplaintType: c.ComplaintType,
		Description:   c.Description,
		Location:      c.Location,
		Status:        c.Status,
		UserName:      c.UserName,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}

// Submit persists the complaint with a fresh tracking code and a snapshot of
// the submitter's contact details, then kicks off best-effort side effects:
// the email notification and the admin realtime feed. Neither can fail the
// submission.
func (s *complaintService) Submit(ctx context.Context, userID uuid.UUID, req SubmitComplaintRequest) (*ComplaintResponse, error) {
	if !validation.ComplaintTypeOK(req.ComplaintType) {
		return nil, apperr.Validation("unknown complaint type")
	}

	user, err := s.users.GetByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Retrieval("failed to resolve submitter", err)
	}

	complaint := &model.Complaint{
		ComplaintID:   tracking.NewCode(s.now()),
		UserID:        user.ID,
		UserName:      user.FullName,
		UserEmail:     user.Email,
		UserPhone:     user.Phone,
		ComplaintType: req.ComplaintType,
		Description:   req.Description,
		Location:      req.Location,
		Status:        model.ComplaintStatusSubmitted,
	}

	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.complaints.Create(txCtx, complaint); err != nil {
			return err
		}
		details, _ := json.Marshal(map[string]string{
			"complaint_id":   complaint.ComplaintID,
			"complaint_type": complaint.ComplaintType,
		})
		actor := user.ID
		return s.audits.Create(txCtx, &model.AuditLog{
			UserID:     &actor,
			Action:     model.ActionSubmitComplaint,
			EntityID:   complaint.ComplaintID,
			EntityName: complaint.ComplaintType,
			Details:    string(details),
		})
	})
	if err != nil {
		return nil, apperr.Retrieval("failed to submit complaint", err)
	}

	s.notify(complaint, user)

	return mapToComplaintResponse(complaint), nil
}

func (s *complaintService) notify(complaint *model.Complaint, user *model.User) {
	if s.dispatcher != nil {
		accepted := s.dispatcher.Enqueue(notifier.ComplaintNotification{
			Complaint: *complaint,
			UserDetails: notifier.UserDetails{
				Name:  user.FullName,
				Email: user.Email,
				Phone: user.Phone,
			},
		})
		if !accepted {
			s.logger.Warn("complaint notification dropped",
				zap.String("complaint_id", complaint.ComplaintID))
		}
	}

	if s.realtime != nil {
		s.realtime.BroadcastJSON("complaint_submitted", mapToComplaintResponse(complaint))
	}
}

// TrackByCode is the unauthenticated exact-match lookup behind the public
// tracker screen.
func (s *complaintService) TrackByCode(ctx context.Context, code string) (*ComplaintResponse, error) {
	complaint, err := s.complaints.GetByTrackingCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no complaint found with this tracking ID")
		}
		return nil, apperr.Retrieval("failed to look up complaint", err)
	}
	return mapToComplaintResponse(complaint), nil
}

func (s *complaintService) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]ComplaintResponse, error) {
	if limit < 1 || limit > defaultComplaintPageSize {
		limit = defaultComplaintPageSize
	}

	complaints, err := s.complaints.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperr.Retrieval("failed to fetch complaints", err)
	}

	responses := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		responses = append(responses, *mapToComplaintResponse(&complaints[i]))
	}
	return responses, nil
}
