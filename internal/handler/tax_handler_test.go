package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTaxService struct {
	listAllCalled bool
	forUser       []service.TaxRecordResponse
}

func (s *stubTaxService) Create(ctx context.Context, actorID uuid.UUID, req service.CreateTaxRecordRequest) (*service.TaxRecordResponse, error) {
	return &service.TaxRecordResponse{ID: uuid.New(), Status: model.TaxStatusPending}, nil
}

func (s *stubTaxService) Update(ctx context.Context, actorID, id uuid.UUID, req service.UpdateTaxRecordRequest) (*service.TaxRecordResponse, error) {
	return nil, apperr.NotFound("tax record not found")
}

func (s *stubTaxService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	return nil
}

func (s *stubTaxService) MarkPaid(ctx context.Context, actorID, id uuid.UUID) (*service.TaxRecordResponse, error) {
	return &service.TaxRecordResponse{ID: id, Status: model.TaxStatusPaid}, nil
}

func (s *stubTaxService) PayAsOwner(ctx context.Context, callerID, id uuid.UUID) (*service.TaxRecordResponse, error) {
	return nil, apperr.Forbidden("you can only pay your own tax records")
}

func (s *stubTaxService) ListForUser(ctx context.Context, userID uuid.UUID) ([]service.TaxRecordResponse, error) {
	return s.forUser, nil
}

func (s *stubTaxService) ListAll(ctx context.Context, page, limit int, query string) ([]service.TaxRecordResponse, int64, error) {
	s.listAllCalled = true
	return nil, 0, nil
}

func newTaxRouter(stub *stubTaxService) *gin.Engine {
	router := gin.New()
	NewTaxHandler(stub).RegisterRoutes(router.Group(""))
	return router
}

func TestTaxRoutesAuthorization(t *testing.T) {
	stub := &stubTaxService{}
	router := newTaxRouter(stub)
	citizen := signToken(t, uuid.New(), model.RoleCitizen)
	admin := signToken(t, uuid.New(), model.RoleAdmin)

	t.Run("no token", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/tax-records", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, stub.listAllCalled)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/tax-records", "not.a.jwt", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("citizen cannot read the full ledger", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/tax-records", citizen, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, stub.listAllCalled)
	})

	t.Run("citizen cannot create records", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/tax-records", citizen, `{}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin reads the full ledger", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/tax-records", admin, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, stub.listAllCalled)
	})

	t.Run("citizen reads own records", func(t *testing.T) {
		stub.forUser = []service.TaxRecordResponse{{ID: uuid.New(), Status: model.TaxStatusPending}}
		w := doRequest(router, http.MethodGet, "/tax-records/my", citizen, "")
		assert.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Status string                      `json:"status"`
			Data   []service.TaxRecordResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "success", res.Status)
		assert.Len(t, res.Data, 1)
	})
}

func TestPayRecordErrors(t *testing.T) {
	router := newTaxRouter(&stubTaxService{})
	citizen := signToken(t, uuid.New(), model.RoleCitizen)

	t.Run("foreign record", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/tax-records/"+uuid.NewString()+"/pay", citizen, "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		var res struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "error", res.Status)
		assert.Equal(t, "you can only pay your own tax records", res.Error)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/tax-records/not-a-uuid/pay", citizen, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateRecordValidatesPayload(t *testing.T) {
	router := newTaxRouter(&stubTaxService{})
	admin := signToken(t, uuid.New(), model.RoleAdmin)

	w := doRequest(router, http.MethodPost, "/tax-records", admin, `{"property_id":"P-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload := `{"user_id":"` + uuid.NewString() + `","property_id":"P-1","tax_type":"Property Tax","amount":"1500","due_date":"2025-03-31","financial_year":"2024-25"}`
	w = doRequest(router, http.MethodPost, "/tax-records", admin, payload)
	assert.Equal(t, http.StatusCreated, w.Code)
}
