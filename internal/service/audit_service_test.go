package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAuditLogs(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "admin@example.com", "999988887777")
	repo := repository.NewAuditLogRepository(db)
	svc := NewAuditService(repo)

	actor := user.ID
	require.NoError(t, repo.Create(context.Background(), &model.AuditLog{
		UserID:     &actor,
		Action:     model.ActionCreateTaxRecord,
		EntityID:   "abc",
		EntityName: "P-100",
		Details:    `{"tax_type":"Property Tax"}`,
	}))
	// System entries carry no actor.
	require.NoError(t, repo.Create(context.Background(), &model.AuditLog{
		Action:   model.ActionDeleteTaxRecord,
		EntityID: "def",
	}))

	logs, total, err := svc.GetAuditLogs(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, logs, 2)

	byAction := map[string]AuditLogResponse{}
	for _, l := range logs {
		byAction[l.Action] = l
	}
	assert.Equal(t, "Ramesh Kumar", byAction[model.ActionCreateTaxRecord].UserName)
	assert.Equal(t, user.ID.String(), byAction[model.ActionCreateTaxRecord].UserID)
	assert.Equal(t, "System", byAction[model.ActionDeleteTaxRecord].UserName)
	assert.Empty(t, byAction[model.ActionDeleteTaxRecord].UserID)
}

func TestCatalogListsServices(t *testing.T) {
	svc := NewCatalogService()
	entries := svc.ListServices()

	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Description)
		assert.NotEmpty(t, e.Category)
	}
}
