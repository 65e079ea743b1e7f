package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardAggregates(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ramesh@example.com", "123456789012")

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	paidDate := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	records := []model.TaxRecord{
		{
			UserID: user.ID, PropertyID: "P-1", TaxType: model.TaxTypeProperty,
			Amount: decimal.NewFromInt(1000), FinancialYear: "2024-25",
			DueDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			Status:  model.TaxStatusPaid, PaidDate: &paidDate,
		},
		{
			UserID: user.ID, PropertyID: "P-2", TaxType: model.TaxTypeWater,
			Amount: decimal.NewFromInt(500), FinancialYear: "2024-25",
			DueDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			Status:  model.TaxStatusPending,
		},
		{
			UserID: user.ID, PropertyID: "P-3", TaxType: model.TaxTypeSewerage,
			Amount: decimal.NewFromInt(750), FinancialYear: "2025-26",
			DueDate: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			Status:  model.TaxStatusPending,
		},
	}
	for i := range records {
		require.NoError(t, db.Create(&records[i]).Error)
	}

	complaints := []model.Complaint{
		{ComplaintID: "MZF20251", UserID: user.ID, UserName: user.FullName, UserEmail: user.Email,
			ComplaintType: model.ComplaintTypeGarbage, Description: "a", Status: model.ComplaintStatusSubmitted},
		{ComplaintID: "MZF20252", UserID: user.ID, UserName: user.FullName, UserEmail: user.Email,
			ComplaintType: model.ComplaintTypeRoad, Description: "b", Status: model.ComplaintStatusSubmitted},
		{ComplaintID: "MZF20253", UserID: user.ID, UserName: user.FullName, UserEmail: user.Email,
			ComplaintType: model.ComplaintTypeDrainage, Description: "c", Status: model.ComplaintStatusResolved},
	}
	for i := range complaints {
		require.NoError(t, db.Create(&complaints[i]).Error)
	}

	svc := NewStatisticsService(db).(*statisticsService)
	svc.now = func() time.Time { return now }

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.TaxRecords.Paid)
	assert.EqualValues(t, 1, stats.TaxRecords.Overdue)
	assert.EqualValues(t, 1, stats.TaxRecords.Pending)

	require.Len(t, stats.FinancialYears, 2)
	assert.Equal(t, "2024-25", stats.FinancialYears[0].FinancialYear)
	assert.True(t, decimal.NewFromInt(1000).Equal(stats.FinancialYears[0].Collected))
	assert.True(t, decimal.NewFromInt(500).Equal(stats.FinancialYears[0].Outstanding))
	assert.Equal(t, "2025-26", stats.FinancialYears[1].FinancialYear)
	assert.True(t, decimal.NewFromInt(750).Equal(stats.FinancialYears[1].Outstanding))

	assert.EqualValues(t, 2, stats.Complaints[model.ComplaintStatusSubmitted])
	assert.EqualValues(t, 1, stats.Complaints[model.ComplaintStatusResolved])
}

func TestDashboardEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatisticsService(db)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TaxRecords.Paid)
	assert.Zero(t, stats.TaxRecords.Pending)
	assert.Zero(t, stats.TaxRecords.Overdue)
	assert.Empty(t, stats.FinancialYears)
	assert.Empty(t, stats.Complaints)
}
