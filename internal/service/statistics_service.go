package service

import (
	"context"
	"time"

	"backend/internal/model"
	"backend/pkg/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxStatusCounts reports ledger rows by effective status; overdue is the
// slice of pending records whose due date has elapsed.
type TaxStatusCounts struct {
	Pending int64 `json:"pending"`
	Overdue int64 `json:"overdue"`
	Paid    int64 `json:"paid"`
}

// FinancialYearSummary aggregates amounts for one fiscal-year label.
type FinancialYearSummary struct {
	FinancialYear string          `json:"financial_year"`
	Collected     decimal.Decimal `json:"collected"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// DashboardStatistics is the admin dashboard payload.
type DashboardStatistics struct {
	TaxRecords     TaxStatusCounts        `json:"tax_records"`
	FinancialYears []FinancialYearSummary `json:"financial_years"`
	Complaints     map[string]int64       `json:"complaints"`
}

type StatisticsService interface {
	Dashboard(ctx context.Context) (*DashboardStatistics, error)
}

type statisticsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStatisticsService creates a new StatisticsService instance
func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db, now: time.Now}
}

func (s *statisticsService) Dashboard(ctx context.Context) (*DashboardStatistics, error) {
	stats := &DashboardStatistics{Complaints: map[string]int64{}}
	today := s.now().Truncate(24 * time.Hour)

	db := s.db.WithContext(ctx)

	if err := db.Model(&model.TaxRecord{}).
		Where("status = ?", model.TaxStatusPaid).
		Count(&stats.TaxRecords.Paid).Error; err != nil {
		return nil, apperr.Retrieval("failed to aggregate tax records", err)
	}
	if err := db.Model(&model.TaxRecord{}).
		Where("status = ? AND due_date < ?", model.TaxStatusPending, today).
		Count(&stats.TaxRecords.Overdue).Error; err != nil {
		return nil, apperr.Retrieval("failed to aggregate tax records", err)
	}
	if err := db.Model(&model.TaxRecord{}).
		Where("status = ? AND due_date >= ?", model.TaxStatusPending, today).
		Count(&stats.TaxRecords.Pending).Error; err != nil {
		return nil, apperr.Retrieval("failed to aggregate tax records", err)
	}

	type yearRow struct {
		FinancialYear string
		Status        string
		Total         decimal.Decimal
	}
	var yearRows []yearRow
	if err := db.Model(&model.TaxRecord{}).
		Select("financial_year, status, sum(amount) as total").
		Group("financial_year, status").
		Order("financial_year").
		Scan(&yearRows).Error; err != nil {
		return nil, apperr.Retrieval("failed to aggregate financial years", err)
	}

	byYear := map[string]*FinancialYearSummary{}
	order := []string{}
	for _, row := range yearRows {
		summary, ok := byYear[row.FinancialYear]
		if !ok {
			summary = &FinancialYearSummary{
				FinancialYear: row.FinancialYear,
				Collected:     decimal.Zero,
				Outstanding:   decimal.Zero,
			}
			byYear[row.FinancialYear] = summary
			order = append(order, row.FinancialYear)
		}
		if row.Status == model.TaxStatusPaid {
			summary.Collected = summary.Collected.Add(row.Total)
		} else {
			summary.Outstanding = summary.Outstanding.Add(row.Total)
		}
	}
	for _, year := range order {
		stats.FinancialYears = append(stats.FinancialYears, *byYear[year])
	}

	type statusRow struct {
		Status string
		Count  int64
	}
	var statusRows []statusRow
	if err := db.Model(&model.Complaint{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return nil, apperr.Retrieval("failed to aggregate complaints", err)
	}
	for _, row := range statusRows {
		stats.Complaints[row.Status] = row.Count
	}

	return stats, nil
}
