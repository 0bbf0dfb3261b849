package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/repository"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// ReportService assembles the management dashboard: sales analytics, low
// stock alerts, and the attendance report.
type ReportService struct {
	reports    repository.ReportRepository
	products   repository.ProductRepository
	attendance repository.AttendanceRepository
	logger     *zap.Logger
}

// ReportDependencies bundles requirements for the report service.
type ReportDependencies struct {
	ReportRepo     repository.ReportRepository
	ProductRepo    repository.ProductRepository
	AttendanceRepo repository.AttendanceRepository
	Logger         *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		reports:    deps.ReportRepo,
		products:   deps.ProductRepo,
		attendance: deps.AttendanceRepo,
		logger:     deps.Logger,
	}
}

// Overview is the dashboard's top-level view over a date range.
type Overview struct {
	Summary           repository.SalesSummary
	RevenueByCategory []repository.CategoryRevenue
	RevenueByStaff    []repository.StaffRevenue
	TopSellers        []repository.ItemSales
	LowStock          []domain.Product
}

// Overview aggregates sales and inventory health over [from, to].
func (s *ReportService) Overview(ctx context.Context, from, to time.Time) (*Overview, error) {
	summary, err := s.reports.Summary(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to summarize sales", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	byCategory, err := s.reports.RevenueByCategory(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to aggregate revenue by category", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	byStaff, err := s.reports.RevenueByStaff(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to aggregate revenue by staff", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	topSellers, err := s.reports.TopSellers(ctx, from, to, 10)
	if err != nil {
		s.logger.Error("failed to rank top sellers", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	lowStock, err := s.products.ListLowStock(ctx)
	if err != nil {
		s.logger.Error("failed to list low stock", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	return &Overview{
		Summary:           *summary,
		RevenueByCategory: byCategory,
		RevenueByStaff:    byStaff,
		TopSellers:        topSellers,
		LowStock:          lowStock,
	}, nil
}

// AttendanceReport lists ledger entries over a range, newest shift first.
func (s *ReportService) AttendanceReport(ctx context.Context, filter repository.AttendanceFilter) ([]domain.AttendanceRecord, error) {
	records, err := s.attendance.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list attendance", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return records, nil
}
