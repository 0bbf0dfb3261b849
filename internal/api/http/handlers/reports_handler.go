package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-pos-service/internal/api/dto"
	"github.com/spec-kit/salon-pos-service/internal/service"
)

// ReportsHandler serves manager-facing sales and attendance summaries.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// Overview GET /reports/overview. Defaults to the trailing 30 days when no
// range is given.
func (h *ReportsHandler) Overview(c *fiber.Ctx) error {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now
	if parsed := parseTime(c.Query("from")); parsed != nil {
		from = *parsed
	}
	if parsed := parseTime(c.Query("to")); parsed != nil {
		to = *parsed
	}

	overview, err := h.service.Overview(c.UserContext(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": overviewResponse(overview)})
}

// Attendance GET /reports/attendance.
func (h *ReportsHandler) Attendance(c *fiber.Ctx) error {
	filter := parseAttendanceQuery(c)
	records, err := h.service.AttendanceReport(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, attendanceRecordResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func overviewResponse(overview *service.Overview) dto.OverviewResponse {
	categories := make([]dto.CategoryRevenueResponse, 0, len(overview.RevenueByCategory))
	for _, row := range overview.RevenueByCategory {
		categories = append(categories, dto.CategoryRevenueResponse{
			Category: string(row.Category),
			Revenue:  row.Revenue,
		})
	}
	staff := make([]dto.StaffRevenueResponse, 0, len(overview.RevenueByStaff))
	for _, row := range overview.RevenueByStaff {
		staff = append(staff, dto.StaffRevenueResponse{
			StaffID:   row.StaffID,
			StaffName: row.StaffName,
			Revenue:   row.Revenue,
		})
	}
	sellers := make([]dto.ItemSalesResponse, 0, len(overview.TopSellers))
	for _, row := range overview.TopSellers {
		sellers = append(sellers, dto.ItemSalesResponse{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			UnitsSold:   row.UnitsSold,
			Revenue:     row.Revenue,
		})
	}
	lowStock := make([]dto.ProductResponse, 0, len(overview.LowStock))
	for i := range overview.LowStock {
		lowStock = append(lowStock, productResponse(&overview.LowStock[i]))
	}
	return dto.OverviewResponse{
		TotalRevenue:      overview.Summary.TotalRevenue,
		TransactionCount:  overview.Summary.TransactionCount,
		RevenueByCategory: categories,
		RevenueByStaff:    staff,
		TopSellers:        sellers,
		LowStock:          lowStock,
	}
}
