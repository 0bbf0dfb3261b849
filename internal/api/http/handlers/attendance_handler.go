package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-pos-service/internal/api/dto"
	"github.com/spec-kit/salon-pos-service/internal/auth"
	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/repository"
	"github.com/spec-kit/salon-pos-service/internal/service"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// AttendanceHandler manages clock terminal scans and shift history.
type AttendanceHandler struct {
	clock   *service.ClockService
	reports *service.ReportService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(clockService *service.ClockService, reportService *service.ReportService) *AttendanceHandler {
	return &AttendanceHandler{clock: clockService, reports: reportService}
}

// Scan POST /attendance/scan. The caller scans the terminal's current QR
// token; their own clock state flips regardless of who else scanned it.
func (h *AttendanceHandler) Scan(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewUnauthorized("staff member required")
	}
	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Token) == "" {
		return apperrors.NewValidationError("token required", nil)
	}

	result, err := h.clock.ScanToggle(c.UserContext(), principal.Staff.ID, req.Token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toggleResponse(result)})
}

// ListRecords GET /attendance/records.
func (h *AttendanceHandler) ListRecords(c *fiber.Ctx) error {
	filter := parseAttendanceQuery(c)
	records, err := h.reports.AttendanceReport(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, attendanceRecordResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseAttendanceQuery(c *fiber.Ctx) repository.AttendanceFilter {
	filter := repository.AttendanceFilter{}
	if staffID := strings.TrimSpace(c.Query("staff_id")); staffID != "" {
		filter.StaffID = &staffID
	}
	if from := parseTime(c.Query("from")); from != nil {
		filter.From = from
	}
	if to := parseTime(c.Query("to")); to != nil {
		filter.To = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func toggleResponse(result *service.ToggleResult) dto.ToggleResponse {
	resp := dto.ToggleResponse{
		Status:  string(result.Status),
		Message: result.Message,
	}
	if result.Record != nil {
		record := attendanceRecordResponse(result.Record)
		resp.Record = &record
	}
	return resp
}

func attendanceRecordResponse(record *domain.AttendanceRecord) dto.AttendanceRecordResponse {
	return dto.AttendanceRecordResponse{
		ID:            record.ID,
		StaffID:       record.StaffID,
		StaffName:     record.StaffName,
		WorkDate:      record.WorkDate.Format("2006-01-02"),
		ClockIn:       record.ClockIn,
		ClockOut:      record.ClockOut,
		DurationHours: record.DurationHours,
	}
}
