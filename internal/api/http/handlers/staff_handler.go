package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-pos-service/internal/api/dto"
	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/repository"
	"github.com/spec-kit/salon-pos-service/internal/service"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// StaffHandler manages staff roster endpoints.
type StaffHandler struct {
	service *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{service: staffService}
}

// CreateStaff POST /staff.
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || req.Role == "" || req.PIN == "" {
		return apperrors.NewValidationError("name, role, pin required", nil)
	}

	staff, err := h.service.Create(c.UserContext(), service.StaffCreateInput{
		Name:     req.Name,
		Role:     domain.StaffRole(req.Role),
		PIN:      req.PIN,
		JobTitle: req.JobTitle,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": staffResponse(staff)})
}

// ListStaff GET /staff.
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	filter := parseStaffQuery(c)
	members, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.StaffResponse, 0, len(members))
	for i := range members {
		items = append(items, staffResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetStaff GET /staff/:id.
func (h *StaffHandler) GetStaff(c *fiber.Ctx) error {
	staff, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(staff)})
}

// UpdateStaff PUT /staff/:id.
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	var req dto.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.StaffUpdateInput{
		Name:     req.Name,
		PIN:      req.PIN,
		JobTitle: req.JobTitle,
		Active:   req.Active,
	}
	if req.Role != nil {
		role := domain.StaffRole(*req.Role)
		input.Role = &role
	}
	staff, err := h.service.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(staff)})
}

// DeleteStaff DELETE /staff/:id.
func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func parseStaffQuery(c *fiber.Ctx) repository.StaffFilter {
	filter := repository.StaffFilter{}
	if roleStr := c.Query("role"); roleStr != "" {
		role := domain.StaffRole(strings.ToUpper(strings.TrimSpace(roleStr)))
		filter.Role = &role
	}
	if clocked := parseBoolQuery(c.Query("clocked_in")); clocked != nil {
		filter.ClockedIn = clocked
	}
	if active := parseBoolQuery(c.Query("active")); active != nil {
		filter.Active = active
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseBoolQuery(val string) *bool {
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return nil
	}
	return &parsed
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func staffResponse(staff *domain.StaffMember) dto.StaffResponse {
	return dto.StaffResponse{
		ID:          staff.ID,
		Name:        staff.Name,
		Role:        string(staff.Role),
		JobTitle:    staff.JobTitle,
		IsClockedIn: staff.IsClockedIn,
		LastClockIn: staff.LastClockIn,
		Active:      staff.Active,
		CreatedAt:   staff.CreatedAt,
		UpdatedAt:   staff.UpdatedAt,
	}
}
