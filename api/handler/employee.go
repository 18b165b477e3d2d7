package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/pkg/httpcontext"
	employeeUC "github.com/taskhive/backend/usecase/employee"
)

type EmployeeHandler struct {
	baseHandler
	uc *employeeUC.UseCase
}

func NewEmployeeHandler(uc *employeeUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List all employees
// @Tags employees
// @Router /api/employees [get]
func (h *EmployeeHandler) ListEmployees(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	employees, err := h.uc.ListEmployees(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	h.respondJSON(ctx, http.StatusOK, employees)
}

// @Summary Create an employee
// @Tags employees
// @Router /api/employees [post]
func (h *EmployeeHandler) CreateEmployee(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	var req transport.EmployeeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondMessage(ctx, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	employee, err := h.uc.CreateEmployee(stdCtx, &domain.Employee{
		Name:       req.Name,
		Position:   req.Position,
		Email:      req.Email,
		Department: req.Department,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, employee)
}
