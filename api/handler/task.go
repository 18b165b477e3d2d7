package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/pkg/httpcontext"
	"github.com/taskhive/backend/repository"
	taskUC "github.com/taskhive/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List the caller's tasks
// @Tags tasks
// @Router /api/tasks [get]
func (h *TaskHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	filter := repository.TaskFilter{
		AssignedBy: userID,
		Status:     domain.TaskStatus(ctx.QueryArgs().Peek("status")),
		AssignedTo: string(ctx.QueryArgs().Peek("assignedTo")),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondJSON(ctx, http.StatusOK, tasks)
}

// @Summary Create a task
// @Tags tasks
// @Router /api/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondMessage(ctx, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}
	dueDate, err := req.ParseDueDate()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.CreateTask(stdCtx, &domain.Task{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedTo,
		AssignedBy:   userID,
		DueDate:      dueDate,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, task)
}

// @Summary Update a task's status
// @Tags tasks
// @Router /api/tasks/{id} [patch]
func (h *TaskHandler) UpdateTaskStatus(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondMessage(ctx, http.StatusBadRequest, "missing task id")
		return
	}

	var req transport.TaskStatusRequest
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

	task, err := h.uc.UpdateTaskStatus(stdCtx, id, domain.TaskStatus(req.Status))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}
