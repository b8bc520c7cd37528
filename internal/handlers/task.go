package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/services"
	"github.com/taskboard/taskboard-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns a page of tasks visible to the caller.
// Filters: status, priority, search; sorting via sort_by/sort_order; admins
// may additionally narrow to one owner with the owner parameter.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)
	search := c.Query("search")
	if search == "" {
		search = c.Query("q")
	}
	input := services.ListTasksInput{
		Search:   search,
		SortBy:   c.DefaultQuery("sort_by", "created_at"),
		SortDesc: c.DefaultQuery("sort_order", "desc") != "asc",
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		if !models.ValidTaskStatus(status) {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		priority := models.TaskPriority(priorityStr)
		if !models.ValidTaskPriority(priority) {
			apierrors.BadRequest(c, "Invalid priority filter")
			return
		}
		input.Priority = &priority
	}
	if ownerStr := c.Query("owner"); ownerStr != "" {
		ownerID, err := strconv.ParseUint(ownerStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid owner filter")
			return
		}
		input.OwnerID = &ownerID
	}

	tasks, total, err := h.taskService.ListTasks(identity, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a single task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(identity, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task owned by the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		Status      models.TaskStatus   `json:"status"`
		Priority    models.TaskPriority `json:"priority"`
		DueDate     *time.Time          `json:"due_date"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(identity, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to an existing task. Owner and
// creation time are never patchable; a due_date of JSON null clears it.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Status      *models.TaskStatus   `json:"status"`
		Priority    *models.TaskPriority `json:"priority"`
		DueDate     *time.Time           `json:"due_date"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	// Re-read the cached body as a raw map to tell an absent due_date apart
	// from an explicit null.
	var raw map[string]any
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	_, dueDateSent := raw["due_date"]

	task, err := h.taskService.UpdateTask(identity, taskID, services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		ClearDueDate: dueDateSent && req.DueDate == nil,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a single task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(identity, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// BulkDeleteTasks removes a batch of tasks, all-or-nothing.
func (h *TaskHandler) BulkDeleteTasks(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type BulkDeleteRequest struct {
		TaskIDs []uint64 `json:"task_ids" binding:"required"`
	}

	var req BulkDeleteRequest
	if !bindJSON(c, &req) {
		return
	}

	deleted, err := h.taskService.DeleteTasks(identity, req.TaskIDs)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BulkDeleteResponse{DeletedCount: deleted})
}

// Statistics returns per-status task counts for the caller.
func (h *TaskHandler) Statistics(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.taskService.Statistics(identity)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskAccessDenied),
		errors.Is(err, services.ErrBulkDeleteRejected):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrNoTaskIDsProvided):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
