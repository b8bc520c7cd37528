package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskAccessDenied   = errors.New("no permission to access this task")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleEmpty         = errors.New("title cannot be empty")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrInvalidPriority    = errors.New("invalid priority value")
	ErrNoTaskIDsProvided  = errors.New("at least one task ID is required")
	ErrBulkDeleteRejected = errors.New("some tasks do not exist or cannot be deleted by this user")
)

// TaskService handles task business logic, including the ownership policy:
// a task may be read or modified by its owner or by an admin.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	Search   string
	// OwnerID narrows an admin's listing to a single owner; ignored for
	// non-privileged callers, who are always scoped to themselves.
	OwnerID  *uint64
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// UpdateTaskInput represents a partial update; nil fields are left unchanged.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
}

// canAccess applies the ownership policy for single-record operations.
func canAccess(actor Identity, ownerID uint64) bool {
	return actor.IsAdmin() || actor.UserID == ownerID
}

// ListTasks returns tasks visible to the actor. Scoping happens in the query,
// so non-privileged callers never see foreign records or their counts.
func (s *TaskService) ListTasks(actor Identity, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:   input.Status,
		Priority: input.Priority,
		Search:   input.Search,
		SortBy:   input.SortBy,
		SortDesc: input.SortDesc,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	if actor.IsAdmin() {
		filter.OwnerID = input.OwnerID
	} else {
		ownerID := actor.UserID
		filter.OwnerID = &ownerID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task if the actor owns it or is an admin.
//
// Existence is checked before ownership, so an authenticated caller probing a
// foreign id receives 403 rather than 404. This mirrors the established API
// behavior; see DESIGN.md.
func (s *TaskService) GetTask(actor Identity, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Owner")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !canAccess(actor, task.OwnerID) {
		return nil, ErrTaskAccessDenied
	}

	return task, nil
}

// CreateTask creates a new task owned by the actor.
func (s *TaskService) CreateTask(actor Identity, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	} else if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	} else if !models.ValidTaskPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		OwnerID:     actor.UserID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Owner")
}

// UpdateTask merges the patch into an existing task. The owner reference and
// creation timestamp are never touched; repeated application of the same
// patch yields the same state.
func (s *TaskService) UpdateTask(actor Identity, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !canAccess(actor, task.OwnerID) {
		return nil, ErrTaskAccessDenied
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Owner")
}

// DeleteTask removes a task if the actor owns it or is an admin.
func (s *TaskService) DeleteTask(actor Identity, taskID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if !canAccess(actor, task.OwnerID) {
		return ErrTaskAccessDenied
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// DeleteTasks removes a batch of tasks, all-or-nothing: if any id is missing
// or owned by someone else, the whole batch is rejected and nothing is deleted.
func (s *TaskService) DeleteTasks(actor Identity, taskIDs []uint64) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, ErrNoTaskIDsProvided
	}

	unique := make([]uint64, 0, len(taskIDs))
	seen := make(map[uint64]struct{}, len(taskIDs))
	for _, id := range taskIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	tasks, err := s.taskRepo.FindByIDs(unique)
	if err != nil {
		return 0, fmt.Errorf("failed to load tasks: %w", err)
	}

	if len(tasks) != len(unique) {
		return 0, ErrBulkDeleteRejected
	}
	for _, task := range tasks {
		if !canAccess(actor, task.OwnerID) {
			return 0, ErrBulkDeleteRejected
		}
	}

	deleted, err := s.taskRepo.DeleteMany(unique)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}

	return deleted, nil
}

// Statistics returns per-status counts for the actor's tasks; admins see
// counts across all owners.
func (s *TaskService) Statistics(actor Identity) (*repository.TaskStatistics, error) {
	var ownerID *uint64
	if !actor.IsAdmin() {
		id := actor.UserID
		ownerID = &id
	}

	stats, err := s.taskRepo.Statistics(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	return stats, nil
}
