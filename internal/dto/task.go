package dto

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	OwnerID     uint64              `json:"owner_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Owner       *UserDTO            `json:"owner,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// BulkDeleteResponse reports how many tasks a batch delete removed
type BulkDeleteResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include owner if preloaded
	if task.Owner.ID != 0 {
		owner := ToUserDTO(task.Owner)
		dto.Owner = &owner
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, limit int, totalCount int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	totalPages := int(totalCount) / limit
	if int(totalCount)%limit > 0 {
		totalPages++
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
