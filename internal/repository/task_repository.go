package repository

import (
	"github.com/taskboard/taskboard-api/internal/database"
	"github.com/taskboard/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// taskSortColumns whitelists the columns a caller may sort by.
var taskSortColumns = map[string]string{
	"created_at": "tasks.created_at",
	"updated_at": "tasks.updated_at",
	"due_date":   "tasks.due_date",
	"title":      "tasks.title",
	"priority":   "tasks.priority",
	"status":     "tasks.status",
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindByIDs finds all tasks whose ID is in ids
func (r *GormTaskRepository) FindByIDs(ids []uint64) ([]models.Task, error) {
	var tasks []models.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	// Owner scoping happens here, at the query level, so non-privileged
	// callers never observe the existence of foreign records.
	if filter.OwnerID != nil {
		query = query.Where("tasks.owner_id = ?", *filter.OwnerID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			`LOWER(tasks.title) LIKE ? ESCAPE '\' OR LOWER(tasks.description) LIKE ? ESCAPE '\'`,
			pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := taskSortColumns[filter.SortBy]
	if !ok {
		column = "tasks.created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	err := query.
		Order(column + " " + direction).
		Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Preload("Owner").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// DeleteMany removes all tasks in ids within a single transaction. Ownership
// of the full batch is checked by the service layer before this is called.
func (r *GormTaskRepository) DeleteMany(ids []uint64) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id IN ?", ids).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

// Statistics returns per-status counts, scoped to ownerID unless nil
func (r *GormTaskRepository) Statistics(ownerID *uint64) (*TaskStatistics, error) {
	type statusCount struct {
		Status models.TaskStatus
		Count  int64
	}

	query := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Group("status")
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}

	var rows []statusCount
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	stats := &TaskStatistics{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.TaskStatusTodo:
			stats.Todo = row.Count
		case models.TaskStatusInProgress:
			stats.InProgress = row.Count
		case models.TaskStatusCompleted:
			stats.Completed = row.Count
		}
	}

	return stats, nil
}
