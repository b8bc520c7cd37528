package repository

import (
	"github.com/taskboard/taskboard-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create persists a new user. The store's unique index on email is the
	// authoritative duplicate check; violations surface as ErrDuplicateEmail.
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	// OwnerID scopes the query to a single owner. Nil means unscoped and is
	// only ever set for privileged callers.
	OwnerID  *uint64
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

// TaskStatistics holds per-status task counts for one owner (or all owners).
type TaskStatistics struct {
	Total      int64 `json:"total"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindByIDs finds all tasks whose ID is in ids
	FindByIDs(ids []uint64) ([]models.Task, error)

	// List retrieves tasks with filtering and pagination, plus the total count
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id uint64) error

	// DeleteMany removes all tasks in ids within a single transaction
	DeleteMany(ids []uint64) (int64, error)

	// Statistics returns per-status counts, scoped to ownerID unless nil
	Statistics(ownerID *uint64) (*TaskStatistics, error)
}

// ParticipantFilter holds filtering options for listing participants
type ParticipantFilter struct {
	OwnerID  *uint64
	Status   *models.ParticipantStatus
	Interest string
	Search   string
	Page     int
	PageSize int
}

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	// Create creates a new participant record
	Create(participant *models.Participant) error

	// FindByID finds a participant by ID
	FindByID(id uint64) (*models.Participant, error)

	// FindByEmail finds a participant by email
	FindByEmail(email string) (*models.Participant, error)

	// List retrieves participants with filtering and pagination
	List(filter ParticipantFilter) ([]models.Participant, int64, error)

	// Update updates a participant record
	Update(participant *models.Participant) error

	// Delete removes a participant record
	Delete(id uint64) error
}
