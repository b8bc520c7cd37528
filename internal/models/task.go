package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'todo';index" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	OwnerID     uint64       `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// ValidTaskStatus reports whether s is one of the accepted status values.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ValidTaskPriority reports whether p is one of the accepted priority values.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}
