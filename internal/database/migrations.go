package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for owner-scoped listing and filtering
		{"tasks", "idx_tasks_owner_status", "owner_id, status"},
		{"tasks", "idx_tasks_priority", "priority"},
		{"tasks", "idx_tasks_due_date", "due_date"},

		// Participant indexes for owner-scoped listing
		{"participants", "idx_participants_owner_status", "owner_id, status"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
