package database

import (
	"gorm.io/gorm"
)

// Paginate applies page-based offset/limit to a GORM query
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 || pageSize < 1 {
			return db
		}
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}
