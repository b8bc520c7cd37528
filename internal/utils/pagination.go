package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page  int
	Limit int
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}
