package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination safely parses and validates skip and limit query parameters.
// It uses default values of 0 for skip and 10 for limit.
// The limit cannot exceed 100.
func ParsePagination(c *gin.Context) (skip, limit int, err error) {
	// Parse skip query parameter (default: 0)
	skipStr := c.DefaultQuery("skip", "0")
	skip, err = strconv.Atoi(skipStr)
	if err != nil || skip < 0 {
		return 0, 0, fmt.Errorf("invalid skip parameter: must be a non-negative integer")
	}

	// Parse limit query parameter (default: 10, max: 100)
	limitStr := c.DefaultQuery("limit", "10")
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and 100")
	}

	return skip, limit, nil
}

// PageNumber derives the 1-based page number from skip/limit values.
func PageNumber(skip, limit int) int {
	if limit <= 0 {
		return 1
	}
	return (skip / limit) + 1
}
