package constants

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Standard Response Field Keys
const (
	ResponseFieldTotal   = "total"
	ResponseFieldData    = "data"
	ResponseFieldMessage = "message"
	ResponseFieldDetails = "details"
)

// Pagination defaults
const (
	QueryParamSkip  = "skip"
	QueryParamLimit = "limit"

	DefaultSkip  = 0
	DefaultLimit = 50
	MaxLimit     = 200
)

// PaginationParams carries skip/limit parsed from the query string.
type PaginationParams struct {
	Skip  int
	Limit int
}

// ParsePaginationParams parses skip/limit query parameters with defaults
// and clamping.
func ParsePaginationParams(c *gin.Context) PaginationParams {
	skip, err := strconv.Atoi(c.DefaultQuery(QueryParamSkip, strconv.Itoa(DefaultSkip)))
	if err != nil || skip < 0 {
		skip = DefaultSkip
	}

	limit, err := strconv.Atoi(c.DefaultQuery(QueryParamLimit, strconv.Itoa(DefaultLimit)))
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return PaginationParams{Skip: skip, Limit: limit}
}

// Response Format Functions
func BuildListResponse(total int64, data any) map[string]any {
	return map[string]any{
		ResponseFieldTotal: total,
		ResponseFieldData:  data,
	}
}

func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
	}

	if details != nil {
		response[ResponseFieldDetails] = details
	}

	return response
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
	}
}
