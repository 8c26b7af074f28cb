package httputil

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"
)

// Pagination bounds for list endpoints.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type paginationQuery struct {
	Offset int `form:"offset,default=0" json:"offset"`
	Limit  int `form:"limit,default=50" json:"limit"`
}

func (q *paginationQuery) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.Offset, validation.Min(0)),
		validation.Field(&q.Limit, validation.Required, validation.Min(1), validation.Max(MaxLimit)),
	)
}

// ParsePagination reads ?offset= and ?limit= from the query string. Missing values take
// 0 and DefaultLimit; limit must lie in [1, MaxLimit].
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	var q paginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return 0, 0, errors.New("invalid pagination parameters: offset and limit must be integers")
	}

	if err := q.Validate(); err != nil {
		return 0, 0, fmt.Errorf("invalid pagination parameters: %w", err)
	}

	return q.Offset, q.Limit, nil
}
