package shared

import (
	"net/http"
	"strconv"
	"strings"
)

type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit and offset; missing or malformed values fall back to the defaults.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	q := r.URL.Query()
	page := Pagination{
		Limit:  queryInt(q.Get("limit"), defaultLimit, 1),
		Offset: queryInt(q.Get("offset"), 0, 0),
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	return page
}

func queryInt(raw string, fallback, min int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < min {
		return fallback
	}
	return v
}
