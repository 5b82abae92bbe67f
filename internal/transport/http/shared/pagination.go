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

// ParsePagination reads limit and offset. Malformed or negative values are
// reported as issues; a limit above maxLimit is clamped.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) (Pagination, []ValidationIssue) {
	page := Pagination{Limit: defaultLimit}
	var issues []ValidationIssue

	query := r.URL.Query()
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			issues = append(issues, ValidationIssue{Field: "limit", Reason: "must be a positive integer"})
		} else {
			page.Limit = v
		}
	}
	if raw := strings.TrimSpace(query.Get("offset")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			issues = append(issues, ValidationIssue{Field: "offset", Reason: "must be a non-negative integer"})
		} else {
			page.Offset = v
		}
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	return page, issues
}
