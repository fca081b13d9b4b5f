package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"ecommerce-backend/internal/pagination"
)

// parseWindow reads the limit and offset query parameters, applying the
// defaults when absent. Non-numeric values, limit < 1 and offset < 0 are
// rejected.
func parseWindow(r *http.Request) (offset, limit int, err error) {
	offset = pagination.DefaultOffset
	limit = pagination.DefaultLimit

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter: %s", raw)
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, fmt.Errorf("invalid limit parameter: %s", raw)
		}
	}

	return offset, limit, nil
}
