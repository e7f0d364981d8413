package helpers

import (
	"net/http"
	"strconv"

	"seatbooking/internal/domain"
)

// ParseLimit reads the limit query parameter. A missing or non-integer value yields def.
// Zero and negative values are passed through.
func ParseLimit(r *http.Request, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return def
	}
	return v
}

// ParsePeriod reads the period query parameter, defaulting to month.
func ParsePeriod(r *http.Request) (domain.Period, error) {
	s := r.URL.Query().Get("period")
	if s == "" {
		return domain.PeriodMonth, nil
	}
	return domain.ParsePeriod(s)
}

// PathID parses the named path value as a positive integer id.
func PathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
