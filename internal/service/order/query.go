package order

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Tomiris95/orderdesk/internal/config"
	"github.com/Tomiris95/orderdesk/internal/entity"
	"github.com/Tomiris95/orderdesk/pkg/errorbank"
)

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const dateLayout = "2006-01-02"

// ListParams carries the raw, untrusted query-string values of a listing
// request. Empty string means the parameter was absent.
type ListParams struct {
	Page      string
	Limit     string
	Status    string
	MinAmount string
	MaxAmount string
	StartDate string
	EndDate   string
}

// ListQuery is the validated, normalized query descriptor built from
// ListParams. A ListQuery is only produced when every check passed; an
// invalid filter is never partially applied.
type ListQuery struct {
	Page   int
	Limit  int
	Offset int

	Status    string
	MinAmount *float64
	MaxAmount *float64

	// StartDate and EndDate keep the YYYY-MM-DD form for the filter
	// echo; StartAt and EndAt are the normalized instants compared
	// against stored created_at values.
	StartDate string
	EndDate   string
	StartAt   string
	EndAt     string
}

// ParseListQuery validates p in a fixed order and fails fast: the first
// failing check determines the single reported error. Limits above
// limits.MaxLimit are clamped silently rather than rejected.
func ParseListQuery(p ListParams, limits config.Listing) (*ListQuery, error) {
	q := &ListQuery{Page: 1, Limit: limits.DefaultLimit}

	if p.Page != "" {
		page, err := strconv.Atoi(strings.TrimSpace(p.Page))
		if err != nil || page < 1 {
			return nil, errorbank.BadRequest("Page must be a positive integer")
		}
		q.Page = page
	}

	if p.Limit != "" {
		limit, err := strconv.Atoi(strings.TrimSpace(p.Limit))
		if err != nil || limit < 1 {
			return nil, errorbank.BadRequest("Limit must be a positive integer")
		}
		q.Limit = limit
	}
	if q.Limit > limits.MaxLimit {
		q.Limit = limits.MaxLimit
	}

	if p.Status != "" {
		if !entity.ValidStatus(p.Status) {
			return nil, errorbank.BadRequest(fmt.Sprintf(
				"Invalid status. Must be: %s", strings.Join(entity.Statuses, ", ")))
		}
		q.Status = p.Status
	}

	if p.MinAmount != "" {
		v, err := parseAmount(p.MinAmount)
		if err != nil {
			return nil, errorbank.BadRequest("minAmount must be a positive number")
		}
		q.MinAmount = &v
	}
	if p.MaxAmount != "" {
		v, err := parseAmount(p.MaxAmount)
		if err != nil {
			return nil, errorbank.BadRequest("maxAmount must be a positive number")
		}
		q.MaxAmount = &v
	}
	if q.MinAmount != nil && q.MaxAmount != nil && *q.MinAmount > *q.MaxAmount {
		return nil, errorbank.BadRequest("minAmount cannot be greater than maxAmount")
	}

	var start, end time.Time
	if p.StartDate != "" {
		t, err := parseDate(p.StartDate)
		if err != nil {
			return nil, errorbank.BadRequest("startDate must be in YYYY-MM-DD format")
		}
		start = t
		q.StartDate = p.StartDate
		q.StartAt = entity.Timestamp(t)
	}
	if p.EndDate != "" {
		t, err := parseDate(p.EndDate)
		if err != nil {
			return nil, errorbank.BadRequest("endDate must be in YYYY-MM-DD format")
		}
		end = t
		q.EndDate = p.EndDate
		q.EndAt = entity.Timestamp(t)
	}
	if q.StartDate != "" && q.EndDate != "" && start.After(end) {
		return nil, errorbank.BadRequest("startDate cannot be after endDate")
	}

	q.Offset = (q.Page - 1) * q.Limit
	return q, nil
}

func parseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || v < 0 {
		return 0, fmt.Errorf("amount out of range: %s", raw)
	}
	return v, nil
}

func parseDate(raw string) (time.Time, error) {
	if !dateFormat.MatchString(raw) {
		return time.Time{}, fmt.Errorf("malformed date: %s", raw)
	}
	return time.Parse(dateLayout, raw)
}
