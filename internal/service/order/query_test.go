package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomiris95/orderdesk/internal/config"
	"github.com/Tomiris95/orderdesk/pkg/errorbank"
)

var testLimits = config.Listing{DefaultLimit: 10, MaxLimit: 100}

func TestParseListQuery_Valid(t *testing.T) {
	tests := []struct {
		name       string
		params     ListParams
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{
			name:       "defaults when everything is absent",
			params:     ListParams{},
			wantPage:   1,
			wantLimit:  10,
			wantOffset: 0,
		},
		{
			name:       "offset derives from page and limit",
			params:     ListParams{Page: "3", Limit: "20"},
			wantPage:   3,
			wantLimit:  20,
			wantOffset: 40,
		},
		{
			name:       "limit above the cap is clamped silently",
			params:     ListParams{Limit: "1000"},
			wantPage:   1,
			wantLimit:  100,
			wantOffset: 0,
		},
		{
			name:       "limit exactly at the cap is kept",
			params:     ListParams{Limit: "100"},
			wantPage:   1,
			wantLimit:  100,
			wantOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseListQuery(tt.params, testLimits)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantOffset, q.Offset)
		})
	}
}

func TestParseListQuery_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		params  ListParams
		wantMsg string
	}{
		{
			name:    "page zero",
			params:  ListParams{Page: "0"},
			wantMsg: "Page must be a positive integer",
		},
		{
			name:    "page negative",
			params:  ListParams{Page: "-2"},
			wantMsg: "Page must be a positive integer",
		},
		{
			name:    "page not an integer",
			params:  ListParams{Page: "abc"},
			wantMsg: "Page must be a positive integer",
		},
		{
			name:    "limit zero",
			params:  ListParams{Limit: "0"},
			wantMsg: "Limit must be a positive integer",
		},
		{
			name:    "limit not an integer",
			params:  ListParams{Limit: "ten"},
			wantMsg: "Limit must be a positive integer",
		},
		{
			name:    "unknown status",
			params:  ListParams{Status: "shipped"},
			wantMsg: "Invalid status. Must be: pending, completed, cancelled",
		},
		{
			name:    "negative minAmount",
			params:  ListParams{MinAmount: "-1"},
			wantMsg: "minAmount must be a positive number",
		},
		{
			name:    "non-numeric maxAmount",
			params:  ListParams{MaxAmount: "lots"},
			wantMsg: "maxAmount must be a positive number",
		},
		{
			name:    "NaN minAmount",
			params:  ListParams{MinAmount: "NaN"},
			wantMsg: "minAmount must be a positive number",
		},
		{
			name:    "min above max",
			params:  ListParams{MinAmount: "100", MaxAmount: "50"},
			wantMsg: "minAmount cannot be greater than maxAmount",
		},
		{
			name:    "slash-separated startDate",
			params:  ListParams{StartDate: "2024/01/01"},
			wantMsg: "startDate must be in YYYY-MM-DD format",
		},
		{
			name:    "impossible calendar date",
			params:  ListParams{StartDate: "2024-13-01"},
			wantMsg: "startDate must be in YYYY-MM-DD format",
		},
		{
			name:    "malformed endDate",
			params:  ListParams{EndDate: "Jan 1"},
			wantMsg: "endDate must be in YYYY-MM-DD format",
		},
		{
			name:    "start after end",
			params:  ListParams{StartDate: "2024-02-01", EndDate: "2024-01-01"},
			wantMsg: "startDate cannot be after endDate",
		},
		{
			name:    "first failing check wins",
			params:  ListParams{Page: "0", Limit: "0", Status: "bogus"},
			wantMsg: "Page must be a positive integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseListQuery(tt.params, testLimits)
			require.Error(t, err)
			assert.Nil(t, q)

			appErr := errorbank.From(err)
			assert.Equal(t, errorbank.KindBadRequest, appErr.Kind())
			assert.Equal(t, tt.wantMsg, appErr.Message())
		})
	}
}

func TestParseListQuery_Normalization(t *testing.T) {
	q, err := ParseListQuery(ListParams{
		Status:    "pending",
		MinAmount: "40",
		MaxAmount: "80",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	}, testLimits)
	require.NoError(t, err)

	assert.Equal(t, "pending", q.Status)
	require.NotNil(t, q.MinAmount)
	require.NotNil(t, q.MaxAmount)
	assert.Equal(t, 40.0, *q.MinAmount)
	assert.Equal(t, 80.0, *q.MaxAmount)

	// Date bounds become full UTC instants, raw form is kept for the echo.
	assert.Equal(t, "2024-01-01", q.StartDate)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", q.StartAt)
	assert.Equal(t, "2024-01-31", q.EndDate)
	assert.Equal(t, "2024-01-31T00:00:00.000Z", q.EndAt)
}

func TestParseListQuery_EqualBoundsAllowed(t *testing.T) {
	q, err := ParseListQuery(ListParams{
		MinAmount: "50",
		MaxAmount: "50",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-01",
	}, testLimits)
	require.NoError(t, err)
	assert.Equal(t, *q.MinAmount, *q.MaxAmount)
	assert.Equal(t, q.StartAt, q.EndAt)
}

func TestParseListQuery_ZeroAmountIsValid(t *testing.T) {
	q, err := ParseListQuery(ListParams{MinAmount: "0"}, testLimits)
	require.NoError(t, err)
	require.NotNil(t, q.MinAmount)
	assert.Zero(t, *q.MinAmount)
}
