package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomiris95/orderdesk/internal/dto"
	"github.com/Tomiris95/orderdesk/internal/entity"
	service "github.com/Tomiris95/orderdesk/internal/service/order"
	"github.com/Tomiris95/orderdesk/pkg/errorbank"
)

type stubService struct {
	createErr  error
	listResp   *dto.OrderListResponse
	listErr    error
	lastParams service.ListParams
}

func (s *stubService) Create(_ context.Context, order *entity.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	order.ID = 1
	if order.CreatedAt == "" {
		order.CreatedAt = "2024-06-01T12:00:00.000Z"
	}
	return nil
}

func (s *stubService) List(_ context.Context, params service.ListParams) (*dto.OrderListResponse, error) {
	s.lastParams = params
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listResp, nil
}

func newRequestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
		wantError  string
	}{
		{
			name:       "success",
			body:       `{"customer":"Alice","amount":123.45,"status":"pending"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing customer",
			body:       `{"amount":10,"status":"pending"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid payload",
		},
		{
			name:       "missing amount",
			body:       `{"customer":"Alice","status":"pending"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid payload",
		},
		{
			name:       "amount of the wrong type",
			body:       `{"customer":"Alice","amount":"x","status":"pending"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid payload",
		},
		{
			name:       "empty status",
			body:       `{"customer":"Alice","amount":10,"status":""}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid payload",
		},
		{
			name:       "store failure stays opaque",
			body:       `{"customer":"Alice","amount":10,"status":"pending"}`,
			createErr:  errorbank.Internal("failed to create order"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{svc: &stubService{createErr: tt.createErr}}
			c, rec := newRequestContext(t, http.MethodPost, "/orders", tt.body)

			require.NoError(t, h.create(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantError != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

func TestHandler_Create_ReturnsRecord(t *testing.T) {
	h := &Handler{svc: &stubService{}}
	c, rec := newRequestContext(t, http.MethodPost, "/orders", `{"customer":"Alice","amount":123.45,"status":"pending"}`)

	require.NoError(t, h.create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Alice", got.Customer)
	assert.Equal(t, 123.45, got.Amount)
	assert.Equal(t, "pending", got.Status)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestHandler_List(t *testing.T) {
	envelope := &dto.OrderListResponse{
		Data: []dto.OrderResponse{{ID: 1, Customer: "A", Amount: 10, Status: "pending", CreatedAt: "2024-01-01T00:00:00.000Z"}},
		Metadata: dto.ListMetadata{
			Pagination: dto.Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1},
		},
	}

	t.Run("forwards every query parameter", func(t *testing.T) {
		stub := &stubService{listResp: envelope}
		h := &Handler{svc: stub}
		c, rec := newRequestContext(t, http.MethodGet,
			"/orders?page=2&limit=5&status=pending&minAmount=1&maxAmount=9&startDate=2024-01-01&endDate=2024-01-31", "")

		require.NoError(t, h.list(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, service.ListParams{
			Page:      "2",
			Limit:     "5",
			Status:    "pending",
			MinAmount: "1",
			MaxAmount: "9",
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
		}, stub.lastParams)
	})

	t.Run("renders the envelope untouched", func(t *testing.T) {
		h := &Handler{svc: &stubService{listResp: envelope}}
		c, rec := newRequestContext(t, http.MethodGet, "/orders", "")

		require.NoError(t, h.list(c))

		var got dto.OrderListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, *envelope, got)
	})

	t.Run("validation failure maps to 400 with the message", func(t *testing.T) {
		h := &Handler{svc: &stubService{listErr: errorbank.BadRequest("Page must be a positive integer")}}
		c, rec := newRequestContext(t, http.MethodGet, "/orders?page=0", "")

		require.NoError(t, h.list(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Page must be a positive integer", body["error"])
	})

	t.Run("store failure maps to opaque 500", func(t *testing.T) {
		h := &Handler{svc: &stubService{listErr: errorbank.Internal("failed to list orders")}}
		c, rec := newRequestContext(t, http.MethodGet, "/orders", "")

		require.NoError(t, h.list(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Internal server error", body["error"])
	})
}
