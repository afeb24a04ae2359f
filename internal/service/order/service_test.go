package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tomiris95/orderdesk/internal/config"
	"github.com/Tomiris95/orderdesk/internal/entity"
	repo "github.com/Tomiris95/orderdesk/internal/repository/order"
	"github.com/Tomiris95/orderdesk/pkg/errorbank"
)

type fakeRepo struct {
	orders    []entity.Order
	total     int
	createErr error
	listErr   error
	countErr  error

	lastFilter repo.Filter
	lastLimit  int
	lastOffset int
	listCalls  int
	nextID     int64
}

func (f *fakeRepo) Create(_ context.Context, order *entity.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	order.ID = f.nextID
	return nil
}

func (f *fakeRepo) InsertMany(_ context.Context, orders []entity.Order) error {
	f.orders = append(f.orders, orders...)
	return nil
}

func (f *fakeRepo) List(_ context.Context, filter repo.Filter, limit, offset int) ([]entity.Order, error) {
	f.listCalls++
	f.lastFilter = filter
	f.lastLimit = limit
	f.lastOffset = offset
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.orders, nil
}

func (f *fakeRepo) Count(_ context.Context, filter repo.Filter) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.total, nil
}

func newTestService(r Repository) *Service {
	return &Service{
		repo:    r,
		listing: config.Listing{DefaultLimit: 10, MaxLimit: 100},
		logger:  zap.NewNop(),
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps created_at and assigns id", func(t *testing.T) {
		fr := &fakeRepo{}
		svc := newTestService(fr)

		order := &entity.Order{Customer: "Alice", Amount: 123.45, Status: entity.StatusPending}
		require.NoError(t, svc.Create(ctx, order))
		assert.Equal(t, int64(1), order.ID)
		assert.NotEmpty(t, order.CreatedAt)
	})

	t.Run("keeps a caller-supplied timestamp", func(t *testing.T) {
		fr := &fakeRepo{}
		svc := newTestService(fr)

		order := &entity.Order{Customer: "Bob", Amount: 10, Status: entity.StatusCompleted, CreatedAt: "2024-01-01T00:00:00.000Z"}
		require.NoError(t, svc.Create(ctx, order))
		assert.Equal(t, "2024-01-01T00:00:00.000Z", order.CreatedAt)
	})

	t.Run("wraps repository failures as internal", func(t *testing.T) {
		fr := &fakeRepo{createErr: errors.New("disk full")}
		svc := newTestService(fr)

		err := svc.Create(ctx, &entity.Order{Customer: "Eve", Amount: 1, Status: entity.StatusPending})
		require.Error(t, err)
		assert.Equal(t, errorbank.KindInternal, errorbank.From(err).Kind())
	})

	t.Run("nil order rejected", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})
		err := svc.Create(ctx, nil)
		require.Error(t, err)
		assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
	})
}

func TestService_List_Envelope(t *testing.T) {
	ctx := context.Background()

	page := make([]entity.Order, 10)
	for i := range page {
		page[i] = entity.Order{ID: int64(i + 1), Customer: "C", Amount: 10, Status: entity.StatusPending, CreatedAt: "2024-01-01T00:00:00.000Z"}
	}

	fr := &fakeRepo{orders: page, total: 25}
	svc := newTestService(fr)

	resp, err := svc.List(ctx, ListParams{Page: "2", Limit: "10"})
	require.NoError(t, err)

	assert.Len(t, resp.Data, 10)
	assert.Equal(t, 2, resp.Metadata.Pagination.Page)
	assert.Equal(t, 10, resp.Metadata.Pagination.Limit)
	assert.Equal(t, 25, resp.Metadata.Pagination.Total)
	assert.Equal(t, 3, resp.Metadata.Pagination.TotalPages)
	assert.True(t, resp.Metadata.Pagination.HasNext)
	assert.True(t, resp.Metadata.Pagination.HasPrevious)
	assert.Equal(t, 10, fr.lastOffset)
	assert.Equal(t, 10, fr.lastLimit)
}

func TestService_List_OutOfRangePageIsNotAnError(t *testing.T) {
	fr := &fakeRepo{orders: nil, total: 3}
	svc := newTestService(fr)

	resp, err := svc.List(context.Background(), ListParams{Page: "999", Limit: "10"})
	require.NoError(t, err)

	assert.Empty(t, resp.Data)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, 999, resp.Metadata.Pagination.Page)
	assert.Equal(t, 1, resp.Metadata.Pagination.TotalPages)
	assert.False(t, resp.Metadata.Pagination.HasNext)
	assert.True(t, resp.Metadata.Pagination.HasPrevious)
}

func TestService_List_EmptyStore(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	resp, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Zero(t, resp.Metadata.Pagination.Total)
	assert.Zero(t, resp.Metadata.Pagination.TotalPages)
	assert.False(t, resp.Metadata.Pagination.HasNext)
	assert.False(t, resp.Metadata.Pagination.HasPrevious)
}

func TestService_List_InvalidParamsNeverReachStore(t *testing.T) {
	fr := &fakeRepo{}
	svc := newTestService(fr)

	_, err := svc.List(context.Background(), ListParams{Page: "0", Status: "bogus"})
	require.Error(t, err)
	assert.Zero(t, fr.listCalls)
}

func TestService_List_FilterEcho(t *testing.T) {
	fr := &fakeRepo{total: 1}
	svc := newTestService(fr)

	resp, err := svc.List(context.Background(), ListParams{
		Status:    "pending",
		MinAmount: "40",
		MaxAmount: "80",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})
	require.NoError(t, err)

	filters := resp.Metadata.Filters
	require.NotNil(t, filters.Status)
	assert.Equal(t, "pending", *filters.Status)
	require.NotNil(t, filters.AmountRange.Min)
	assert.Equal(t, 40.0, *filters.AmountRange.Min)
	require.NotNil(t, filters.AmountRange.Max)
	assert.Equal(t, 80.0, *filters.AmountRange.Max)
	require.NotNil(t, filters.DateRange.Start)
	assert.Equal(t, "2024-01-01", *filters.DateRange.Start)
	require.NotNil(t, filters.DateRange.End)
	assert.Equal(t, "2024-01-31", *filters.DateRange.End)

	// The store saw the normalized instants, not the raw dates.
	assert.Equal(t, "2024-01-01T00:00:00.000Z", fr.lastFilter.StartAt)
	assert.Equal(t, "2024-01-31T00:00:00.000Z", fr.lastFilter.EndAt)
}

func TestService_List_AbsentFiltersEchoAsNull(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	resp, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)

	filters := resp.Metadata.Filters
	assert.Nil(t, filters.Status)
	assert.Nil(t, filters.AmountRange.Min)
	assert.Nil(t, filters.AmountRange.Max)
	assert.Nil(t, filters.DateRange.Start)
	assert.Nil(t, filters.DateRange.End)
}

func TestService_List_StoreFailureIsInternal(t *testing.T) {
	fr := &fakeRepo{listErr: errors.New("boom")}
	svc := newTestService(fr)

	_, err := svc.List(context.Background(), ListParams{})
	require.Error(t, err)
	assert.Equal(t, errorbank.KindInternal, errorbank.From(err).Kind())
}

func TestService_Seed(t *testing.T) {
	fr := &fakeRepo{}
	svc := newTestService(fr)

	orders := []entity.Order{
		{Customer: "A", Amount: 1, Status: entity.StatusPending, CreatedAt: "2024-01-01T00:00:00.000Z"},
		{Customer: "B", Amount: 2, Status: entity.StatusCancelled, CreatedAt: "2024-01-02T00:00:00.000Z"},
	}
	require.NoError(t, svc.Seed(context.Background(), orders))
	assert.Len(t, fr.orders, 2)
}
