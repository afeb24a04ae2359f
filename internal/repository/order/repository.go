package order

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Tomiris95/orderdesk/internal/database"
	"github.com/Tomiris95/orderdesk/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Tomiris95/orderdesk/repository/order")

// Filter is the conjunctive predicate applied to listing reads. Zero
// values mean the corresponding clause is absent; StartAt/EndAt are
// normalized ISO-8601 instants.
type Filter struct {
	Status    string
	MinAmount *float64
	MaxAmount *float64
	StartAt   string
	EndAt     string
}

// Repository encapsulates read/write access for orders. Every value
// reaches the database through parameter binding, never interpolation.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists a new order using the write connection. The assigned
// id is written back into order.
func (r *Repository) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(attribute.String("order.customer", order.Customer)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(order).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// InsertMany bulk-inserts pre-built orders, created_at included. This is
// the trusted seeding path and performs no validation.
func (r *Repository) InsertMany(ctx context.Context, orders []entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.InsertMany", trace.WithAttributes(attribute.Int("order.count", len(orders))))
	defer span.End()

	_, err := r.writer.NewInsert().Model(&orders).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bulk insert failed")
	}
	return err
}

// List runs the bounded, offset select for the filter, newest first.
func (r *Repository) List(ctx context.Context, f Filter, limit, offset int) ([]entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.List", trace.WithAttributes(
		attribute.Int("query.limit", limit),
		attribute.Int("query.offset", offset),
	))
	defer span.End()

	orders := make([]entity.Order, 0, limit)
	q := applyFilter(r.reader.NewSelect().Model(&orders), f)
	err := q.OrderExpr("created_at DESC").Limit(limit).Offset(offset).Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return orders, nil
}

// Count returns the number of rows matching the filter, ignoring any
// bound or offset.
func (r *Repository) Count(ctx context.Context, f Filter) (int, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Count")
	defer span.End()

	q := applyFilter(r.reader.NewSelect().Model((*entity.Order)(nil)), f)
	count, err := q.Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count failed")
		return 0, err
	}
	return count, nil
}

func applyFilter(q *bun.SelectQuery, f Filter) *bun.SelectQuery {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	if f.StartAt != "" {
		q = q.Where("created_at >= ?", f.StartAt)
	}
	if f.EndAt != "" {
		q = q.Where("created_at <= ?", f.EndAt)
	}
	return q
}
