package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Tomiris95/orderdesk/internal/config"
	"github.com/Tomiris95/orderdesk/internal/dto"
	"github.com/Tomiris95/orderdesk/internal/entity"
	"github.com/Tomiris95/orderdesk/internal/messaging"
	repo "github.com/Tomiris95/orderdesk/internal/repository/order"
	"github.com/Tomiris95/orderdesk/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Tomiris95/orderdesk/service/order")

// Repository is the store surface the service depends on. Satisfied by
// *repo.Repository.
type Repository interface {
	Create(ctx context.Context, order *entity.Order) error
	InsertMany(ctx context.Context, orders []entity.Order) error
	List(ctx context.Context, f repo.Filter, limit, offset int) ([]entity.Order, error)
	Count(ctx context.Context, f repo.Filter) (int, error)
}

// Service encapsulates business logic around orders.
type Service struct {
	repo      Repository
	listing   config.Listing
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:      p.Repository,
		listing:   p.Config.Listing,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// Create persists a new order, stamping created_at at insertion time
// when the caller did not supply one, and publishes a creation event.
func (s *Service) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errorbank.BadRequest("order payload is required")
	}
	if order.CreatedAt == "" {
		order.CreatedAt = entity.Timestamp(time.Now())
	}
	ctx, span := serviceTracer.Start(ctx, "OrderService.Create", trace.WithAttributes(attribute.String("order.customer", order.Customer)))
	defer span.End()

	if err := s.repo.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to create order", errorbank.WithCause(err))
	}

	s.publishOrderCreated(ctx, order)
	return nil
}

// List validates and normalizes the raw listing parameters, issues the
// page select and the total count, and assembles the response envelope.
// The two reads are independent; a write landing between them may skew
// total against the returned page, which is accepted.
func (s *Service) List(ctx context.Context, params ListParams) (*dto.OrderListResponse, error) {
	q, err := ParseListQuery(params, s.listing)
	if err != nil {
		return nil, err
	}

	ctx, span := serviceTracer.Start(ctx, "OrderService.List", trace.WithAttributes(
		attribute.Int("query.page", q.Page),
		attribute.Int("query.limit", q.Limit),
	))
	defer span.End()

	filter := repo.Filter{
		Status:    q.Status,
		MinAmount: q.MinAmount,
		MaxAmount: q.MaxAmount,
		StartAt:   q.StartAt,
		EndAt:     q.EndAt,
	}

	orders, err := s.repo.List(ctx, filter, q.Limit, q.Offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list orders", errorbank.WithCause(err))
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to count orders", errorbank.WithCause(err))
	}

	return buildEnvelope(q, orders, total), nil
}

// Seed bulk-inserts pre-built records through the trusted path. Not
// reachable over HTTP.
func (s *Service) Seed(ctx context.Context, orders []entity.Order) error {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Seed", trace.WithAttributes(attribute.Int("order.count", len(orders))))
	defer span.End()

	if err := s.repo.InsertMany(ctx, orders); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to seed orders", errorbank.WithCause(err))
	}
	return nil
}

func buildEnvelope(q *ListQuery, orders []entity.Order, total int) *dto.OrderListResponse {
	data := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		data = append(data, dto.OrderResponse{
			ID:        o.ID,
			Customer:  o.Customer,
			Amount:    o.Amount,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
		})
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + q.Limit - 1) / q.Limit
	}

	filters := dto.ListFilters{}
	if q.Status != "" {
		status := q.Status
		filters.Status = &status
	}
	filters.AmountRange = dto.AmountRange{Min: q.MinAmount, Max: q.MaxAmount}
	if q.StartDate != "" {
		start := q.StartDate
		filters.DateRange.Start = &start
	}
	if q.EndDate != "" {
		end := q.EndDate
		filters.DateRange.End = &end
	}

	return &dto.OrderListResponse{
		Data: data,
		Metadata: dto.ListMetadata{
			Pagination: dto.Pagination{
				Page:        q.Page,
				Limit:       q.Limit,
				Total:       total,
				TotalPages:  totalPages,
				HasNext:     q.Page < totalPages,
				HasPrevious: q.Page > 1,
			},
			Filters: filters,
		},
	}
}

func (s *Service) publishOrderCreated(ctx context.Context, order *entity.Order) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderCreatedEvent{
		ID:        order.ID,
		Customer:  order.Customer,
		Amount:    order.Amount,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal order created", zap.Error(err))
		}
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%d", order.ID)), payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish order created", zap.Error(err))
		}
	}
}

// OrderCreatedEvent is emitted when a new order is persisted.
type OrderCreatedEvent struct {
	ID        int64   `json:"id"`
	Customer  string  `json:"customer"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}
