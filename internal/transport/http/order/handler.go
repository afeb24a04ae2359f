package order

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Tomiris95/orderdesk/internal/dto"
	"github.com/Tomiris95/orderdesk/internal/entity"
	"github.com/Tomiris95/orderdesk/internal/presentation/http/response"
	service "github.com/Tomiris95/orderdesk/internal/service/order"
	"github.com/Tomiris95/orderdesk/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Tomiris95/orderdesk/transport/http/order")

// orderService is the service surface the handler needs; satisfied by
// *service.Service.
type orderService interface {
	Create(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, params service.ListParams) (*dto.OrderListResponse, error)
}

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc orderService
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/orders")
	g.POST("", h.create)
	g.GET("", h.list)
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload dto.CreateOrderRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("Invalid payload", errorbank.WithCause(err))).Build()
	}
	if payload.Customer == "" || payload.Amount == nil || payload.Status == "" {
		return b.WithError(errorbank.BadRequest("Invalid payload")).Build()
	}

	order := &entity.Order{
		Customer: payload.Customer,
		Amount:   *payload.Amount,
		Status:   payload.Status,
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create")
	span.SetAttributes(attribute.String("order.customer", order.Customer))
	defer span.End()

	if err := h.svc.Create(ctx, order); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(toDTO(order)).Build()
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	params := service.ListParams{
		Page:      c.QueryParam("page"),
		Limit:     c.QueryParam("limit"),
		Status:    c.QueryParam("status"),
		MinAmount: c.QueryParam("minAmount"),
		MaxAmount: c.QueryParam("maxAmount"),
		StartDate: c.QueryParam("startDate"),
		EndDate:   c.QueryParam("endDate"),
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.list", trace.WithAttributes(
		attribute.String("query.page", params.Page),
		attribute.String("query.limit", params.Limit),
	))
	defer span.End()

	envelope, err := h.svc.List(ctx, params)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(envelope).Build()
}

func toDTO(order *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        order.ID,
		Customer:  order.Customer,
		Amount:    order.Amount,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}
}
