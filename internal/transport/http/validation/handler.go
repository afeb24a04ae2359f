package validation

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/Tomiris95/orderdesk/internal/presentation/http/response"
	"github.com/Tomiris95/orderdesk/internal/validation"
	"github.com/Tomiris95/orderdesk/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Tomiris95/orderdesk/transport/http/validation")

// RuleDescriptor is one entry of the static rules listing. RegexPattern
// is null for threshold-only rules.
type RuleDescriptor struct {
	RuleName     string  `json:"rule_name"`
	RegexPattern *string `json:"regex_pattern"`
	ErrorMessage string  `json:"error_message"`
}

// Handler exposes the validation endpoints over HTTP.
type Handler struct {
	engine *validation.Engine
	rules  []RuleDescriptor
}

// NewHandler constructs a validation Handler. The rules listing is
// derived once from the engine's immutable rule set.
func NewHandler(engine *validation.Engine) *Handler {
	return &Handler{
		engine: engine,
		rules:  describeRules(engine.Rules()),
	}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.GET("/validation-rules", h.listRules)
	e.POST("/validate", h.validate)
}

func (h *Handler) listRules(c echo.Context) error {
	payload := struct {
		Rules []RuleDescriptor `json:"rules"`
	}{Rules: h.rules}
	return response.New(c).WithData(payload).Build()
}

func (h *Handler) validate(c echo.Context) error {
	b := response.New(c)

	var input validation.Input
	if err := c.Bind(&input); err != nil {
		return b.WithError(errorbank.BadRequest("Request body must be valid JSON", errorbank.WithCause(err))).Build()
	}
	if input.Email == nil && input.Password == nil && input.Phone == nil {
		return b.WithError(errorbank.BadRequest("Request body must contain at least one of: email, password, phone")).Build()
	}

	_, span := httpTracer.Start(c.Request().Context(), "validation.validate")
	defer span.End()

	report := h.engine.ValidateAll(input)

	status := http.StatusOK
	if !report.Valid {
		status = http.StatusBadRequest
	}
	return b.WithStatus(status).WithData(report).Build()
}

func describeRules(rules validation.Rules) []RuleDescriptor {
	email := rules.Email.Pattern.String()
	number := rules.Password.HasNumber.String()
	special := rules.Password.HasSpecial.String()
	phone := rules.Phone.Pattern.String()

	return []RuleDescriptor{
		{RuleName: rules.Email.Name, RegexPattern: &email, ErrorMessage: rules.Email.Error},
		{RuleName: "password_min_length", RegexPattern: nil, ErrorMessage: rules.Password.Errors.Length},
		{RuleName: "password_has_number", RegexPattern: &number, ErrorMessage: rules.Password.Errors.Number},
		{RuleName: "password_has_special", RegexPattern: &special, ErrorMessage: rules.Password.Errors.Special},
		{RuleName: rules.Phone.Name, RegexPattern: &phone, ErrorMessage: rules.Phone.Error},
	}
}
