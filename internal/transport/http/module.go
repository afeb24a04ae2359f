package http

import (
	"go.uber.org/fx"

	ordertransport "github.com/Tomiris95/orderdesk/internal/transport/http/order"
	validationtransport "github.com/Tomiris95/orderdesk/internal/transport/http/validation"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	ordertransport.Module,
	validationtransport.Module,
)
