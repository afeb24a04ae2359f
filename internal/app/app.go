package app

import (
	"go.uber.org/fx"

	"github.com/Tomiris95/orderdesk/internal/config"
	"github.com/Tomiris95/orderdesk/internal/database"
	"github.com/Tomiris95/orderdesk/internal/logger"
	"github.com/Tomiris95/orderdesk/internal/messaging"
	"github.com/Tomiris95/orderdesk/internal/observability"
	repositoryorder "github.com/Tomiris95/orderdesk/internal/repository/order"
	httpserver "github.com/Tomiris95/orderdesk/internal/server/http"
	serviceorder "github.com/Tomiris95/orderdesk/internal/service/order"
	transporthttp "github.com/Tomiris95/orderdesk/internal/transport/http"
	"github.com/Tomiris95/orderdesk/internal/validation"
	"github.com/Tomiris95/orderdesk/internal/worker"
	workerorder "github.com/Tomiris95/orderdesk/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	validation.Module,
	repositoryorder.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
