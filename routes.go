package main

import (
	"github.com/restoreflow/vapi-sheets-webhook/requesthandler"

	"github.com/labstack/echo"
)

// AddRoutes defines the routes and the handlers
func AddRoutes(e *echo.Echo) {
	e.Any("/", requesthandler.HealthHandler{}.Any)
	e.Any("/api/vapi/webhook", requesthandler.VapiWebhookHandler{}.Any)
}
