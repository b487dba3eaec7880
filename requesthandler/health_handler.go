package requesthandler

import (
	"net/http"

	"github.com/restoreflow/vapi-sheets-webhook/contracts"

	"github.com/labstack/echo"
)

type HealthHandler struct{}

// Any serves the health endpoint. HEAD is accepted for uptime pingers.
func (handler HealthHandler) Any(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodGet, http.MethodHead:
		return handler.Get(c)
	}
	return RawResponse(c, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

func (HealthHandler) Get(c echo.Context) error {
	return RawResponse(c, contracts.HealthResponse{
		Status:  "ok",
		Service: "VAPI Webhook Endpoint",
	}, http.StatusOK)
}
