package requesthandler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/restoreflow/vapi-sheets-webhook/contracts"
	"github.com/restoreflow/vapi-sheets-webhook/core/endofcall"
	"github.com/restoreflow/vapi-sheets-webhook/newrelic"
	"github.com/restoreflow/vapi-sheets-webhook/vlogger"

	guuid "github.com/google/uuid"
	"github.com/labstack/echo"
)

type VapiWebhookHandler struct{}

func (handler VapiWebhookHandler) Any(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodPost:
		return handler.Post(c)
	}
	return RawResponse(c, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// Post receives the webhook from Vapi. Authentication mismatch is the only
// path that replies with a non-2xx code. Every failure past that point is
// converted into a success-shaped response body, a failing status would
// stall Vapi's own call flow.
func (VapiWebhookHandler) Post(c echo.Context) error {
	requestID := guuid.New().String()
	ctx := context.WithValue(context.Background(), "RequestID", requestID)

	var vs contracts.VapiSecret
	if err := vs.ExtractFromHTTP(c); err != nil {
		return RawResponse(c, contracts.NewErrorResponse(err), http.StatusUnauthorized)
	}
	if err := vs.Authenticate(); err != nil {
		vlogger.LogErrorf(requestID, "Webhook authentication failed. Error: [%#v]", err)
		return RawResponse(c, contracts.NewErrorResponse(err), http.StatusUnauthorized)
	}

	event := new(contracts.WebhookEvent)
	if err := event.ExtractFromHTTP(c); err != nil {
		vlogger.LogErrorf(requestID, "Failed to decode the webhook payload. Error: [%#v]", err)
		return RawResponse(c, contracts.NewErrorResponse(err), http.StatusOK)
	}

	response := processContained(ctx, requestID, event)
	newrelic.SendCustomEvent("vapi_webhook", map[string]interface{}{
		"status": response.Status,
		"value":  1,
	})
	return RawResponse(c, response, http.StatusOK)
}

// processContained is the single boundary where pipeline failures are
// converted into an error response body. Nothing escapes it.
func processContained(ctx context.Context, requestID string, event *contracts.WebhookEvent) (response *contracts.WebhookResponse) {
	defer func() {
		if r := recover(); r != nil {
			vlogger.LogCriticalf(requestID, "CRITICAL WEBHOOK ERROR: [%#v]", r)
			response = contracts.NewErrorResponse(fmt.Errorf("%v", r))
		}
	}()
	return endofcall.Process(ctx, requestID, event)
}
