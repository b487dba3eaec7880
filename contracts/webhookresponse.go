package contracts

// Response statuses returned by the webhook endpoint. Anything past
// authentication is reported with HTTP 200 so Vapi's call flow never stalls
// on the webhook.
const (
	StatusSuccess        = "success"
	StatusPartialFailure = "partial_failure"
	StatusIgnored        = "ignored"
	StatusError          = "error"
)

// WebhookResponse is the body returned for every webhook request
type WebhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewSuccessResponse reports a row appended to the destination sheet
func NewSuccessResponse(message string) *WebhookResponse {
	return &WebhookResponse{Status: StatusSuccess, Message: message}
}

// NewPartialFailureResponse reports a failed sheet write that was preserved
// in the local failure journal
func NewPartialFailureResponse(message string) *WebhookResponse {
	return &WebhookResponse{Status: StatusPartialFailure, Message: message}
}

// NewIgnoredResponse reports an event that is not worth processing
func NewIgnoredResponse(reason string) *WebhookResponse {
	return &WebhookResponse{Status: StatusIgnored, Reason: reason}
}

// NewErrorResponse reports an internal failure that was intercepted at the
// endpoint boundary
func NewErrorResponse(err error) *WebhookResponse {
	return &WebhookResponse{
		Status:  StatusError,
		Message: "Webhook crashed but intercepted gracefully.",
		Error:   err.Error(),
	}
}

// HealthResponse is the fixed body of the health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
