package contracts

import (
	"encoding/json"

	"github.com/labstack/echo"
)

// EventTypeEndOfCallReport is the terminal event Vapi fires once a call has
// concluded and analysis may be attached. All other event types are ignored.
const EventTypeEndOfCallReport = "end-of-call-report"

// WebhookEvent is the envelope Vapi posts to the webhook endpoint
type WebhookEvent struct {
	Message WebhookMessage `json:"message"`
}

// WebhookMessage carries the event type and, depending on the event shape,
// the call resource and extraction results
type WebhookMessage struct {
	Type     string    `json:"type"`
	Call     *CallInfo `json:"call,omitempty"`
	Customer *Customer `json:"customer,omitempty"`
	Analysis *Analysis `json:"analysis,omitempty"`
}

// CallInfo is the call resource as embedded in the webhook payload
type CallInfo struct {
	ID       string    `json:"id"`
	Customer *Customer `json:"customer,omitempty"`
	Analysis *Analysis `json:"analysis,omitempty"`
}

// Customer holds the telecom reported details of the remote party
type Customer struct {
	Number string `json:"number,omitempty"`
}

func (we *WebhookEvent) ExtractFromHTTP(c echo.Context) error {
	request := c.Request()
	if err := json.NewDecoder(request.Body).Decode(we); err != nil {
		return err
	}
	return nil
}

// MessageType returns the event type discriminator
func (we *WebhookEvent) MessageType() string {
	return we.Message.Type
}

// CallID returns the call identifier from the embedded call resource
func (we *WebhookEvent) CallID() string {
	if we.Message.Call == nil {
		return ""
	}
	return we.Message.Call.ID
}

// CustomerNumber returns the telecom caller ID from the payload. The number
// under the embedded call resource takes priority over the message level one.
func (we *WebhookEvent) CustomerNumber() string {
	if we.Message.Call != nil && we.Message.Call.Customer != nil && we.Message.Call.Customer.Number != "" {
		return we.Message.Call.Customer.Number
	}
	if we.Message.Customer != nil {
		return we.Message.Customer.Number
	}
	return ""
}

// Analysis returns the analysis sub-object from the payload. Vapi has shipped
// it both at the message level and under the embedded call resource.
func (we *WebhookEvent) Analysis() *Analysis {
	if we.Message.Analysis != nil {
		return we.Message.Analysis
	}
	if we.Message.Call != nil {
		return we.Message.Call.Analysis
	}
	return nil
}
