package requesthandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/restoreflow/vapi-sheets-webhook/configmanager"
	"github.com/restoreflow/vapi-sheets-webhook/contracts"

	"github.com/labstack/echo"
)

func initTestConfig(t *testing.T, secret string) {
	t.Helper()
	os.Setenv("SPREADSHEET_ID", "test-spreadsheet")
	if secret == "" {
		os.Unsetenv("VAPI_SECRET_TOKEN")
	} else {
		os.Setenv("VAPI_SECRET_TOKEN", secret)
	}
	if err := configmanager.InitConfig(); err != nil {
		t.Fatalf("failed to initialize the config, %s", err)
	}
}

func postWebhook(body string, headers map[string]string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/vapi/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) contracts.WebhookResponse {
	t.Helper()
	var response contracts.WebhookResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode the response body, %s", err)
	}
	return response
}

func TestWebhookRejectsWrongSecret(t *testing.T) {
	initTestConfig(t, "shared-secret")

	rec, c := postWebhook(`{"message": {"type": "end-of-call-report", "call": {"id": "call-123"}}}`,
		map[string]string{contracts.VapiSecretHeader: "wrong-secret"})
	if err := (VapiWebhookHandler{}).Post(c); err != nil {
		t.Fatalf("handler returned an error, %s", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, Got: %d", rec.Code)
	}
	response := decodeResponse(t, rec)
	if response.Status != contracts.StatusError {
		t.Errorf("Expected status error, Got: %v", response.Status)
	}
}

func TestWebhookMissingSecretHeaderRejected(t *testing.T) {
	initTestConfig(t, "shared-secret")

	rec, c := postWebhook(`{"message": {"type": "status-update"}}`, nil)
	if err := (VapiWebhookHandler{}).Post(c); err != nil {
		t.Fatalf("handler returned an error, %s", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, Got: %d", rec.Code)
	}
}

func TestWebhookAuthDisabledWithoutConfiguredSecret(t *testing.T) {
	initTestConfig(t, "")

	rec, c := postWebhook(`{"message": {"type": "status-update"}}`, nil)
	if err := (VapiWebhookHandler{}).Post(c); err != nil {
		t.Fatalf("handler returned an error, %s", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, Got: %d", rec.Code)
	}
	response := decodeResponse(t, rec)
	if response.Status != contracts.StatusIgnored {
		t.Errorf("Expected status ignored, Got: %v", response.Status)
	}
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	initTestConfig(t, "shared-secret")

	rec, c := postWebhook(`{"message": {"type": "status-update"}}`,
		map[string]string{contracts.VapiSecretHeader: "shared-secret"})
	if err := (VapiWebhookHandler{}).Post(c); err != nil {
		t.Fatalf("handler returned an error, %s", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, Got: %d", rec.Code)
	}
	response := decodeResponse(t, rec)
	if response.Status != contracts.StatusIgnored {
		t.Errorf("Expected status ignored, Got: %v", response.Status)
	}
	if response.Reason != "Not an end-of-call-report" {
		t.Errorf("Unexpected reason: %v", response.Reason)
	}
}

func TestWebhookMalformedBodyStillOK(t *testing.T) {
	initTestConfig(t, "")

	rec, c := postWebhook(`{not json`, nil)
	if err := (VapiWebhookHandler{}).Post(c); err != nil {
		t.Fatalf("handler returned an error, %s", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 even for a malformed body, Got: %d", rec.Code)
	}
	response := decodeResponse(t, rec)
	if response.Status != contracts.StatusError {
		t.Errorf("Expected status error, Got: %v", response.Status)
	}
}

func TestWebhookMethodNotAllowed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/vapi/webhook", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := (VapiWebhookHandler{}).Any(c); err != nil {
		t.Fatalf("handler returned an error, %s", err)
	}
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("Expected 405, Got: %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodHead} {
		e := echo.New()
		req := httptest.NewRequest(method, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := (HealthHandler{}).Any(c); err != nil {
			t.Fatalf("[%s] handler returned an error, %s", method, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("[%s] Expected 200, Got: %d", method, rec.Code)
		}
	}
}
