package vapiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"time"

	"github.com/restoreflow/vapi-sheets-webhook/configmanager"
	"github.com/restoreflow/vapi-sheets-webhook/contracts"
	"github.com/restoreflow/vapi-sheets-webhook/vlogger"
	"golang.org/x/time/rate"
)

const VapiAPIRequestsPerSecond = 5
const VapiAPIRequestsBurst = 10

// Analysis runs asynchronously on Vapi's side, the end-of-call webhook
// regularly fires before structured outputs are populated. The fetch loop
// below exists to ride out that race.
const fetchMaxAttempts = 3
const analysisBackoff = 5 * time.Second
const errorBackoff = 3 * time.Second

var vapiLimiter = rate.NewLimiter(VapiAPIRequestsPerSecond, VapiAPIRequestsBurst)

var vapiClient *http.Client

// Indirections for the retry loop tests
var fetchCallFn = FetchCall
var sleepFn = time.Sleep

// Call is the call resource as returned by the Vapi API
type Call struct {
	ID       string              `json:"id"`
	Customer *contracts.Customer `json:"customer,omitempty"`
	Analysis *contracts.Analysis `json:"analysis,omitempty"`
}

// CustomerNumber returns the telecom caller ID attached to the call resource
func (call *Call) CustomerNumber() string {
	if call == nil || call.Customer == nil {
		return ""
	}
	return call.Customer.Number
}

// InitVapiClient initializes the HTTP client for the Vapi API
func InitVapiClient() {
	vapiClient = &http.Client{
		Transport: &http.Transport{
			Dial:                (&net.Dialer{Timeout: 3 * time.Second}).Dial,
			TLSHandshakeTimeout: 3 * time.Second,
		},
		Timeout: time.Duration(10 * time.Second),
	}
	return
}

// FetchCall issues a single authenticated GET for the call resource
func FetchCall(ctx context.Context, callID string) (*Call, error) {
	if err := vapiLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequest(
		http.MethodGet,
		configmanager.ConfStore.VapiAPIBase+"/call/"+callID,
		nil,
	)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+configmanager.ConfStore.VapiAPIToken)
	req.Header.Set("Accept", "application/json")

	response, err := vapiClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("got non 2xx response from the Vapi API. Response Code: [%d]", response.StatusCode)
	}
	respBody, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	call := new(Call)
	if err := json.Unmarshal(respBody, call); err != nil {
		return nil, err
	}
	return call, nil
}

// FetchCallWithAnalysis fetches the call resource until its structured
// outputs are populated or the retry budget runs out. Fetch failures are
// logged and treated as an empty result for that attempt. After the budget
// is exhausted one final unconditional fetch is made and whatever it yields
// is returned, so the caller may still see a call without structured data
// and must proceed with defaults.
func FetchCallWithAnalysis(ctx context.Context, callID string) (*Call, error) {
	for attempt := 1; attempt <= fetchMaxAttempts; attempt++ {
		call, err := fetchCallFn(ctx, callID)
		if err != nil {
			vlogger.LogErrorf(callID, "Attempt [%d]: failed to fetch the call resource. Error: [%#v]. Retrying", attempt, err)
			sleepFn(errorBackoff)
			continue
		}
		if len(call.Analysis.StructuredOutputResult()) > 0 {
			vlogger.LogInfof(callID, "Attempt [%d]: structured outputs are populated", attempt)
			return call, nil
		}
		vlogger.LogInfof(callID, "Attempt [%d]: structured outputs are not populated yet. Retrying", attempt)
		sleepFn(analysisBackoff)
	}
	vlogger.LogInfof(callID, "Structured outputs did not show up within [%d] attempts. Taking the call resource as is", fetchMaxAttempts)
	return fetchCallFn(ctx, callID)
}
