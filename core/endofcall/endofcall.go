package endofcall

import (
	"context"
	"errors"
	"fmt"

	"github.com/restoreflow/vapi-sheets-webhook/contracts"
	"github.com/restoreflow/vapi-sheets-webhook/leadrecord"
	"github.com/restoreflow/vapi-sheets-webhook/phonenumber"
	"github.com/restoreflow/vapi-sheets-webhook/sheetstore"
	"github.com/restoreflow/vapi-sheets-webhook/vapiclient"
	"github.com/restoreflow/vapi-sheets-webhook/vlogger"
)

// Indirections for the scenario tests
var fetchCallWithAnalysis = vapiclient.FetchCallWithAnalysis
var appendLead = sheetstore.AppendLead

// Process runs one end-of-call report through the pipeline: fetch the
// authoritative call resource, locate the extraction result, resolve and
// normalize the phone number, validate against the destination schema and
// persist. Irrelevant events short-circuit with an ignored result.
func Process(ctx context.Context, requestID string, event *contracts.WebhookEvent) *contracts.WebhookResponse {
	if event.MessageType() != contracts.EventTypeEndOfCallReport {
		return contracts.NewIgnoredResponse("Not an end-of-call-report")
	}
	callID := event.CallID()
	if callID == "" {
		return contracts.NewErrorResponse(errors.New("call id is missing from the webhook payload"))
	}
	vlogger.LogInfof(requestID, "Processing end-of-call report for call [%s]", callID)

	analysis := event.Analysis()
	var fetchedNumber string
	call, err := fetchCallWithAnalysis(ctx, callID)
	if err != nil {
		vlogger.LogErrorf(requestID, "Failed to fetch the call resource for [%s], falling back to the webhook payload. Error: [%#v]", callID, err)
	} else if call != nil {
		if call.Analysis != nil {
			analysis = call.Analysis
		}
		fetchedNumber = call.CustomerNumber()
	}

	extracted := analysis.FirstStructuredResult()
	if len(extracted) == 0 {
		vlogger.LogErrorf(requestID, "No structuredData or structuredOutputs found for call [%s]. Proceeding with defaults", callID)
		extracted = map[string]interface{}{}
	}

	aiCandidate := phoneCandidate(extracted)
	resolved := phonenumber.ResolveCallerID(aiCandidate, event.CustomerNumber(), fetchedNumber)
	if resolved != aiCandidate {
		vlogger.LogInfof(requestID, "Fallback to true caller ID: [%s]", resolved)
		if !phonenumber.IsParseable(resolved) {
			vlogger.LogDebugf(requestID, "Telecom caller ID [%s] does not parse as a valid number", resolved)
		}
	}
	extracted["phone_number"] = phonenumber.FormatNational(resolved)

	rec := leadrecord.FromMap(extracted)
	if appendLead(ctx, requestID, rec) {
		return contracts.NewSuccessResponse("Row appended to Google Sheets.")
	}
	return contracts.NewPartialFailureResponse("Failed to write to sheets, data logged locally.")
}

// phoneCandidate pulls the AI extracted phone number out of the extraction
// result. Non-string values are stringified rather than discarded so the
// resolver still sees what the model produced.
func phoneCandidate(extracted map[string]interface{}) string {
	value, ok := extracted["phone_number"]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
