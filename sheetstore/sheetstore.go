package sheetstore

import (
	"context"
	"errors"

	"github.com/restoreflow/vapi-sheets-webhook/configmanager"
	"github.com/restoreflow/vapi-sheets-webhook/leadrecord"
	"github.com/restoreflow/vapi-sheets-webhook/newrelic"
	"github.com/restoreflow/vapi-sheets-webhook/vlogger"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

var sheetsService *sheets.Service

// Indirection for the failure path tests
var appendRow = appendRowSheets

// InitSheetsService builds the Sheets API client from the service account
// credentials file
func InitSheetsService(ctx context.Context) error {
	service, err := sheets.NewService(
		ctx,
		option.WithCredentialsFile(configmanager.ConfStore.GoogleCredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return err
	}
	sheetsService = service
	return nil
}

// AppendLead appends one row to the destination sheet. On any failure from
// the Sheets API the record is preserved in the local failure journal and
// false is returned, the record is never dropped.
func AppendLead(ctx context.Context, requestID string, rec leadrecord.LeadRecord) bool {
	if err := appendRow(ctx, rec.Row()); err != nil {
		vlogger.LogErrorf(requestID, "Error appending directly to Google Sheets. Error: [%#v]", err)
		newrelic.SendCustomEvent("sheet_append", map[string]interface{}{
			"status": "failure",
			"value":  1,
		})
		LogFailure(requestID, rec, err)
		return false
	}
	newrelic.SendCustomEvent("sheet_append", map[string]interface{}{
		"status": "success",
		"value":  1,
	})
	return true
}

func appendRowSheets(ctx context.Context, row []interface{}) error {
	if sheetsService == nil {
		return errors.New("sheets service is not initialized")
	}
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{row},
	}
	response, err := sheetsService.Spreadsheets.Values.
		Append(configmanager.ConfStore.SpreadsheetID, configmanager.ConfStore.SheetRange, valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return err
	}
	if response.Updates != nil {
		vlogger.LogInfof("SheetAppend", "Row successfully appended. Updated range: [%s]", response.Updates.UpdatedRange)
	}
	return nil
}
