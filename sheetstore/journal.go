package sheetstore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/restoreflow/vapi-sheets-webhook/configmanager"
	"github.com/restoreflow/vapi-sheets-webhook/leadrecord"
	"github.com/restoreflow/vapi-sheets-webhook/newrelic"
	"github.com/restoreflow/vapi-sheets-webhook/vlogger"
)

// muJournal serializes the read-modify-write cycle on the journal file so
// concurrent webhook requests cannot drop each other's entries
var muJournal sync.Mutex

// JournalEntry is one element of the failure journal file. The journal is
// append-only, nothing in this service ever prunes it.
type JournalEntry struct {
	Timestamp string                `json:"timestamp"`
	Error     string                `json:"error"`
	Data      leadrecord.LeadRecord `json:"data"`
}

// LogFailure durably records a lead that could not be written to the sheet.
// A missing or corrupt journal is treated as empty, never as fatal.
func LogFailure(requestID string, rec leadrecord.LeadRecord, appendErr error) {
	muJournal.Lock()
	defer muJournal.Unlock()

	journalPath := configmanager.ConfStore.FailureJournalPath
	if err := os.MkdirAll(filepath.Dir(journalPath), 0755); err != nil {
		vlogger.LogCriticalf(requestID, "Failed to create the journal directory. Error: [%#v]", err)
		return
	}
	vlogger.LogInfof(requestID, "Logging failure to [%s]", journalPath)

	var entries []JournalEntry
	if data, err := ioutil.ReadFile(journalPath); err == nil {
		if err := json.Unmarshal(data, &entries); err != nil {
			vlogger.LogErrorf(requestID, "Journal file is corrupt, starting a fresh one. Error: [%#v]", err)
			entries = nil
		}
	}
	entries = append(entries, JournalEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Error:     appendErr.Error(),
		Data:      rec,
	})

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		vlogger.LogCriticalf(requestID, "Failed to marshal the journal. Error: [%#v]", err)
		return
	}
	if err := ioutil.WriteFile(journalPath, out, 0644); err != nil {
		vlogger.LogCriticalf(requestID, "Failed to write the journal file. Error: [%#v]", err)
		return
	}
	newrelic.SendCustomEvent("sheet_failure_journal", map[string]interface{}{
		"status": "entry_written",
		"value":  1,
	})
}
