package sheetstore

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/restoreflow/vapi-sheets-webhook/configmanager"
	"github.com/restoreflow/vapi-sheets-webhook/leadrecord"
)

func setupConfig(t *testing.T) string {
	t.Helper()
	journalPath := filepath.Join(t.TempDir(), "sheets_failures.json")
	os.Setenv("SPREADSHEET_ID", "test-spreadsheet")
	os.Setenv("SHEETS_FAILURE_LOG", journalPath)
	if err := configmanager.InitConfig(); err != nil {
		t.Fatalf("failed to initialize the config, %s", err)
	}
	return journalPath
}

func readJournal(t *testing.T, journalPath string) []JournalEntry {
	t.Helper()
	data, err := ioutil.ReadFile(journalPath)
	if err != nil {
		t.Fatalf("failed to read the journal, %s", err)
	}
	var entries []JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("journal is not valid JSON, %s", err)
	}
	return entries
}

func TestLogFailureAppends(t *testing.T) {
	journalPath := setupConfig(t)
	first := leadrecord.LeadRecord{CallerFirstName: "Dana", PhoneNumber: "(555) 123-4567"}
	second := leadrecord.LeadRecord{CallerFirstName: "Riley", ZipCode: "78701"}

	LogFailure("test-req", first, errors.New("quota exceeded"))
	LogFailure("test-req", second, errors.New("network down"))

	entries := readJournal(t, journalPath)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 journal entries, Got: %d", len(entries))
	}
	last := entries[len(entries)-1]
	if last.Data != second {
		t.Errorf("Expected the last entry data to be the attempted record. Expected: %#v, Got: %#v", second, last.Data)
	}
	if last.Error != "network down" {
		t.Errorf("Expected error 'network down', Got: %v", last.Error)
	}
	if last.Timestamp == "" {
		t.Errorf("Expected a timestamp on the journal entry")
	}
}

func TestLogFailureCorruptJournal(t *testing.T) {
	journalPath := setupConfig(t)
	if err := ioutil.WriteFile(journalPath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to seed the corrupt journal, %s", err)
	}

	rec := leadrecord.LeadRecord{CallSummary: "corrupt journal case"}
	LogFailure("test-req", rec, errors.New("boom"))

	entries := readJournal(t, journalPath)
	if len(entries) != 1 {
		t.Fatalf("Expected the corrupt journal to be treated as empty, Got %d entries", len(entries))
	}
	if entries[0].Data != rec {
		t.Errorf("Expected: %#v, Got: %#v", rec, entries[0].Data)
	}
}

func TestAppendLeadFailureWritesJournal(t *testing.T) {
	journalPath := setupConfig(t)
	original := appendRow
	defer func() { appendRow = original }()
	appendRow = func(ctx context.Context, row []interface{}) error {
		return errors.New("append failed")
	}

	rec := leadrecord.LeadRecord{CallerFirstName: "Dana", AffectedRoomsCount: 3}
	if ok := AppendLead(context.Background(), "test-req", rec); ok {
		t.Fatalf("Expected AppendLead to report failure")
	}

	entries := readJournal(t, journalPath)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 journal entry, Got: %d", len(entries))
	}
	if entries[0].Data != rec {
		t.Errorf("Expected: %#v, Got: %#v", rec, entries[0].Data)
	}
}

func TestAppendLeadSuccessSkipsJournal(t *testing.T) {
	journalPath := setupConfig(t)
	original := appendRow
	defer func() { appendRow = original }()
	var gotRow []interface{}
	appendRow = func(ctx context.Context, row []interface{}) error {
		gotRow = row
		return nil
	}

	rec := leadrecord.LeadRecord{CallerFirstName: "Dana"}
	if ok := AppendLead(context.Background(), "test-req", rec); !ok {
		t.Fatalf("Expected AppendLead to report success")
	}
	if len(gotRow) != 11 {
		t.Fatalf("Expected an 11 column row, Got: %d", len(gotRow))
	}
	if _, err := os.Stat(journalPath); !os.IsNotExist(err) {
		t.Errorf("Expected no journal file on success")
	}
}
