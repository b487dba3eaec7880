package newrelic

import (
	"errors"
	"os"
)

// SendCustomEvent sends a custom event to newrelic. A no-op when the agent
// was not initialized.
func SendCustomEvent(metricName string, metric map[string]interface{}) error {
	if App == nil {
		return nil
	}
	hostName, err := os.Hostname()
	if err != nil {
		return errors.New("Failed sending the metric. Hostname not found")
	}
	metric["host"] = hostName
	App.RecordCustomEvent(metricName, metric)
	return nil
}
