package newrelic

import (
	"os"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// App contains the newrelic application. Stays nil when no license key is
// configured, custom events are then dropped.
var App *newrelic.Application

// InitNewRelicApp initializes the New Relic app
func InitNewRelicApp() error {
	license := os.Getenv("NEW_RELIC_LICENSE_KEY")
	if license == "" {
		return nil
	}
	var err error
	App, err = newrelic.NewApplication(
		newrelic.ConfigAppName("Vapi Sheets Webhook"),
		newrelic.ConfigLicense(license),
	)
	if err != nil {
		return err
	}
	return nil
}
