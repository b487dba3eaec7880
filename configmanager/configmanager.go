package configmanager

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/restoreflow/vapi-sheets-webhook/vlogger"
)

type appconfig struct {
	LoggerConf            vlogger.LoggerConf
	SpreadsheetID         string
	SheetRange            string
	VapiSecretToken       string
	VapiAPIBase           string
	VapiAPIToken          string
	GoogleCredentialsFile string
	FailureJournalPath    string
	DefaultRegion         string
	Port                  string
}

// ConfStore stores the configuration variables
var ConfStore *appconfig

// InitConfig initializes the config from the environment. A .env file in the
// working directory is loaded first when present.
func InitConfig() error {
	// Missing .env is fine, the environment may be set by the deployment
	_ = godotenv.Load()

	conf := &appconfig{
		LoggerConf: vlogger.LoggerConf{
			ProcessName: getEnv("PROCESS_NAME", "vapi-sheets-webhook"),
			LogSeverity: getEnv("LOG_SEVERITY", "INFO"),
			LogFileName: os.Getenv("LOG_FILE_NAME"),
			ConsoleLog:  getEnvBool("CONSOLE_LOG", true),
		},
		SpreadsheetID:         os.Getenv("SPREADSHEET_ID"),
		SheetRange:            getEnv("SHEET_NAME", "Sheet1"),
		VapiSecretToken:       os.Getenv("VAPI_SECRET_TOKEN"),
		VapiAPIBase:           getEnv("VAPI_API_BASE", "https://api.vapi.ai"),
		VapiAPIToken:          os.Getenv("VAPI_API_TOKEN"),
		GoogleCredentialsFile: getEnv("GOOGLE_SHEETS_CREDENTIALS_FILE", "credentials.json"),
		FailureJournalPath:    getEnv("SHEETS_FAILURE_LOG", ".tmp/sheets_failures.json"),
		DefaultRegion:         getEnv("DEFAULT_REGION", "US"),
		Port:                  getEnv("PORT", "8000"),
	}
	// Older deployments carried a single token for both the webhook secret
	// and the Vapi API. Keep honouring that.
	if conf.VapiAPIToken == "" {
		conf.VapiAPIToken = conf.VapiSecretToken
	}
	if conf.SpreadsheetID == "" {
		return errors.New("SPREADSHEET_ID is missing from the environment variables")
	}
	ConfStore = conf
	return nil
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
