package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSheetsRange is the fixed range treated as the whole lead dataset.
const DefaultSheetsRange = "LeadsDB!A:D"

// ErrMissingSheetsCredentials is returned when the spreadsheet settings are incomplete.
var ErrMissingSheetsCredentials = errors.New("config: missing google sheets settings")

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	// Google Sheets store
	SpreadsheetID      string
	SheetsRange        string
	GoogleClientEmail  string
	GooglePrivateKey   string
	SheetsEndpointBase string
	SheetsDiagnostics  bool
	ShutdownTimeout    time.Duration

	// Presentation site
	WebPort    string
	APIBaseURL string

	// SendGrid lead notifications
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SendGridHost      string
	LeadNotifyEmail   string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "3500"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		SpreadsheetID:      getEnv("SPREADSHEET_ID", ""),
		SheetsRange:        getEnv("SHEETS_RANGE", DefaultSheetsRange),
		GoogleClientEmail:  getEnv("GOOGLE_CLIENT_EMAIL", ""),
		GooglePrivateKey:   getEnv("GOOGLE_PRIVATE_KEY", ""),
		SheetsEndpointBase: getEnv("SHEETS_ENDPOINT", ""),
		SheetsDiagnostics:  getEnvAsBool("SHEETS_DIAGNOSTICS", false),
		ShutdownTimeout:    getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		WebPort:    getEnv("WEB_PORT", "3000"),
		APIBaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3500"), "/"),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Portfolio"),
		SendGridHost:      getEnv("SENDGRID_HOST", ""),
		LeadNotifyEmail:   getEnv("LEAD_NOTIFY_EMAIL", ""),
	}
}

// ValidateSheets reports which spreadsheet settings are missing. Credentials
// have no defaults.
func (c *Config) ValidateSheets() error {
	var missing []string
	if strings.TrimSpace(c.SpreadsheetID) == "" {
		missing = append(missing, "SPREADSHEET_ID")
	}
	if strings.TrimSpace(c.GoogleClientEmail) == "" {
		missing = append(missing, "GOOGLE_CLIENT_EMAIL")
	}
	if strings.TrimSpace(c.GooglePrivateKey) == "" {
		missing = append(missing, "GOOGLE_PRIVATE_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSheetsCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// NotificationsEnabled is true when every SendGrid setting needed to mail the
// site owner is present.
func (c *Config) NotificationsEnabled() bool {
	return c.SendGridAPIKey != "" && c.SendGridFromEmail != "" && c.LeadNotifyEmail != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated environment variable.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
