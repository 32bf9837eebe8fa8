package app

import (
	"strings"
)

// Settings aggregates everything the relay server and the transfer job read
// from the environment. Loaded once at startup, after SetupEnvironment.
type Settings struct {
	SpreadsheetID   string
	CredentialsFile string

	ListenAddr  string
	CORSOrigins []string
	IPHashSalt  string

	// Optional overrides for the transfer job's sheet pair.
	SourceSheet string
	TargetSheet string

	// ntfy push notifications for transfer run summaries.
	NtfyEnabled bool
	NtfyURL     string
	NtfyTopic   string
}

// LoadSettings reads settings from the environment. SPREADSHEET_ID is the
// only hard requirement; everything else has a workable default.
func LoadSettings() Settings {
	return Settings{
		SpreadsheetID:   GetRequiredEnv("SPREADSHEET_ID"),
		CredentialsFile: GetEnvWithDefault("GOOGLE_SHEETS_CREDENTIALS_FILE", ""),
		ListenAddr:      GetEnvWithDefault("LISTEN_ADDR", ":8080"),
		CORSOrigins:     splitOrigins(GetEnvWithDefault("CORS_ORIGINS", "")),
		IPHashSalt:      GetEnvWithDefault("IP_HASH_SALT", ""),
		SourceSheet:     GetEnvWithDefault("SOURCE_SHEET", ""),
		TargetSheet:     GetEnvWithDefault("TARGET_SHEET", ""),
		NtfyEnabled:     GetEnvWithDefault("NTFY_ENABLED", "false") == "true",
		NtfyURL:         GetEnvWithDefault("NTFY_URL", "https://ntfy.sh"),
		NtfyTopic:       GetEnvWithDefault("NTFY_TOPIC", "moxalise-transfer"),
	}
}

// splitOrigins parses a comma-separated origin list; "*" stays a single
// wildcard entry.
func splitOrigins(value string) []string {
	if value == "" {
		return nil
	}
	if value == "*" {
		return []string{"*"}
	}
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
