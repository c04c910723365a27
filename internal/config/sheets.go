package config

import (
	"os"
	"sync"
)

// SheetsConfig points at the Google API credentials used by the
// spreadsheet agent. CredentialsFile may hold either a service
// account key or OAuth installed-app client secrets; TokenFile caches
// the OAuth token between runs.
type SheetsConfig struct {
	CredentialsFile string
	TokenFile       string
}

var (
	sheetsConfig *SheetsConfig
	sheetsOnce   sync.Once
)

func LoadSheetsConfig() *SheetsConfig {
	sheetsOnce.Do(func() {
		creds := os.Getenv("GOOGLE_CREDENTIALS_FILE")
		if creds == "" {
			creds = "credentials.json"
		}
		token := os.Getenv("GOOGLE_TOKEN_FILE")
		if token == "" {
			token = "token.json"
		}
		sheetsConfig = &SheetsConfig{
			CredentialsFile: creds,
			TokenFile:       token,
		}
	})
	return sheetsConfig
}
