package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Credentials are the service principal parameters read once at
// process start. They are handed to the session constructor and never
// consulted again; nothing else reads the environment mid-run.
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// LoadCredentials reads an optional .env-style file and then the
// process environment. An empty path skips the file and uses the
// environment alone. Missing values are not an error here: the session
// constructor falls back to the default Azure credential chain.
func LoadCredentials(envFile string) (Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Credentials{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	return Credentials{
		TenantID:     os.Getenv("AZURE_TENANT_ID"),
		ClientID:     os.Getenv("AZURE_CLIENT_ID"),
		ClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
	}, nil
}

// Complete reports whether all three service principal values are set.
func (c Credentials) Complete() bool {
	return c.TenantID != "" && c.ClientID != "" && c.ClientSecret != ""
}
