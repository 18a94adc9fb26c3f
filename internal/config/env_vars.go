package config

import (
	"os"
	"time"
)

const (
	appNameVar = "APP_NAME"
	folderVar  = "FOLDER"
	apiURLVar  = "API_BASE_URL"
	timeoutVar = "REQUEST_TIMEOUT"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "PropDesk Console")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderVar, "./data")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

type Client struct{}

var _ ClientConfig = Client{}

// GetAPIBaseURL returns the base URL of the property-management API,
// including the "/api" prefix (e.g. "http://localhost:8000/api").
func (Client) GetAPIBaseURL() string {
	return GetEnv(apiURLVar, "http://localhost:8000/api")
}

func (Client) GetRequestTimeout() time.Duration {
	raw := GetEnv(timeoutVar, "30s")
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
