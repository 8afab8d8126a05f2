package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/viper"

	"github.com/agentstation/crmsync/pkg/errors"
)

// Environment keys for the CRM credentials.
const (
	DomainKey = "PIPEDRIVE_DOMAIN"
	APIKeyKey = "PIPEDRIVE_API_KEY"
)

var (
	apiKeyPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)
	domainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// GetAPIKey retrieves and validates the CRM API token. Tokens are 40
// lowercase hex characters.
func GetAPIKey() (string, error) {
	apiKey := GetString(APIKeyKey)
	if apiKey == "" {
		return "", &errors.ConfigError{
			Component: "pipedrive",
			Message:   fmt.Sprintf("environment variable %s not set", APIKeyKey),
			Err:       errors.ErrAPIKeyRequired,
		}
	}
	if !apiKeyPattern.MatchString(apiKey) {
		return "", &errors.ValidationError{
			Field:   APIKeyKey,
			Message: "API token must be 40 lowercase hex characters",
		}
	}
	return apiKey, nil
}

// GetDomain retrieves and validates the company domain, the first label
// of {domain}.pipedrive.com.
func GetDomain() (string, error) {
	domain := GetString(DomainKey)
	if domain == "" {
		return "", &errors.ConfigError{
			Component: "pipedrive",
			Message:   fmt.Sprintf("environment variable %s not set", DomainKey),
		}
	}
	if !domainPattern.MatchString(domain) {
		return "", &errors.ValidationError{
			Field:   DomainKey,
			Value:   domain,
			Message: "domain must be the company subdomain, e.g. acme for acme.pipedrive.com",
		}
	}
	return domain, nil
}

// CheckAPIKeyConfigured reports whether an API token is set, without
// validating it.
func CheckAPIKeyConfigured() bool {
	return GetString(APIKeyKey) != ""
}
