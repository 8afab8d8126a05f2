package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/crmsync/pkg/errors"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestGetStringPrefersViper(t *testing.T) {
	resetViper(t)
	t.Setenv(DomainKey, "from-env")

	assert.Equal(t, "from-env", GetString(DomainKey))

	viper.Set(DomainKey, "from-viper")
	assert.Equal(t, "from-viper", GetString(DomainKey))
}

func TestGetAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{"valid", "0123456789abcdef0123456789abcdef01234567", nil},
		{"missing", "", errors.ErrAPIKeyRequired},
		{"too short", "0123456789abcdef", errors.ErrInvalidInput},
		{"uppercase", "0123456789ABCDEF0123456789ABCDEF01234567", errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv(APIKeyKey, tt.value)

			key, err := GetAPIKey()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, key)
		})
	}
}

func TestGetDomain(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "acme", false},
		{"with dash", "acme-norge", false},
		{"missing", "", true},
		{"full host", "acme.pipedrive.com", true},
		{"url", "https://acme", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv(DomainKey, tt.value)

			domain, err := GetDomain()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, domain)
		})
	}
}

func TestCheckAPIKeyConfigured(t *testing.T) {
	resetViper(t)
	t.Setenv(APIKeyKey, "")
	assert.False(t, CheckAPIKeyConfigured())

	t.Setenv(APIKeyKey, "not-validated")
	assert.True(t, CheckAPIKeyConfigured())
}
