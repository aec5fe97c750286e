package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingKeyIsFatal(t *testing.T) {
	t.Setenv("SITELENS_API_KEY", "")
	t.Setenv("SITELENS_API_BASE_URL", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SITELENS_API_KEY", "sk_test_123")
	t.Setenv("SITELENS_API_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sk_test_123", cfg.APIKey)
	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	t.Setenv("SITELENS_API_KEY", "sk_test_123")
	t.Setenv("SITELENS_API_BASE_URL", "https://staging.sitelens.io/")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://staging.sitelens.io", cfg.BaseURL)
}
