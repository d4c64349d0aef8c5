package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, FormatArgentine, cfg.Report.AmountFormat)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REPORT_AMOUNT_FORMAT", FormatAmerican)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr())
	assert.Equal(t, FormatAmerican, cfg.Report.AmountFormat)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_RejectsUnknownAmountFormat(t *testing.T) {
	t.Setenv("REPORT_AMOUNT_FORMAT", "german")

	_, err := Load()
	assert.Error(t, err)
}
