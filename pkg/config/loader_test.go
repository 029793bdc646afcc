package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pagebridge/pkg/config"
)

type bridgeTestConfig struct {
	Version string        `env:"PB_TEST_VERSION" envDefault:"v0"`
	Timeout time.Duration `env:"PB_TEST_TIMEOUT" envDefault:"2s"`
}

type requiredTestConfig struct {
	Secret string `env:"PB_TEST_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Setenv("PB_TEST_VERSION", "v7")

	var cfg bridgeTestConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "v7", cfg.Version)
	assert.Equal(t, 2*time.Second, cfg.Timeout)

	// Cached per type: later env changes are not observed.
	t.Setenv("PB_TEST_VERSION", "v8")
	var again bridgeTestConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "v7", again.Version)
}

func TestLoad_Errors(t *testing.T) {
	var nilCfg *bridgeTestConfig
	assert.ErrorIs(t, config.Load(nilCfg), config.ErrNilPointer)

	var req requiredTestConfig
	assert.ErrorIs(t, config.Load(&req), config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&req) })
}
