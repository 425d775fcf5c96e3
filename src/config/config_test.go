package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultURL(t *testing.T) {
	// t.Setenv registers the restore; the test itself needs the variable gone.
	t.Setenv("BUILD_PUBLISHER_URL", "placeholder")
	require.NoError(t, os.Unsetenv("BUILD_PUBLISHER_URL"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://gbp/", cfg.URL)
}

func TestLoadURLFromEnvironment(t *testing.T) {
	t.Setenv("BUILD_PUBLISHER_URL", "http://gbp.example.invalid:8000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://gbp.example.invalid:8000", cfg.URL)
}

func TestMustLoad(t *testing.T) {
	t.Setenv("BUILD_PUBLISHER_URL", "http://gbp.example.invalid")

	cfg := MustLoad()
	assert.Equal(t, "http://gbp.example.invalid", cfg.URL)
}
