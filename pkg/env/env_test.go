package env_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/go-auth-session/pkg/env"
)

func TestParse_ReturnsValue(t *testing.T) {
	t.Setenv("SESSION_RENEWAL_LEEWAY", "45s")

	leeway, err := env.Parse[time.Duration]("SESSION_RENEWAL_LEEWAY")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, leeway)
}

func TestParse_ErrorWhenNotFound(t *testing.T) {
	_, err := env.Parse[string]("ENV_TEST_SURELY_NOT_SET")
	assert.Error(t, err)
}

func TestParseOptional(t *testing.T) {
	t.Setenv("VERIFICATION_TOKEN_TTL_HOURS", "48")

	hours, err := env.ParseOptional[int]("VERIFICATION_TOKEN_TTL_HOURS")
	require.NoError(t, err)
	require.NotNil(t, hours)
	assert.Equal(t, 48, *hours)

	missing, err := env.ParseOptional[int]("ENV_TEST_SURELY_NOT_SET")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestParseOrDefault(t *testing.T) {
	t.Setenv("ENV_TEST_INVALID_INT", "many")

	value, err := env.ParseOrDefault("ENV_TEST_SURELY_NOT_SET", 24)
	require.NoError(t, err)
	assert.Equal(t, 24, value)

	_, err = env.ParseOrDefault("ENV_TEST_INVALID_INT", 24)
	assert.Error(t, err)
}

func TestMust_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		env.Must(env.Parse[string]("ENV_TEST_SURELY_NOT_SET"))
	})
}
