package lazy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/go-auth-session/pkg/lazy"
)

func TestLoader_Load_CallsProviderOnce(t *testing.T) {
	calls := 0
	loader := lazy.New(func() (int, error) {
		calls++
		return 42, nil
	})

	loaded := 0
	loader.IfLoaded(func(int) { loaded++ })
	assert.Zero(t, loaded)

	assert.Equal(t, 42, loader.MustLoad())
	value, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.Equal(t, 1, calls)

	loader.IfLoaded(func(int) { loaded++ })
	assert.Equal(t, 1, loaded)
}

func TestLoader_MustLoad_PanicsOnProviderError(t *testing.T) {
	loader := lazy.New(func() (string, error) {
		return "", errors.New("unexpected")
	})

	assert.Panics(t, func() { loader.MustLoad() })
}

func TestLoader_Load_CachesProviderError(t *testing.T) {
	calls := 0
	loader := lazy.New(func() (int, error) {
		calls++
		return 0, errors.New("unexpected")
	})

	_, err := loader.Load()
	require.Error(t, err)
	_, err = loader.Load()
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	loader.IfLoaded(func(int) { t.Fatal("must not be called for failed loader") })
}
