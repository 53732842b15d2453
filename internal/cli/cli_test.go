package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faanross/stegokey/internal/keyx"
	"github.com/faanross/stegokey/internal/stegerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDefaults(t *testing.T) {
	env, err := Setup("", false, nil)
	require.NoError(t, err)
	assert.Equal(t, 23, env.Group.Modulus())
	assert.False(t, env.Config.Compress)
	assert.NotNil(t, env.Engine)
}

func TestSetupOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("group:\n  generator: 5\n  modulus: 23\n"), 0o600))

	on := true
	env, err := Setup(path, true, &on)
	require.NoError(t, err)
	assert.True(t, env.Config.Compress)
	assert.Equal(t, "debug", env.Config.LogLevel)
	assert.Equal(t, 5, env.Engine.Group().Generator())
}

func TestKeyPairDerivesPublic(t *testing.T) {
	env, err := Setup("", false, nil)
	require.NoError(t, err)

	kp, err := env.KeyPair(6, -1)
	require.NoError(t, err)
	assert.Equal(t, keyx.KeyPair{Private: 6, Public: 3}, kp)

	kp, err = env.KeyPair(6, 16)
	require.NoError(t, err)
	assert.Equal(t, keyx.KeyPair{Private: 6, Public: 16}, kp)

	_, err = env.KeyPair(99, -1)
	assert.ErrorIs(t, err, stegerr.ErrInvalidKeyRange)
}
