package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	gcovenant "github.com/Laisky/go-covenant"
	gcrypto "github.com/Laisky/go-covenant/crypto"
	"github.com/Laisky/go-covenant/log"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := New()
	scheme, err := cfg.Scheme()
	require.NoError(t, err)
	require.Equal(t, gcrypto.SchemeSecp256k1Schnorr, scheme.Name())

	ht, err := cfg.HashType()
	require.NoError(t, err)
	require.Equal(t, gcovenant.HashTypeSha256, ht)
	require.Equal(t, 4, cfg.GetInt(KeyWorkers))

	logger, err := cfg.Logger("test")
	require.NoError(t, err)
	require.Equal(t, log.LevelInfo, logger.Level())
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	fpath := filepath.Join(t.TempDir(), "settings.yml")
	require.NoError(t, os.WriteFile(fpath, []byte(`
scheme: ed25519-schnorr
commitment:
  hash: blake256
verify:
  workers: 8
log:
  level: warn
  encoding: json
`), 0600))

	cfg := New()
	require.NoError(t, cfg.LoadFromFile(fpath))

	scheme, err := cfg.Scheme()
	require.NoError(t, err)
	require.Equal(t, gcrypto.SchemeEd25519Schnorr, scheme.Name())

	ht, err := cfg.HashType()
	require.NoError(t, err)
	require.Equal(t, gcovenant.HashTypeBlake256, ht)
	require.Equal(t, 8, cfg.GetInt(KeyWorkers))

	logger, err := cfg.Logger("test")
	require.NoError(t, err)
	require.Equal(t, log.LevelWarn, logger.Level())

	require.Error(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.yml")))
}

func TestInvalidSettings(t *testing.T) {
	t.Parallel()

	cfg := New()
	for _, ht := range []string{"xxhash", "sha512", "md5"} {
		cfg.Set(KeyHashType, ht)
		_, err := cfg.HashType()
		require.Error(t, err, ht)
	}

	cfg.Set(KeyHashType, "blake256")
	ht, err := cfg.HashType()
	require.NoError(t, err)
	require.Equal(t, gcovenant.HashTypeBlake256, ht)

	cfg.Set(KeyScheme, "rabin")
	_, err = cfg.Scheme()
	require.Error(t, err)
}

func TestBindPFlags(t *testing.T) {
	t.Parallel()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Bool(KeyDebug, false, "debug")
	require.NoError(t, fs.Parse([]string{"--debug"}))

	cfg := New()
	require.NoError(t, cfg.BindPFlags(fs))
	require.True(t, cfg.GetBool(KeyDebug))

	logger, err := cfg.Logger("test")
	require.NoError(t, err)
	require.Equal(t, log.LevelDebug, logger.Level())
}
