// Package config thread-safe settings of the verifier tools
package config

import (
	"strings"
	"sync"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	gcovenant "github.com/Laisky/go-covenant"
	"github.com/Laisky/go-covenant/commitment"
	gcrypto "github.com/Laisky/go-covenant/crypto"
	"github.com/Laisky/go-covenant/log"
)

// setting keys
const (
	KeyDebug        = "debug"
	KeyLogLevel     = "log.level"
	KeyLogEncoding  = "log.encoding"
	KeyScheme       = "scheme"
	KeyHashType     = "commitment.hash"
	KeyWorkers      = "verify.workers"
	KeySigCacheSize = "verify.sigcache_size"
)

// Config settings enhanced from viper.Viper with threadsafe
type Config struct {
	sync.RWMutex

	v *viper.Viper
}

// Shared is the settings for this project
var Shared = New()

// New new settings with defaults
func New() *Config {
	v := viper.New()
	v.SetEnvPrefix("covenant")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogLevel, log.LevelInfo.String())
	v.SetDefault(KeyLogEncoding, log.EncodingConsole.String())
	v.SetDefault(KeyScheme, gcrypto.SchemeSecp256k1Schnorr.String())
	v.SetDefault(KeyHashType, gcovenant.HashTypeSha256.String())
	v.SetDefault(KeyWorkers, 4)
	v.SetDefault(KeySigCacheSize, 1024)

	return &Config{v: v}
}

// BindPFlags bind pflags to settings
func (s *Config) BindPFlags(p *pflag.FlagSet) error {
	s.Lock()
	defer s.Unlock()

	return s.v.BindPFlags(p)
}

// BindPFlag bind a single flag to key
func (s *Config) BindPFlag(key string, flag *pflag.Flag) error {
	s.Lock()
	defer s.Unlock()

	return s.v.BindPFlag(key, flag)
}

// LoadFromFile load settings from yaml/json/toml file
func (s *Config) LoadFromFile(filePath string) error {
	s.Lock()
	defer s.Unlock()

	s.v.SetConfigFile(filePath)
	if err := s.v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config file %q", filePath)
	}

	return nil
}

// Get get setting by key
func (s *Config) Get(key string) interface{} {
	s.RLock()
	defer s.RUnlock()

	return s.v.Get(key)
}

// GetString get setting by key
func (s *Config) GetString(key string) string {
	s.RLock()
	defer s.RUnlock()

	return s.v.GetString(key)
}

// GetBool get setting by key
func (s *Config) GetBool(key string) bool {
	s.RLock()
	defer s.RUnlock()

	return s.v.GetBool(key)
}

// GetInt get setting by key
func (s *Config) GetInt(key string) int {
	s.RLock()
	defer s.RUnlock()

	return s.v.GetInt(key)
}

// Set set setting by key
func (s *Config) Set(key string, val interface{}) {
	s.Lock()
	defer s.Unlock()

	s.v.Set(key, val)
}

// Scheme configured signature scheme
func (s *Config) Scheme() (gcrypto.Scheme, error) {
	return gcrypto.SchemeByName(gcrypto.SchemeName(s.GetString(KeyScheme)))
}

// HashType configured commitment hash
func (s *Config) HashType() (gcovenant.HashType, error) {
	ht := gcovenant.HashType(s.GetString(KeyHashType))
	if err := commitment.CheckHashType(ht); err != nil {
		return "", errors.Wrapf(err, "invalid %s", KeyHashType)
	}

	return ht, nil
}

// Logger build logger from log.* settings
func (s *Config) Logger(name string) (log.Logger, error) {
	level := log.Level(s.GetString(KeyLogLevel))
	if s.GetBool(KeyDebug) {
		level = log.LevelDebug
	}

	return log.New(
		log.WithName(name),
		log.WithLevel(level),
		log.WithEncoding(log.Encoding(s.GetString(KeyLogEncoding))),
	)
}
