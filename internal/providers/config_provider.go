package providers

import (
	"fmt"
	"path/filepath"
	"sentinel/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "SENTINEL_LOG_LEVEL")
	viper.BindEnv("storage.backend", "SENTINEL_STORAGE_BACKEND")
	viper.BindEnv("storage.dsn", "SENTINEL_STORAGE_DSN")
	viper.BindEnv("storage.redisAddr", "SENTINEL_REDIS_ADDR")
	viper.BindEnv("storage.blobEndpoint", "SENTINEL_BLOB_ENDPOINT")
	viper.BindEnv("monitor.interval", "SENTINEL_CHECK_INTERVAL")
	viper.BindEnv("auth.adminUser", "SENTINEL_ADMIN_USERNAME")
	viper.BindEnv("auth.adminPasswordHash", "SENTINEL_ADMIN_PASSWORD_HASH")
	viper.BindEnv("auth.sessionSecret", "SENTINEL_SESSION_SECRET")
	viper.BindEnv("auth.challengeSecret", "SENTINEL_CHALLENGE_SECRET")
	viper.BindEnv("cache.enabled", "SENTINEL_CACHE_ENABLED")
	viper.BindEnv("cache.size", "SENTINEL_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	if conf.Auth.SessionTTL <= 0 {
		conf.Auth.SessionTTL = 24 * time.Hour
	}
	if conf.Auth.ChallengeTTL <= 0 {
		conf.Auth.ChallengeTTL = 5 * time.Minute
	}

	conf.AppName = "SentinelNav"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
