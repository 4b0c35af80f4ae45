package providers

import (
	"os"
	"path/filepath"
	"sentinel/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYaml = `
webServer:
  host: "127.0.0.1"
  port: 9090
storage:
  backend: "memory"
monitor:
  interval: 2h
  probeTimeout: 5s
auth:
  adminUser: "admin"
  adminPasswordHash: "$2a$10$hash"
  sessionSecret: "s1"
  challengeSecret: "s2"
logger:
  level: "info"
  mode: 0644
  dir: "/tmp"
cache:
  enabled: true
  size: 8
  ttl: 30s
metrics:
  enabled: false
seedSites:
  - title: "Google"
    url: "https://www.google.com"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfigProvider_LoadsYaml(t *testing.T) {
	path := writeTestConfig(t, testYaml)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "SentinelNav", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)

	assert.Equal(t, "127.0.0.1", conf.WebServer.Host)
	assert.Equal(t, 9090, conf.WebServer.Port)
	assert.Equal(t, "memory", conf.Storage.Backend)
	assert.Equal(t, 2*time.Hour, conf.Monitor.Interval)
	assert.Equal(t, 5*time.Second, conf.Monitor.ProbeTimeout)
	assert.Equal(t, "admin", conf.Auth.AdminUser)
	assert.Equal(t, 8, conf.Cache.Size)
	require.Len(t, conf.SeedSites, 1)
	assert.Equal(t, "Google", conf.SeedSites[0].Title)
}

func TestNewConfigProvider_TTLDefaults(t *testing.T) {
	path := writeTestConfig(t, testYaml)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, conf.Auth.SessionTTL)
	assert.Equal(t, 5*time.Minute, conf.Auth.ChallengeTTL)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: "/nonexistent/config.yaml"})
	assert.Error(t, err)
}

func TestNewTokenIssuer_FromConfig(t *testing.T) {
	conf := &structures.Config{
		Auth: structures.AuthConfig{
			SessionSecret:   "s1",
			ChallengeSecret: "s2",
			SessionTTL:      time.Hour,
			ChallengeTTL:    time.Minute,
		},
	}
	issuer := NewTokenIssuer(conf)
	require.NotNil(t, issuer)

	tok, err := issuer.IssueSession("admin", "admin")
	require.NoError(t, err)
	_, ok := issuer.VerifySession(tok)
	assert.True(t, ok)
}
