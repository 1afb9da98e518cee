package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	req := require.New(t)

	cfg, err := load(filepath.Join(t.TempDir(), "missing.yaml"))

	req.NoError(err)
	req.Equal(8000, cfg.Port)
	req.Equal("release", cfg.Mode)
	req.Equal(60*time.Second, cfg.PongWait)
	req.Equal(54*time.Second, cfg.PingPeriod)
	req.Equal(10*time.Second, cfg.WriteWait)
	req.Equal([]string{"http://localhost:3000"}, cfg.AllowedOrigins)
	req.Len(cfg.ICEServers, 1)
	req.Equal([]string{"stun:stun.l.google.com:19302"}, cfg.ICEServers[0].URLs)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	req := require.New(t)
	// Given a file and env overrides
	path := writeConfig(t, `
mode: debug
port: 9000
max_name_len: 12
flood_limit: 3
flood_interval: 1s
ice_servers:
  - urls: ["turn:turn.example.org:3478?transport=udp"]
    username: user
    credential: pass
`)
	t.Setenv("PORT", "9100")
	t.Setenv("FRONTEND_URL", "https://meet.example.org")

	// When loading
	cfg, err := load(path)

	// Then env wins over the file and the frontend origin is allowed
	req.NoError(err)
	req.Equal("debug", cfg.Mode)
	req.Equal(9100, cfg.Port)
	req.Equal(12, cfg.MaxNameLen)
	req.Equal(3, cfg.FloodLimit)
	req.Equal(time.Second, cfg.FloodInterval)
	req.Equal([]string{"http://localhost:3000", "https://meet.example.org"}, cfg.AllowedOrigins)
	req.Len(cfg.ICEServers, 1)
	req.Equal("user", cfg.ICEServers[0].Username)
	req.Equal("pass", cfg.ICEServers[0].Credential)
}

func TestLoad_FrontendAlreadyAllowed(t *testing.T) {
	req := require.New(t)
	path := writeConfig(t, `
allowed_origins: ["http://localhost:3000", "https://meet.example.org"]
frontend_url: https://meet.example.org
`)

	cfg, err := load(path)

	req.NoError(err)
	req.Equal([]string{"http://localhost:3000", "https://meet.example.org"}, cfg.AllowedOrigins)
}

func TestLoad_RejectsBadICEServer(t *testing.T) {
	req := require.New(t)
	path := writeConfig(t, `
ice_servers:
  - urls: ["http://not-a-stun-server"]
`)

	_, err := load(path)

	req.ErrorIs(err, ErrInvalidICEServer)
}

func TestValidate_Keepalive(t *testing.T) {
	req := require.New(t)
	cfg := &Config{PingPeriod: time.Minute, PongWait: time.Minute}

	req.ErrorIs(cfg.Validate(), ErrInvalidKeepalive)

	cfg.PingPeriod = 30 * time.Second
	req.NoError(cfg.Validate())
}
