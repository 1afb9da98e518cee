package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pion/stun/v3"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var (
	ErrInvalidICEServer = errors.New("invalid ice server url")
	ErrInvalidKeepalive = errors.New("ping_period must be shorter than pong_wait")
)

// ICEServer mirrors the browser RTCIceServer dictionary.
type ICEServer struct {
	URLs       []string `mapstructure:"urls"`
	Username   string   `mapstructure:"username"`
	Credential string   `mapstructure:"credential"`
}

type Config struct {
	Mode           string        `mapstructure:"mode"`
	Port           int           `mapstructure:"port"`
	LogLevel       string        `mapstructure:"log_level"`
	Secret         string        `mapstructure:"secret"`
	FrontendURL    string        `mapstructure:"frontend_url"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadLimit      int64         `mapstructure:"read_limit"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	PingPeriod     time.Duration `mapstructure:"ping_period"`
	SendBuffer     int           `mapstructure:"send_buffer"`
	MaxDrops       int           `mapstructure:"max_drops"`
	MaxNameLen     int           `mapstructure:"max_name_len"`
	FloodLimit     int           `mapstructure:"flood_limit"`
	FloodInterval  time.Duration `mapstructure:"flood_interval"`
	ICEServers     []ICEServer   `mapstructure:"ice_servers"`
}

// Load reads config/config.<CONFIG_ENV>.yaml (dev by default) on top of the
// built-in defaults. PORT and FRONTEND_URL override the file.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return load(fmt.Sprintf("config/config.%s.yaml", env))
}

func load(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	setDefaults(v)
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("frontend_url", "FRONTEND_URL")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.FrontendURL != "" {
		cfg.AllowedOrigins = lo.Uniq(append(cfg.AllowedOrigins, cfg.FrontendURL))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Strs("origins", cfg.AllowedOrigins).
		Int("ice_servers", len(cfg.ICEServers)).
		Msg("config ready")
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8000)
	v.SetDefault("log_level", "info")
	v.SetDefault("secret", "meet-dev-secret")
	v.SetDefault("allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("read_limit", 65536)
	v.SetDefault("write_wait", "10s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("ping_period", "54s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("max_drops", 0)
	v.SetDefault("max_name_len", 36)
	v.SetDefault("flood_limit", 20)
	v.SetDefault("flood_interval", "5s")
	v.SetDefault("ice_servers", []map[string]any{
		{"urls": []string{"stun:stun.l.google.com:19302"}},
	})
}

// Validate checks the values that would otherwise fail at runtime.
func (c *Config) Validate() error {
	if c.PingPeriod >= c.PongWait {
		return fmt.Errorf("%w: ping_period=%s pong_wait=%s", ErrInvalidKeepalive, c.PingPeriod, c.PongWait)
	}
	for _, s := range c.ICEServers {
		for _, raw := range s.URLs {
			if _, err := stun.ParseURI(raw); err != nil {
				return fmt.Errorf("%w %q: %v", ErrInvalidICEServer, raw, err)
			}
		}
	}
	return nil
}
