package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Settings configures the server process. Content, themes and locales are
// read from disk; everything else comes from flags, env or linkshare.toml.
type Settings struct {
	ContentDir string `mapstructure:"content_dir"`
	ThemesDir  string `mapstructure:"themes_dir"`
	LocalesDir string `mapstructure:"locales_dir"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	BaseURL    string `mapstructure:"base_url"`
	Secret     string `mapstructure:"secret"`
	Dev        bool   `mapstructure:"dev"`
	Watch      bool   `mapstructure:"watch"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
	OutputDir  string `mapstructure:"output_dir"`
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("content_dir", "content")
	v.SetDefault("themes_dir", "themes")
	v.SetDefault("locales_dir", "locales")
	v.SetDefault("host", "")
	v.SetDefault("port", 3000)
	v.SetDefault("base_url", "")
	v.SetDefault("secret", "")
	v.SetDefault("dev", false)
	v.SetDefault("watch", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("output_dir", "public")
}

// LoadSettings decodes and validates the settings held by v.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "unable to decode settings")
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if s.ContentDir == "" {
		return errors.New("content directory cannot be empty")
	}
	if s.ThemesDir == "" {
		return errors.New("themes directory cannot be empty")
	}
	if s.Secret != "" && len(s.Secret) < 32 {
		return errors.New("secret must be at least 32 bytes")
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format %q", s.LogFormat)
	}
	return nil
}
