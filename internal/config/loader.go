package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides for any configuration key,
// e.g. MOTIVBOT_LOGGER_LEVEL for logger.level.
const EnvPrefix = "MOTIVBOT"

// ErrConfiguration wraps every loading or validation failure.
var ErrConfiguration = errors.New("configuration error")

// secrets maps configuration keys to the environment variables that
// supply them, in order of preference.
var secrets = map[string][]string{
	"telegram.token": {"TELEGRAM_TOKEN", EnvPrefix + "_TELEGRAM_TOKEN"},
	"gemini.api_key": {"GEMINI_API_KEY", EnvPrefix + "_GEMINI_API_KEY"},
}

// LoadConfig loads configuration from:
// 1. default values
// 2. the YAML file at path (optional; a missing file is not an error)
// 3. environment variables (MOTIVBOT_* overrides, plus TELEGRAM_TOKEN and GEMINI_API_KEY)
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, envs := range secrets {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("%w: failed to read config file %s: %v", ErrConfiguration, path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: failed to stat config file %s: %v", ErrConfiguration, path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}
