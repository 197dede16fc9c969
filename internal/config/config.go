// Package config loads the command line settings of bgrules.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables read by Setup, e.g.
// BGRULES_SAVE_DIR.
const EnvPrefix = "BGRULES"

type Config struct {
	SaveDir   string `mapstructure:"save_dir"`
	Seed      uint64 `mapstructure:"seed"` // 0 seeds from the clock
	Color     bool   `mapstructure:"color"`
	LogLevel  string `mapstructure:"log_level"`
	WhiteName string `mapstructure:"white_name"`
	RedName   string `mapstructure:"red_name"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("save_dir", ".")
	v.SetDefault("seed", 0)
	v.SetDefault("color", true)
	v.SetDefault("log_level", "warn")
	v.SetDefault("white_name", "White")
	v.SetDefault("red_name", "Red")
}

// Setup reads cfgPath when it is not empty, then the environment. Missing
// keys keep their defaults.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
