package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DefaultAppName = "taskboard"
	envPrefix      = "TASKBOARD"
)

type Config struct {
	// BoardFile is a YAML board definition. Empty means the built-in sample board.
	BoardFile string    `mapstructure:"board_file"`
	TaskIDs   string    `mapstructure:"task_ids"`
	Log       LogConfig `mapstructure:"log"`
	UI        UIConfig  `mapstructure:"ui"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type UIConfig struct {
	View        string `mapstructure:"view"`
	ShowDetails bool   `mapstructure:"show_details"`
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("board_file", "")
	v.SetDefault("task_ids", "uuid")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, DefaultAppName+".log"))
	v.SetDefault("ui.view", "kanban")
	v.SetDefault("ui.show_details", true)
}

// Load reads configuration from path, or from config.yaml in the user config
// directory when path is empty. A missing default file is not an error.
// TASKBOARD_* environment variables override file values.
func Load(path string) (*Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.UI.View) {
	case "kanban", "list":
	default:
		return fmt.Errorf("ui.view must be kanban or list, got %q", c.UI.View)
	}
	switch strings.ToLower(c.TaskIDs) {
	case "uuid", "sequential":
	default:
		return fmt.Errorf("task_ids must be uuid or sequential, got %q", c.TaskIDs)
	}
	return nil
}

// LogLevel returns the parsed log level; Validate guarantees it parses.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func DefaultDir() (string, error) {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(cfgDir, DefaultAppName), nil
}
