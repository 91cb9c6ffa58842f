package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/dimaq12/sweeper/models"
)

type Config struct {
	Mode  string `mapstructure:"mode"`
	Board struct {
		Width  int   `mapstructure:"width"`
		Height int   `mapstructure:"height"`
		Mines  int   `mapstructure:"mines"`
		Seed   int64 `mapstructure:"seed"`
	} `mapstructure:"board"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Server struct {
		Addr     string `mapstructure:"addr"`
		MaxCells int    `mapstructure:"max_cells"`
	} `mapstructure:"server"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "tui")
	v.SetDefault("board.width", 10)
	v.SetDefault("board.height", 10)
	v.SetDefault("board.mines", 10)
	v.SetDefault("board.seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_cells", 10000)
}

// Load reads path if given, otherwise config/config.yaml when present.
// MINESWEEPER_BOARD_WIDTH style environment variables override the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("minesweeper")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	b := c.Board
	if b.Width <= 0 || b.Height <= 0 || b.Width > math.MaxInt/b.Height || b.Mines < 0 || b.Mines > b.Width*b.Height {
		return fmt.Errorf("%w: board %dx%d with %d mines", models.ErrInvalidConfiguration, b.Width, b.Height, b.Mines)
	}
	switch c.Mode {
	case "tui", "serve":
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	return nil
}

// NewLogger builds the process logger from the log section. In tui mode
// the terminal owns the screen, so log output is discarded.
func (c *Config) NewLogger() (*logrus.Logger, error) {
	logger := logrus.New()
	if c.Mode == "tui" {
		logger.SetOutput(io.Discard)
	}

	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	switch c.Log.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return logger, nil
}
