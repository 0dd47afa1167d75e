package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Config is read from jclass.yaml and JCLASS_* environment variables;
// command line flags take precedence.
type Config struct {
	Verbose int    `mapstructure:"verbose"`
	LogFile string `mapstructure:"log_file"`
	Color   string `mapstructure:"color"`
}

type app struct {
	configPath string
	config     Config
	log        commonlog.Logger

	index   func(a ...any) string
	keyword func(a ...any) string
}

func loadConfig(cmd *cobra.Command, path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("verbose", 0)
	v.SetDefault("log_file", "")
	v.SetDefault("color", "auto")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("jclass")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("jclass")
	v.AutomaticEnv()

	if err := v.BindPFlag("verbose", cmd.Flags().Lookup("verbose")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("color", cmd.Flags().Lookup("color")); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("invalid color mode %q (expected auto, always or never)", cfg.Color)
	}

	return &cfg, nil
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, a.configPath)
	if err != nil {
		return err
	}
	a.config = *cfg

	var logPath *string
	if cfg.LogFile != "" {
		logPath = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbose, logPath)
	a.log = commonlog.GetLogger("jclass")

	switch cfg.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
	a.index = color.New(color.FgCyan).SprintFunc()
	a.keyword = color.New(color.FgYellow).SprintFunc()

	a.log.Debugf("config: verbose=%d color=%s", cfg.Verbose, cfg.Color)
	return nil
}
