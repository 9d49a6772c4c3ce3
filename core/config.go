package core

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/netkat-io/netkat-core/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const DefaultConfigFile = "netkat.yaml"

// Config carries the command-line tool's defaults. Flags override
// whatever the configuration file set.
type Config struct {
	Verbose    bool          `yaml:"verbose"`
	Hex        bool          `yaml:"hex"`
	Timeout    time.Duration `yaml:"timeout,omitempty"`
	OutputFile string        `yaml:"output_file,omitempty"` // raw session byte log
	LogLevel   logger.Level  `yaml:"log_level"`
	LogFile    string        `yaml:"log_file,omitempty"` // rotated tool log; empty logs to stderr
	LogMaxMB   int           `yaml:"log_max_mb,omitempty"`
	LogBackups int           `yaml:"log_backups,omitempty"`
}

func (c *Config) Default() {
	c.LogLevel = logger.LevelInfo
	c.LogMaxMB = 10
	c.LogBackups = 3
}

func LoadConfig(conf *Config, path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(buf, conf)
}

func SaveConfig(conf *Config, path string) error {
	buf, err := yaml.Marshal(conf)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0600)
}

func (c *Config) RegisterFlags(f *pflag.FlagSet, cmd *cobra.Command) {
	f.StringP("config-file", "c", "", "Configuration file path")
	f.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Echo transferred data and operation headers")
	f.BoolVarP(&c.Hex, "hex", "x", c.Hex, "Echo data as a hex dump instead of lines")
	f.DurationVarP(&c.Timeout, "timeout", "w", c.Timeout, "Persistent receive timeout (0 blocks forever)")
	f.StringVarP(&c.OutputFile, "output", "o", c.OutputFile, "Mirror all transferred bytes to a file")
	f.TextVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: [error, warn, info, debug]")
	f.StringVar(&c.LogFile, "log-file", c.LogFile, "Write tool logs to a rotated file instead of stderr")
	cmd.MarkFlagFilename("config-file")
	cmd.MarkFlagFilename("output")
	cmd.MarkFlagFilename("log-file")
}

// FromCmdline loads the configuration file when one was named, then lets
// changed flags win.
func (c *Config) FromCmdline(f *pflag.FlagSet) error {
	confPath, err := f.GetString("config-file")
	if err != nil {
		panic(err)
	}
	if confPath == "" {
		return nil
	}
	saved := *c
	if err := LoadConfig(c, confPath); err != nil {
		return err
	}
	if f.Changed("verbose") {
		c.Verbose = saved.Verbose
	}
	if f.Changed("hex") {
		c.Hex = saved.Hex
	}
	if f.Changed("timeout") {
		c.Timeout = saved.Timeout
	}
	if f.Changed("output") {
		c.OutputFile = saved.OutputFile
	}
	if f.Changed("log-level") {
		c.LogLevel = saved.LogLevel
	}
	if f.Changed("log-file") {
		c.LogFile = saved.LogFile
	}
	return nil
}
