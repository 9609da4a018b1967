package config

import (
	"io/ioutil"
	"time"

	"git.thinkinpower.net/cardtype/data"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config mirrors config.yaml. Command line flags override the file values.
type Config struct {
	Port     int          `yaml:"port"`
	Mode     string       `yaml:"mode"`      // dev, test or release
	LogLevel string       `yaml:"log_level"` // logrus level name
	Server   ServerConfig `yaml:"server"`
	BinData  BinConfig    `yaml:"bin_data"`
}

type ServerConfig struct {
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes"`
}

type BinConfig struct {
	DataDir string `yaml:"data_dir"` // empty disables the BIN directory
	Mode    string `yaml:"mode"`     // memory
	Watch   bool   `yaml:"watch"`    // reload data files on change
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.Mode == "" {
		c.Mode = data.RunModeDev
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Server.MaxHeaderBytes == 0 {
		c.Server.MaxHeaderBytes = 1 << 20
	}
	if c.BinData.Mode == "" {
		c.BinData.Mode = data.BinDatabaseModeMemory
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	switch c.Mode {
	case data.RunModeDev, data.RunModeTest, data.RunModeRelease:
	default:
		return errors.Errorf("invalid mode %q, want dev, test or release", c.Mode)
	}
	switch c.BinData.Mode {
	case data.BinDatabaseModeMemory, data.BinDatabaseModeRedis:
	default:
		return errors.Errorf("invalid bin_data.mode %q", c.BinData.Mode)
	}
	return nil
}
