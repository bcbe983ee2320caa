// Package config provides configuration management for nodectl.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Provider defines the interface for configuration providers.
type Provider interface {
	// GetConfig returns the current application configuration.
	GetConfig() *Settings
	// SetConfig sets the application configuration.
	SetConfig(c *Settings)
	// InitConfig initializes the application configuration.
	InitConfig() *Settings
	// SetConfigFilePath sets the configuration file path.
	SetConfigFilePath(p string)
}

// defaultConfigProvider implements the Provider interface.
type defaultConfigProvider struct {
	cfg *Settings
}

// NewDefaultConfigProvider creates a new default config provider.
func NewDefaultConfigProvider() Provider {
	return &defaultConfigProvider{}
}

var defaultProvider = NewDefaultConfigProvider()

// Default configuration values for nodectl. Unit names, the participation
// client location, and the logserver port can all be overridden through the
// config file.
const (
	DefaultBinaryPath    = "/usr/local/bin/trellis-node"
	DefaultServiceName   = "trellis-node"
	DefaultLogServerName = "trellis-node-logserver"
	DefaultUnitDir       = "/etc/systemd/system"
	DefaultUserUnitDir   = "$HOME/.config/systemd/user"
	DefaultServiceUser   = "trellis-node"
	DefaultWorkingDir    = "/var/lib/trellis-node"
	DefaultLogServerPort = 8686
	DefaultLogLines      = 50
	DefaultUserMode      = false
	DefaultVerbose       = false
)

// Settings represents the configuration for nodectl: where the participation
// client lives, how the generated units are named, and how the logserver is
// exposed.
type Settings struct {
	BinaryPath    string `mapstructure:"binaryPath"`
	ServiceName   string `mapstructure:"serviceName"`
	LogServerName string `mapstructure:"logServerName"`
	UnitDir       string `mapstructure:"unitDir"`
	ServiceUser   string `mapstructure:"serviceUser"`
	WorkingDir    string `mapstructure:"workingDir"`
	LogServerPort int    `mapstructure:"logServerPort"`
	LogLines      int    `mapstructure:"logLines"`
	UserMode      bool   `mapstructure:"userMode"`
	Verbose       bool   `mapstructure:"verbose"`
}

func (p *defaultConfigProvider) SetConfig(c *Settings) {
	p.cfg = c
}

func (p *defaultConfigProvider) GetConfig() *Settings {
	return p.cfg
}

func (p *defaultConfigProvider) SetConfigFilePath(path string) {
	viper.SetConfigFile(path)
}

func (p *defaultConfigProvider) InitConfig() *Settings {
	p.cfg = initConfigInternal()
	return p.cfg
}

// For convenience - pass through to default provider

// SetConfig sets the application configuration.
func SetConfig(c *Settings) {
	defaultProvider.SetConfig(c)
}

// GetConfig returns the current application configuration.
func GetConfig() *Settings {
	return defaultProvider.GetConfig()
}

// SetConfigFilePath sets the configuration file path.
func SetConfigFilePath(p string) {
	defaultProvider.SetConfigFilePath(p)
}

// InitConfig initializes the application configuration.
func InitConfig() *Settings {
	return defaultProvider.InitConfig()
}

func initConfigInternal() *Settings {
	cfg := &Settings{
		BinaryPath:    DefaultBinaryPath,
		ServiceName:   DefaultServiceName,
		LogServerName: DefaultLogServerName,
		UnitDir:       DefaultUnitDir,
		ServiceUser:   DefaultServiceUser,
		WorkingDir:    DefaultWorkingDir,
		LogServerPort: DefaultLogServerPort,
		LogLines:      DefaultLogLines,
		UserMode:      DefaultUserMode,
		Verbose:       DefaultVerbose,
	}

	viper.SetDefault("binaryPath", DefaultBinaryPath)
	viper.SetDefault("serviceName", DefaultServiceName)
	viper.SetDefault("logServerName", DefaultLogServerName)
	viper.SetDefault("unitDir", DefaultUnitDir)
	viper.SetDefault("serviceUser", DefaultServiceUser)
	viper.SetDefault("workingDir", DefaultWorkingDir)
	viper.SetDefault("logServerPort", DefaultLogServerPort)
	viper.SetDefault("logLines", DefaultLogLines)
	viper.SetDefault("userMode", DefaultUserMode)
	viper.SetDefault("verbose", DefaultVerbose)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(os.ExpandEnv("$HOME/.config/nodectl"))
	viper.AddConfigPath("/etc/nodectl")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		panic(err)
	}

	return cfg
}

// ApplyUserMode switches path defaults to their per-user equivalents. Paths
// already overridden by the operator are left alone.
func ApplyUserMode(cfg *Settings) {
	cfg.UserMode = true
	if cfg.UnitDir == DefaultUnitDir {
		cfg.UnitDir = os.ExpandEnv(DefaultUserUnitDir)
	}
}
