package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/vaultpost/vaultpost/internal/config"
	"github.com/vaultpost/vaultpost/internal/log"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	ConfigPath string
	ServerURL  string
	Wallet     string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	defaultConfigPath := filepath.Join(homedir.HomeDir(), ".vaultpost", "config.yaml")
	app.Flag("config", "Path to the configuration file.").Envar("VAULTPOST_CONFIG").Default(defaultConfigPath).StringVar(&c.ConfigPath)
	app.Flag("server-url", "Base URL of the local vaultpost server.").Envar("VAULTPOST_SERVER_URL").StringVar(&c.ServerURL)
	app.Flag("wallet", "Wallet the operations act on.").Envar("VAULTPOST_WALLET").StringVar(&c.Wallet)

	return c
}

// LoadConfig loads the configuration file and lets command line flags
// override whatever the file sets.
func (c *RootCommand) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}

	if c.ServerURL != "" {
		cfg.ServerURL = c.ServerURL
	}
	if c.Wallet != "" {
		cfg.Wallet = c.Wallet
	}

	return cfg, nil
}
