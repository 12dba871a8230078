package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/icdmap/pkg/constants"
	"github.com/agentstation/icdmap/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Catalog source defaults
	Models string
	DB     string

	// Diagram defaults
	Layout       string
	Palette      map[string]string
	DefaultColor string

	// Documentation defaults
	SubsystemPrefixes map[string]string

	// Logging configuration. LogLevel is the explicit --log-level flag;
	// EnvLogLevel comes from LOG_LEVEL and ranks below -v and -q.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (ICDMAP_ prefix)
// 3. .env files
// 4. Config file (~/.icdmap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	v := newViper()
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigName)
	}

	// A missing default config file is fine
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && v.GetString("config") != "" {
			return nil, errors.NewConfigError("config file", "cannot read "+v.GetString("config"), err)
		}
	}
	return fromViper(v), nil
}

// ReadFile loads path over c. Flags parsed later still take precedence.
func (c *Config) ReadFile(path string) error {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.NewConfigError("config file", "cannot read "+path, err)
	}
	loaded := fromViper(v)
	loaded.Verbose, loaded.Quiet, loaded.NoColor, loaded.Format = c.Verbose, c.Quiet, c.NoColor, c.Format
	loaded.LogLevel = c.LogLevel
	*c = *loaded
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("layout", constants.DefaultLayout)
	v.SetDefault("default_color", constants.DefaultNodeColor)
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
	return v
}

func fromViper(v *viper.Viper) *Config {
	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Models: v.GetString("models"),
		DB:     v.GetString("db"),

		Layout:       v.GetString("layout"),
		Palette:      v.GetStringMapString("palette"),
		DefaultColor: v.GetString("default_color"),

		SubsystemPrefixes: upperKeys(v.GetStringMapString("subsystem_prefixes")),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   v.GetString("log.format"),
		LogOutput:   v.GetString("log.output"),
	}

	if len(config.Palette) == 0 {
		config.Palette = constants.DefaultPalette
	}
	if len(config.SubsystemPrefixes) == 0 {
		config.SubsystemPrefixes = constants.DefaultSubsystemPrefixes
	}
	return config
}

// upperKeys restores subsystem case, since viper lowercases map keys.
func upperKeys(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToUpper(k)] = v
	}
	return out
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	c.LogLevel = logLevel
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
