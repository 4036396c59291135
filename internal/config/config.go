// Package config loads the client settings from a config file, OTRF_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/OpenTraceLab/OpenTraceRF/internal/logging"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

// Setting keys. Environment variables are the upper-cased key with the
// OTRF_ prefix, e.g. OTRF_BACKEND_URL.
const (
	KeyBackendURL  = "backend_url"
	KeyTimeout     = "timeout"
	KeyZ0          = "z0"
	KeyRadius      = "radius"
	KeyResistances = "resistances"
	KeyReactances  = "reactances"
	KeyLogLevel    = "log_level"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "OTRF"

// Config holds the client settings.
type Config struct {
	BackendURL  string        `mapstructure:"backend_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Z0          float64       `mapstructure:"z0"`
	ChartRadius float64       `mapstructure:"radius"`
	Resistances []float64     `mapstructure:"resistances"`
	Reactances  []float64     `mapstructure:"reactances"`
	LogLevel    string        `mapstructure:"log_level"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	sc := smith.DefaultConfig()
	return Config{
		BackendURL:  backend.DefaultBaseURL,
		Timeout:     10 * time.Second,
		Z0:          sc.Z0,
		ChartRadius: sc.Radius,
		Resistances: sc.Resistances,
		Reactances:  sc.Reactances,
		LogLevel:    "info",
	}
}

// Dir returns the platform config directory. It is not created.
func Dir() (string, error) {
	// Windows: %APPDATA%\OpenTraceRF
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "OpenTraceRF"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	// Linux/macOS: ~/.config/opentracerf
	return filepath.Join(homeDir, ".config", "opentracerf"), nil
}

// New returns a viper instance with defaults, environment binding and the
// config search path set up.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyBackendURL, d.BackendURL)
	v.SetDefault(KeyTimeout, d.Timeout)
	v.SetDefault(KeyZ0, d.Z0)
	v.SetDefault(KeyRadius, d.ChartRadius)
	v.SetDefault(KeyResistances, d.Resistances)
	v.SetDefault(KeyReactances, d.Reactances)
	v.SetDefault(KeyLogLevel, d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
	}
	return v
}

// Load reads the config file into v and decodes the merged settings. An
// explicit file must exist; the default search path may come up empty.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the settings held by v to path, creating its directory.
// The format follows the file extension.
func Save(v *viper.Viper, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return v.WriteConfigAs(path)
}

// Settings returns a viper instance holding c, ready for Save.
func (c Config) Settings() *viper.Viper {
	v := viper.New()
	v.Set(KeyBackendURL, c.BackendURL)
	v.Set(KeyTimeout, c.Timeout.String())
	v.Set(KeyZ0, c.Z0)
	v.Set(KeyRadius, c.ChartRadius)
	v.Set(KeyResistances, c.Resistances)
	v.Set(KeyReactances, c.Reactances)
	v.Set(KeyLogLevel, c.LogLevel)
	return v
}

// Validate reports every unusable setting.
func (c Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.BackendURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("backend_url must be an absolute URL, got %q", c.BackendURL))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	if err := c.Smith().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Smith returns the chart engine configuration.
func (c Config) Smith() smith.Config {
	return smith.Config{
		Z0:          c.Z0,
		Radius:      c.ChartRadius,
		Resistances: c.Resistances,
		Reactances:  c.Reactances,
	}
}

// Client returns a backend client honouring BackendURL and Timeout.
func (c Config) Client() *backend.Client {
	cl := backend.NewClient(c.BackendURL)
	cl.HTTP = &http.Client{Timeout: c.Timeout}
	return cl
}
