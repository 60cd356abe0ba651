package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/shipmgr/internal/paths"
	"github.com/mesh-intelligence/shipmgr/internal/report"
	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// Config keys.
const (
	cfgKeyDataDir        = "data_dir"
	cfgKeyDBFile         = "db_file"
	cfgKeyLogLevel       = "log_level"
	cfgKeyLogFile        = "log_file"
	cfgKeyAdminPassword  = "admin_password"
	cfgKeySeedSampleData = "seed_sample_data"
	cfgKeyCurrency       = "currency"
)

const (
	envPrefix       = "SHIPMGR"
	defaultLogLevel = "warn"
)

// envKeys are the keys SHIPMGR_<KEY> may override. data_dir is resolved
// separately because the config file outranks SHIPMGR_DATA_DIR.
var envKeys = []string{
	cfgKeyDBFile,
	cfgKeyLogLevel,
	cfgKeyLogFile,
	cfgKeyAdminPassword,
	cfgKeySeedSampleData,
	cfgKeyCurrency,
}

// configFile is the structure written to a new config.yaml.
type configFile struct {
	DBFile         string `yaml:"db_file"`
	LogLevel       string `yaml:"log_level"`
	SeedSampleData bool   `yaml:"seed_sample_data"`
	Currency       string `yaml:"currency"`
}

const configHeader = `# shipmgr configuration.
# Optional keys: data_dir, log_file, admin_password.
# Every key except data_dir can be overridden with SHIPMGR_<KEY>.
`

// loadConfig resolves the directories and reads config.yaml, writing a
// default one on first run.
func (a *app) loadConfig() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolving config dir: %w", err))
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("creating config dir: %w", err))
	}
	a.dirs.Config = configDir

	if err := writeConfigIfMissing(a.dirs.ConfigFile()); err != nil {
		return sysError(fmt.Errorf("writing default config: %w", err))
	}

	v := viper.New()
	v.SetDefault(cfgKeyDBFile, types.DefaultDBFile)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyCurrency, report.DefaultCurrency)
	v.SetConfigFile(a.dirs.ConfigFile())
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return sysError(err)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return sysError(fmt.Errorf("reading %s: %w", a.dirs.ConfigFile(), err))
		}
	}
	a.config = v

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir), configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolving data dir: %w", err))
	}
	a.dirs.Data = dataDir
	return nil
}

// storeConfig builds the store configuration from the loaded settings.
func (a *app) storeConfig(sampleData bool) types.Config {
	return types.Config{
		DataDir:        a.dirs.Data,
		DBFile:         a.config.GetString(cfgKeyDBFile),
		AdminPassword:  a.config.GetString(cfgKeyAdminPassword),
		SeedSampleData: sampleData || a.config.GetBool(cfgKeySeedSampleData),
	}
}

// writeConfigIfMissing creates config.yaml with default values. An existing
// file is left alone.
func writeConfigIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	data, err := yaml.Marshal(&configFile{
		DBFile:   types.DefaultDBFile,
		LogLevel: defaultLogLevel,
		Currency: report.DefaultCurrency,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}

// initLogger builds the slog text logger from --log-level or log_level,
// writing to stderr and, if configured, log_file.
func (a *app) initLogger(stderr io.Writer) error {
	name := a.flags.logLevel
	if name == "" {
		name = a.config.GetString(cfgKeyLogLevel)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return fmt.Errorf("invalid log level %q", name)
	}

	w := stderr
	if path := a.config.GetString(cfgKeyLogFile); path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(a.dirs.Config, path)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return sysError(fmt.Errorf("opening log file: %w", err))
		}
		a.logOut = f
		w = io.MultiWriter(stderr, f)
	}
	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return nil
}
