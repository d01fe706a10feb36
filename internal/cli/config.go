// Config loading for the canvas CLI.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/canvas/internal/capture"
	"github.com/mesh-intelligence/canvas/internal/logging"
	"github.com/mesh-intelligence/canvas/internal/paths"
	"github.com/mesh-intelligence/canvas/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "CANVAS"
	dotEnvFile     = ".env"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyCascade      = "cascade_piece_removal"
	cfgKeyMaxDimension = "image.max_dimension"
	cfgKeyJPEGQuality  = "image.jpeg_quality"
	cfgKeyLogLevel     = "log.level"
	cfgKeyLogFormat    = "log.format"
	cfgKeyLogFile      = "log.file"

	defaultBackend      = types.BackendSQLite
	defaultMaxDimension = 2048
)

// envKeys are the config keys that CANVAS_* variables may override.
// data_dir is resolved by the paths package, which reads CANVAS_DATA_DIR
// itself with lower precedence than config.yaml.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyCascade,
	cfgKeyMaxDimension,
	cfgKeyJPEGQuality,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
	cfgKeyLogFile,
}

// fileConfig is the structure written to config.yaml.
type fileConfig struct {
	Backend             string      `yaml:"backend"`
	DataDir             string      `yaml:"data_dir,omitempty"`
	CascadePieceRemoval bool        `yaml:"cascade_piece_removal"`
	Image               imageConfig `yaml:"image"`
	Log                 logConfig   `yaml:"log"`
}

type imageConfig struct {
	MaxDimension int `yaml:"max_dimension"`
	JPEGQuality  int `yaml:"jpeg_quality"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

func defaultFileConfig(dataDir string) fileConfig {
	return fileConfig{
		Backend: defaultBackend,
		DataDir: dataDir,
		Image: imageConfig{
			MaxDimension: defaultMaxDimension,
			JPEGQuality:  capture.DefaultQuality,
		},
		Log: logConfig{Level: "info", Format: logging.FormatText},
	}
}

// settings is the effective configuration after flags, config.yaml and
// environment are merged.
type settings struct {
	Store   types.Config
	Cascade bool
	Encode  capture.EncodeOptions
	Log     logging.Options
}

// load resolves directories, reads config.yaml and builds the logger.
func (a *app) load() error {
	// A .env in the working directory seeds CANVAS_* variables without
	// overriding ones already set.
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return userError(fmt.Errorf("load %s: %w", dotEnvFile, err))
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	backend := v.GetString(cfgKeyBackend)
	if a.flags.backend != "" {
		backend = a.flags.backend
	}

	a.configDir = configDir
	a.settings = settings{
		Store:   types.Config{Backend: backend, DataDir: dataDir},
		Cascade: v.GetBool(cfgKeyCascade),
		Encode: capture.EncodeOptions{
			MaxDimension: v.GetInt(cfgKeyMaxDimension),
			Quality:      v.GetInt(cfgKeyJPEGQuality),
		},
		Log: logging.Options{
			Level:  v.GetString(cfgKeyLogLevel),
			Format: v.GetString(cfgKeyLogFormat),
			File:   v.GetString(cfgKeyLogFile),
		},
	}
	a.closeLog()
	a.log, a.logCloser = logging.New(a.settings.Log)
	return nil
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), defaultFileConfig("")); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	def := defaultFileConfig("")
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyMaxDimension, def.Image.MaxDimension)
	v.SetDefault(cfgKeyJPEGQuality, def.Image.JPEGQuality)
	v.SetDefault(cfgKeyLogLevel, def.Log.Level)
	v.SetDefault(cfgKeyLogFormat, def.Log.Format)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. An existing file is left alone.
func writeConfigIfMissing(path string, cfg fileConfig) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# canvas configuration\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
