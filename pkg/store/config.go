package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// ConfigPathEnv names the directory searched first for .notes.yaml.
const ConfigPathEnv = "NOTES_CONFIG_PATH"

// Config carries the settings shared by the store, logging and the UI.
type Config interface {
	BasePath() string
	Driver() string
}

// FileConfig is the configuration read from .notes.yaml and NOTES_*
// environment variables.
type FileConfig struct {
	Path       string `json:"path"`
	Backend    string `json:"driver"`
	LogLevel   string `json:"logLevel"`
	LogFile    string `json:"logFile"`
	Style      string `json:"uiStyle"`
	ConfigFile string `json:"-"`
}

func (f *FileConfig) BasePath() string { return f.Path }
func (f *FileConfig) Driver() string   { return f.Backend }

// LoadConfig reads .notes.yaml from $NOTES_CONFIG_PATH or the working
// directory. A missing file is fine; values then come from defaults and the
// environment.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("path", "~/.notes.db")
	v.SetDefault("driver", DriverDiskv)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("ui.style", "dark")
	v.SetConfigName(".notes") // .yaml is implicit
	v.SetEnvPrefix("NOTES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	logFile, err := homedir.Expand(v.GetString("log.file"))
	if err != nil {
		return nil, fmt.Errorf("store: expand log file: %w", err)
	}

	return &FileConfig{
		Path:       path,
		Backend:    v.GetString("driver"),
		LogLevel:   v.GetString("log.level"),
		LogFile:    logFile,
		Style:      v.GetString("ui.style"),
		ConfigFile: v.ConfigFileUsed(),
	}, nil
}
