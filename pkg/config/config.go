package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/lanes/pkg/lifecycle"
)

// Theme selects the board palette.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts light, dark or auto.
func ParseTheme(raw string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(raw))); t {
	case ThemeAuto, ThemeLight, ThemeDark:
		return t, nil
	case "":
		return ThemeAuto, nil
	default:
		return "", fmt.Errorf("config: unknown theme %q", raw)
	}
}

// Config holds the resolved settings for a lanes process.
type Config struct {
	EntryTransition time.Duration `json:"entryTransition"`
	ExitTransition  time.Duration `json:"exitTransition"`
	Theme           Theme         `json:"theme"`
	IDs             string        `json:"ids"`
	Seed            bool          `json:"seed"`
	Journal         Journal       `json:"journal"`
	Log             Log           `json:"log"`

	// File is the config file that was read, empty when none was found.
	File string `json:"file,omitempty"`
}

// Journal controls the session journal.
type Journal struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// Log controls logging output.
type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("entry_transition", lifecycle.DefaultEntryTransition.String())
	v.SetDefault("exit_transition", lifecycle.DefaultExitTransition.String())
	v.SetDefault("theme", string(ThemeAuto))
	v.SetDefault("ids", "sequential")
	v.SetDefault("seed", true)
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", "~/.lanes/journal")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "~/.lanes/lanes.log")
}

// New returns a viper instance that searches for .lanes.yaml in
// LANES_CONFIG_PATH, the working directory and the home directory.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(".lanes") // .yaml is implicit
	v.SetEnvPrefix("LANES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("LANES_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	return v
}

// Load reads the config file, when present, and resolves the settings.
func Load() (*Config, error) {
	return LoadFrom(New())
}

// LoadFrom resolves settings from an already prepared viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	entry, err := duration(v, "entry_transition")
	if err != nil {
		return nil, err
	}
	exit, err := duration(v, "exit_transition")
	if err != nil {
		return nil, err
	}
	theme, err := ParseTheme(v.GetString("theme"))
	if err != nil {
		return nil, err
	}
	ids := strings.ToLower(v.GetString("ids"))
	if ids != "sequential" && ids != "uuid" {
		return nil, fmt.Errorf("config: unknown id strategy %q", ids)
	}
	journalPath, err := Expand(v.GetString("journal.path"))
	if err != nil {
		return nil, err
	}
	logFile, err := Expand(v.GetString("log.file"))
	if err != nil {
		return nil, err
	}

	return &Config{
		EntryTransition: entry,
		ExitTransition:  exit,
		Theme:           theme,
		IDs:             ids,
		Seed:            v.GetBool("seed"),
		Journal: Journal{
			Enabled: v.GetBool("journal.enabled"),
			Path:    journalPath,
		},
		Log: Log{
			Level: v.GetString("log.level"),
			File:  logFile,
		},
		File: v.ConfigFileUsed(),
	}, nil
}

// duration rejects negative values; zero is allowed and means "immediately".
func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: %s must not be negative, got %s", key, d)
	}
	return d, nil
}

// Expand resolves a leading ~ against the home directory.
func Expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("config: expanding %q: %w", path, err)
	}
	return filepath.Clean(expanded), nil
}

// Watch re-reads the config file whenever it changes and hands the new
// settings to onChange. Files that fail to decode are reported through
// onError and the previous settings stay in effect. Watch is a no-op when no
// config file was loaded.
func Watch(v *viper.Viper, onChange func(*Config), onError func(error)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		cfg, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}
