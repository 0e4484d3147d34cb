// Package settings persists user preferences with viper.
//
// The refinement core never reads this package; the CLI and the bridge load
// settings and pass them to the dispatcher as plain call parameters.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/valpere/promptlight/internal/refine"
)

const (
	EnvPrefix     = "PROMPTLIGHT"
	DefaultHotkey = "CommandOrControl+Shift+Space"
)

// Settings mirrors the config file.
type Settings struct {
	Provider       string `mapstructure:"provider" json:"provider"`
	APIKey         string `mapstructure:"api_key" json:"-"`
	OllamaEndpoint string `mapstructure:"ollama_endpoint" json:"ollamaEndpoint"`
	Model          string `mapstructure:"model" json:"model"`
	Hotkey         string `mapstructure:"hotkey" json:"hotkey"`
	Theme          string `mapstructure:"theme" json:"theme"`
	DB             string `mapstructure:"db" json:"-"`
	Log            Log    `mapstructure:"log" json:"-"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
	File   string `mapstructure:"file"`
}

var themes = map[string]bool{"light": true, "dark": true, "system": true}

// DefaultPath returns $XDG_CONFIG_HOME/promptlight/config.yaml or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "promptlight", "config.yaml")
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "promptlight", "library.db")
}

// SetDefaults installs the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("provider", string(refine.ProviderOpenAI))
	v.SetDefault("api_key", "")
	v.SetDefault("ollama_endpoint", refine.DefaultOllamaEndpoint)
	v.SetDefault("model", "")
	v.SetDefault("hotkey", DefaultHotkey)
	v.SetDefault("theme", "dark")
	v.SetDefault("db", defaultDBPath())
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.file", "")
}

// Load reads path into v, layering PROMPTLIGHT_* environment variables on
// top. A missing file is not an error.
func Load(v *viper.Viper, path string) (Settings, error) {
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Settings{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return s, nil
}

// Keys lists the settable keys.
func Keys() []string {
	keys := []string{"provider", "api_key", "ollama_endpoint", "model", "hotkey", "theme", "db", "log.level", "log.pretty", "log.file"}
	sort.Strings(keys)
	return keys
}

// Set validates and assigns one key.
func Set(v *viper.Viper, key, value string) error {
	switch key {
	case "provider":
		if !refine.IsSupported(refine.Provider(value)) {
			return fmt.Errorf("unknown provider %q (supported: %v)", value, refine.Providers())
		}
	case "theme":
		if !themes[value] {
			return fmt.Errorf("unknown theme %q (light, dark, system)", value)
		}
	case "hotkey":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("hotkey cannot be empty")
		}
	case "api_key", "ollama_endpoint", "model", "db", "log.level", "log.pretty", "log.file":
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	v.Set(key, value)
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

// Update validates one key and writes it to the file at path. The file is
// read into a viper with no defaults and no environment binding, so only
// keys already in the file plus the updated one are written back.
func Update(path, key, value string) error {
	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("yaml")
	if err := file.ReadInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := Set(file, key, value); err != nil {
		return err
	}
	return write(file, path)
}

// write saves v with owner-only permissions since it may hold an API key.
func write(v *viper.Viper, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	v.SetConfigPermissions(0o600)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return os.Chmod(path, 0o600)
}

// Request builds a refinement request from the stored preferences. The
// endpoint is only passed for the local provider.
func (s Settings) Request(prompt string) refine.Request {
	req := refine.Request{
		Prompt:     prompt,
		Provider:   refine.Provider(s.Provider),
		Credential: s.APIKey,
		Model:      s.Model,
	}
	if req.Provider == refine.ProviderOllama {
		req.Endpoint = s.OllamaEndpoint
	}
	return req
}

// MaskedKey returns the API key with everything but the last four
// characters hidden.
func (s Settings) MaskedKey() string {
	if s.APIKey == "" {
		return ""
	}
	if len(s.APIKey) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 8) + s.APIKey[len(s.APIKey)-4:]
}
