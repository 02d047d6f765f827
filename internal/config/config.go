package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"Finsight/internal/chart"
	"Finsight/internal/dataset"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	FileName  = ".finsight.yaml"
	EnvPrefix = "FINSIGHT"
)

// Config represents the finsight configuration
type Config struct {
	Root          string `yaml:"root,omitempty"`
	DataPath      string `yaml:"data_path,omitempty"`
	OutputDir     string `yaml:"output_dir,omitempty"`
	Provider      string `yaml:"provider,omitempty" default:"gemini" validate:"required"`
	Model         string `yaml:"model,omitempty"`
	APIKey        string `yaml:"api_key,omitempty"`
	Endpoint      string `yaml:"endpoint,omitempty" validate:"omitempty,url"`
	LogLevel      string `yaml:"log_level,omitempty" default:"info" validate:"oneof=debug info warn error"`
	LogFormat     string `yaml:"log_format,omitempty" default:"console" validate:"oneof=console json"`
	MaxToolRounds int    `yaml:"max_tool_rounds,omitempty" default:"5" validate:"min=1,max=20"`
}

// envOverrides mirrors Config without defaults, so an unset variable is
// distinguishable from an empty one.
type envOverrides struct {
	Home          string
	DataPath      string `split_words:"true"`
	OutputDir     string `split_words:"true"`
	Provider      string
	Model         string
	APIKey        string `split_words:"true"`
	Endpoint      string
	LogLevel      string `split_words:"true"`
	LogFormat     string `split_words:"true"`
	MaxToolRounds int    `split_words:"true"`
}

// GlobalPath returns ~/.finsight.yaml.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// LocalPath returns ./.finsight.yaml.
func LocalPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return filepath.Join(cwd, FileName), nil
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load builds the effective configuration: defaults, then each yaml file
// in order (later files win), then FINSIGHT_* environment variables.
func Load(paths ...string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := mergeFile(cfg, p); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile reads one yaml file on its own. A missing file yields an empty
// Config.
func ReadFile(path string) (*Config, error) {
	cfg := &Config{}
	if err := mergeFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteFile saves cfg as yaml, readable only by the owner.
func WriteFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}

	setString(&cfg.Root, env.Home)
	setString(&cfg.DataPath, env.DataPath)
	setString(&cfg.OutputDir, env.OutputDir)
	setString(&cfg.Provider, env.Provider)
	setString(&cfg.Model, env.Model)
	setString(&cfg.APIKey, env.APIKey)
	setString(&cfg.Endpoint, env.Endpoint)
	setString(&cfg.LogLevel, env.LogLevel)
	setString(&cfg.LogFormat, env.LogFormat)
	if env.MaxToolRounds != 0 {
		cfg.MaxToolRounds = env.MaxToolRounds
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Resolve fills the install root and the paths derived from it.
func (c *Config) Resolve() {
	if c.Root == "" {
		c.Root = dataset.InstallRoot()
	}
	if c.DataPath == "" {
		c.DataPath = dataset.DefaultPath(c.Root)
	}
	if c.OutputDir == "" {
		c.OutputDir = chart.DefaultOutputDir(c.Root)
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate reports every invalid field, by its yaml name.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s (got %v)", fe.Field(), fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// ValidateStored validates a single file's values on top of the defaults,
// so fields the file leaves unset are not reported.
func (c *Config) ValidateStored() error {
	merged := *c
	if err := defaults.Set(&merged); err != nil {
		return fmt.Errorf("failed to apply defaults: %w", err)
	}
	return merged.Validate()
}

// MaskedAPIKey shows only the ends of the key.
func (c *Config) MaskedAPIKey() string {
	if c.APIKey == "" {
		return "(not set)"
	}
	masked := c.APIKey
	if len(masked) > 8 {
		masked = masked[:4] + "..." + masked[len(masked)-4:]
	} else {
		masked = strings.Repeat("*", len(masked))
	}
	return masked
}
