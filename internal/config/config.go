package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when present and no other path is given
const DefaultConfigFile = "glossary.yaml"

// Config holds all application configuration
type Config struct {
	Glossary GlossaryConfig `yaml:"glossary"`
	Log      LogConfig      `yaml:"log"`
	Bot      BotConfig      `yaml:"bot"`
	Database DatabaseConfig `yaml:"database"`
	Web      WebConfig      `yaml:"web"`
}

// GlossaryConfig locates the glossary file
type GlossaryConfig struct {
	Path string `yaml:"path" env:"GLOSSARY_FILE" validate:"required"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error dpanic panic fatal"`
	File  string `yaml:"file" env:"LOG_FILE"`
}

// BotConfig holds Telegram front-end settings
type BotConfig struct {
	Token    string `yaml:"token"`
	Password string `yaml:"password"`
}

// DatabaseConfig holds journal database connection settings
type DatabaseConfig struct {
	Host           string `yaml:"host"`
	Port           string `yaml:"port" env:"DB_PORT" validate:"numeric"`
	Name           string `yaml:"name"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" validate:"required"`
}

// WebConfig holds HTTP front-end settings
type WebConfig struct {
	Addr           string   `yaml:"addr" env:"WEB_ADDR" validate:"required"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Glossary: GlossaryConfig{Path: "wordlist.tex"},
		Log:      LogConfig{Level: "info"},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			Name:           "texglossary",
			User:           "texglossary",
			MigrationsPath: "file://migrations",
		},
		Web: WebConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads configuration from an optional YAML file, then environment variables.
// An empty path falls back to GLOSSARY_CONFIG and then to DefaultConfigFile; only an
// explicitly named file is required to exist.
func Load(path string) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := Default()

	required := true
	if path == "" {
		path = os.Getenv("GLOSSARY_CONFIG")
	}
	if path == "" {
		path = DefaultConfigFile
		required = false
	}

	if err := cfg.loadFile(path, required); err != nil {
		return nil, err
	}
	cfg.loadEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() {
	c.Glossary.Path = getEnv("GLOSSARY_FILE", c.Glossary.Path)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)
	c.Bot.Token = getEnv("BOT_TOKEN", c.Bot.Token)
	c.Bot.Password = getEnv("BOT_PASSWORD", c.Bot.Password)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.MigrationsPath = getEnv("MIGRATIONS_PATH", c.Database.MigrationsPath)
	c.Web.Addr = getEnv("WEB_ADDR", c.Web.Addr)
	if origins := os.Getenv("WEB_ALLOWED_ORIGINS"); origins != "" {
		c.Web.AllowedOrigins = splitList(origins)
	}
}

// validate reports fields by their environment variable name
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// Validate checks settings every front-end needs
func (c *Config) Validate() error {
	c.Glossary.Path = strings.TrimSpace(c.Glossary.Path)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		if fe.Tag() == "required" {
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
			continue
		}
		messages = append(messages, fmt.Sprintf("%s is invalid: %q does not satisfy %s %s", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
	}
	return errors.New(strings.Join(messages, "; "))
}

// ValidateBot checks settings the Telegram front-end needs
func (c *Config) ValidateBot() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.Bot.Password == "" {
		return fmt.Errorf("BOT_PASSWORD is required")
	}
	return nil
}

// JournalEnabled reports whether a journal database is configured
func (c *Config) JournalEnabled() bool {
	return c.Database.Password != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
