package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds everything the server needs at startup. Values come from
// an optional YAML file; any field left empty falls back to environment
// variables at the point of use (GetEnv).
type Config struct {
	Port     string         `yaml:"port"`
	Postgres PostgresConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Admin    AdminConfig    `yaml:"admin"`
	CORS     CORSConfig     `yaml:"cors"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Port     string `yaml:"port"`
	SSLMode  string `yaml:"sslmode"`
}

type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type AdminConfig struct {
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads the YAML config at filePath and fills unset fields from the
// environment. A missing file is not an error; env vars alone are enough
// to run the server.
func Load(filePath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filePath)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = firstNonEmpty(c.Port, GetEnv("PORT", "8080"))

	c.Postgres.Host = firstNonEmpty(c.Postgres.Host, GetEnv("DB_HOST", "localhost"))
	c.Postgres.User = firstNonEmpty(c.Postgres.User, GetEnv("DB_USER", "postgres"))
	c.Postgres.Password = firstNonEmpty(c.Postgres.Password, GetEnv("DB_PASSWORD", "password"))
	c.Postgres.DBName = firstNonEmpty(c.Postgres.DBName, GetEnv("DB_NAME", "comogezjesc"))
	c.Postgres.Port = firstNonEmpty(c.Postgres.Port, GetEnv("DB_PORT", "5432"))
	c.Postgres.SSLMode = firstNonEmpty(c.Postgres.SSLMode, GetEnv("DB_SSLMODE", "disable"))

	c.LLM.APIKey = firstNonEmpty(c.LLM.APIKey, GetEnv("LLM_API_KEY", ""))
	c.LLM.BaseURL = firstNonEmpty(c.LLM.BaseURL, GetEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"))
	c.LLM.Model = firstNonEmpty(c.LLM.Model, GetEnv("LLM_MODEL", "llama-3.3-70b-versatile"))

	c.Admin.Password = firstNonEmpty(c.Admin.Password, GetEnv("ADMIN_PASSWORD", ""))
	c.Admin.PasswordHash = firstNonEmpty(c.Admin.PasswordHash, GetEnv("ADMIN_PASSWORD_HASH", ""))

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	}
}

// GetEnv returns the value of the environment variable or the fallback.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
