package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

var validBackends = []string{BackendPostgres, BackendMongo, BackendMemory}

type Config struct {
	// HTTP server
	Port string

	// Storage
	DataBackend        string
	DBConnectionString string
	MongoURI           string
	MongoDatabase      string

	// Sessions
	SessionSecret          string
	SessionTTL             time.Duration
	SessionCookieSecure    bool
	SessionCleanupSchedule string
	BcryptCost             int

	// Dashboard
	ExpenseCategories []string
	RecentLimit       int

	// Logging
	LogLevel  string
	LogPretty bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATA_BACKEND", BackendPostgres)
	v.SetDefault("DB_CONNECTION_STRING", "")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "finance_tracker")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("SESSION_CLEANUP_SCHEDULE", "@every 10m")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("EXPENSE_CATEGORIES", "Comida,Transporte,Entretenimiento,Servicios,Otros")
	v.SetDefault("RECENT_LIMIT", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
}

// Load reads .env files (when present) and the process environment.
// Environment variables win over values from the files.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
		log.Debug().Msg("No .env file found, continuing with system environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	sessionTTL, err := time.ParseDuration(v.GetString("SESSION_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", v.GetString("SESSION_TTL"), err)
	}

	return &Config{
		Port:                   v.GetString("PORT"),
		DataBackend:            strings.ToLower(strings.TrimSpace(v.GetString("DATA_BACKEND"))),
		DBConnectionString:     v.GetString("DB_CONNECTION_STRING"),
		MongoURI:               v.GetString("MONGO_URI"),
		MongoDatabase:          v.GetString("MONGO_DATABASE"),
		SessionSecret:          v.GetString("SESSION_SECRET"),
		SessionTTL:             sessionTTL,
		SessionCookieSecure:    v.GetBool("SESSION_COOKIE_SECURE"),
		SessionCleanupSchedule: v.GetString("SESSION_CLEANUP_SCHEDULE"),
		BcryptCost:             v.GetInt("BCRYPT_COST"),
		ExpenseCategories:      splitList(v.GetString("EXPENSE_CATEGORIES")),
		RecentLimit:            v.GetInt("RECENT_LIMIT"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		LogPretty:              v.GetBool("LOG_PRETTY"),
	}, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate validates the configuration and returns every problem in one error.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case BackendPostgres:
		if c.DBConnectionString == "" {
			problems = append(problems, "DB_CONNECTION_STRING is required when using postgres backend")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			problems = append(problems, "MONGO_URI is required when using mongo backend")
		}
		if c.MongoDatabase == "" {
			problems = append(problems, "MONGO_DATABASE is required when using mongo backend")
		}
	}

	if c.SessionSecret == "" {
		problems = append(problems, "SESSION_SECRET is required")
	}
	if c.SessionTTL < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		problems = append(problems, fmt.Sprintf("invalid bcrypt cost %d: must be between 4 and 31", c.BcryptCost))
	}
	if len(c.ExpenseCategories) == 0 {
		problems = append(problems, "at least one expense category is required")
	}
	if c.RecentLimit < 1 || c.RecentLimit > 100 {
		problems = append(problems, fmt.Sprintf("invalid recent limit %d: must be between 1 and 100", c.RecentLimit))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
