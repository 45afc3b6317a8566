package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port        string
	ReadTimeout time.Duration

	// State storage
	DataBackend   string // "file" or "sqlite"
	StateFilePath string
	SQLiteDBPath  string

	// AMQP event publishing (optional, empty URL disables it)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8081"),
		ReadTimeout: getEnvDuration("READ_TIMEOUT", 10*time.Second),

		DataBackend:   getEnv("DATA_BACKEND", "file"),
		StateFilePath: getEnv("STATE_FILE_PATH", "./data/lumo.json"),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/lumo.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "lumo"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "file":
		if c.StateFilePath == "" {
			problems = append(problems, "state file path cannot be empty when using the file backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using the sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend %q: must be \"file\" or \"sqlite\"", c.DataBackend))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL %q: %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme %q: must be amqp or amqps", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when an AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when an AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
