package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServiceName string

	ServerPort int

	// DatabaseURL is either a path to the SQLite database file or a
	// postgres:// URL. Empty means the default SQLite file.
	DatabaseURL string

	LogLevel string

	KafkaBrokers []string
	EventsTopic  string

	// ReportFontPath optionally points at a UTF-8 TTF font for the
	// order report. Empty means the built-in core font.
	ReportFontPath string
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "shopadmin"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: EnvDefault("DATABASE_URL", "shopadmin.db"),

		LogLevel: os.Getenv("LOG_LEVEL"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		EventsTopic:  EnvDefault("EVENTS_TOPIC", "order_events"),

		ReportFontPath: os.Getenv("REPORT_FONT_PATH"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
