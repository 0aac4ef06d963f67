// Package config loads service settings from the environment, an optional
// .env file and an optional config file.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort          string
	DatabaseType      string
	DatabaseHost      string
	DatabaseUser      string
	DatabasePassword  string
	DatabaseName      string
	SSLMode           string
	JwtSecret         string
	JwtAccessDuration int // seconds
	JwtDomain         string
	AllowedOrigins    []string
	DevMode           bool

	HistoryTTL           time.Duration
	HistorySweepInterval time.Duration
	HistoryMaxEntries    int
	NamesCorpusPath      string

	OtelEnabled  bool
	OtelEndpoint string
	OtelInsecure bool
}

var defaults = map[string]any{
	"http_port":              ":8080",
	"db_type":                "postgres",
	"db_host":                "localhost",
	"db_user":                "postgres",
	"db_password":            "",
	"db_name":                "palettes",
	"ssl_mode":               "disable",
	"jwt_secret":             "your-secret-key-change-this",
	"jwt_access_duration":    900,
	"jwt_domain":             "",
	"allowed_origins":        "http://localhost:3000,http://localhost:5173",
	"dev_mode":               true,
	"history_ttl":            "24h",
	"history_sweep_interval": "1h",
	"history_max_entries":    100,
	"names_corpus_path":      "",
	"otel_enabled":           false,
	"otel_endpoint":          "",
	"otel_insecure":          false,
}

// Load reads .env (if present), then the file named by PALETTE_CONFIG (if
// set), then the environment. Later sources win.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path := os.Getenv("PALETTE_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		HTTPPort:          v.GetString("http_port"),
		DatabaseType:      v.GetString("db_type"),
		DatabaseHost:      v.GetString("db_host"),
		DatabaseUser:      v.GetString("db_user"),
		DatabasePassword:  v.GetString("db_password"),
		DatabaseName:      v.GetString("db_name"),
		SSLMode:           v.GetString("ssl_mode"),
		JwtSecret:         v.GetString("jwt_secret"),
		JwtAccessDuration: positiveInt(v, "jwt_access_duration"),
		JwtDomain:         v.GetString("jwt_domain"),
		AllowedOrigins:    splitList(v.GetString("allowed_origins")),
		DevMode:           boolOr(v, "dev_mode"),

		HistoryTTL:           positiveDuration(v, "history_ttl"),
		HistorySweepInterval: positiveDuration(v, "history_sweep_interval"),
		HistoryMaxEntries:    positiveInt(v, "history_max_entries"),
		NamesCorpusPath:      v.GetString("names_corpus_path"),

		OtelEnabled:  boolOr(v, "otel_enabled"),
		OtelEndpoint: v.GetString("otel_endpoint"),
		OtelInsecure: boolOr(v, "otel_insecure"),
	}
}

// The helpers below fall back to the registered default when a value does
// not parse.

func positiveInt(v *viper.Viper, key string) int {
	if n := v.GetInt(key); n > 0 {
		return n
	}
	return defaults[key].(int)
}

func positiveDuration(v *viper.Viper, key string) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	d, _ := time.ParseDuration(defaults[key].(string))
	return d
}

func boolOr(v *viper.Viper, key string) bool {
	switch strings.ToLower(strings.TrimSpace(v.GetString(key))) {
	case "1", "t", "true", "yes", "on":
		return true
	case "0", "f", "false", "no", "off":
		return false
	}
	return defaults[key].(bool)
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
