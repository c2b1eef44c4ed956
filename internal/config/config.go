package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Analysis strategies selectable through ANALYSIS_MODE
const (
	ModeRemote = "remote"
	ModeLocal  = "local"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string

	AnalysisMode     string
	MLAPIURL         string
	MLHealthTimeout  time.Duration
	MLAnalyzeTimeout time.Duration
	AdvancedRules    bool
	HistoryMonths    int

	CBRURL      string
	CORSOrigins []string

	DigestSchedule  string
	DigestRecipient string
	DigestOwner     string
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SenderEmail     string
}

// NewConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DBConn:    getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=cash sslmode=disable"),
		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
		JWTSecret: getEnv("JWT_SECRET", "secret"),

		AnalysisMode: strings.ToLower(getEnv("ANALYSIS_MODE", ModeRemote)),
		MLAPIURL:     strings.TrimRight(getEnv("ML_API_URL", "http://localhost:5000"), "/"),

		CBRURL:      getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),

		DigestSchedule:  getEnv("DIGEST_SCHEDULE", ""),
		DigestRecipient: getEnv("DIGEST_RECIPIENT", ""),
		DigestOwner:     getEnv("DIGEST_OWNER", ""),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "25"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "insights@localhost"),
	}

	var err error
	if cfg.MLHealthTimeout, err = getEnvDuration("ML_HEALTH_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.MLAnalyzeTimeout, err = getEnvDuration("ML_ANALYZE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.AdvancedRules, err = getEnvBool("ADVANCED_RULES", true); err != nil {
		return nil, err
	}
	if cfg.HistoryMonths, err = getEnvInt("HISTORY_MONTHS", 12); err != nil {
		return nil, err
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AnalysisMode != ModeRemote && cfg.AnalysisMode != ModeLocal {
		return nil, fmt.Errorf("ANALYSIS_MODE must be %q or %q, got %q", ModeRemote, ModeLocal, cfg.AnalysisMode)
	}
	if cfg.AnalysisMode == ModeRemote && cfg.MLAPIURL == "" {
		return nil, fmt.Errorf("ML_API_URL is required in remote mode")
	}
	if cfg.HistoryMonths <= 0 {
		return nil, fmt.Errorf("HISTORY_MONTHS must be positive")
	}

	return cfg, nil
}

// DigestEnabled reports whether the scheduled insight digest should run
func (c *Config) DigestEnabled() bool {
	return c.DigestSchedule != "" && c.DigestRecipient != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvList(key string, defaultVal []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
