package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"salaryengine/internal/domain"
)

// EnvConfigFile names the variable holding an optional YAML config path.
const EnvConfigFile = "SALARYENGINE_CONFIG_FILE"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Validation ValidationConfig
	Rates      RatesConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ValidationConfig holds validation pipeline settings.
type ValidationConfig struct {
	Debounce      time.Duration `mapstructure:"debounce"`
	SalaryCeiling string        `mapstructure:"salary_ceiling"`
	CacheSize     int           `mapstructure:"cache_size"`
}

// SchemeRatesConfig holds the statutory constants of one scheme as decimal
// strings. Empty thresholds mean the scheme has no eligibility band.
type SchemeRatesConfig struct {
	EmployerRate       string `mapstructure:"employer_rate"`
	MinEmployeeRate    string `mapstructure:"min_employee_rate"`
	MaxEmployeeRate    string `mapstructure:"max_employee_rate"`
	MinAdditionalRate  string `mapstructure:"min_additional_rate"`
	MaxAdditionalRate  string `mapstructure:"max_additional_rate"`
	MaxTotalRate       string `mapstructure:"max_total_rate"`
	NumberPattern      string `mapstructure:"number_pattern"`
	NumberExample      string `mapstructure:"number_example"`
	MinSalaryThreshold string `mapstructure:"min_salary_threshold"`
	SalaryThreshold    string `mapstructure:"salary_threshold"`
}

// RatesConfig holds the rate configuration source. When SheetPath is set the
// workbook wins over the inline values.
type RatesConfig struct {
	SheetPath string            `mapstructure:"sheet_path"`
	PF        SchemeRatesConfig `mapstructure:"pf"`
	ESI       SchemeRatesConfig `mapstructure:"esi"`
}

// For returns the inline settings of scheme s.
func (r *RatesConfig) For(s domain.Scheme) SchemeRatesConfig {
	if s == domain.SchemeESI {
		return r.ESI
	}
	return r.PF
}

// Load reads configuration using the file named by SALARYENGINE_CONFIG_FILE, if any.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(EnvConfigFile))
}

// LoadFile reads configuration from an optional YAML file, a .env file in the
// working directory and environment variables with the SALARYENGINE_ prefix,
// in increasing order of precedence.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SALARYENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Validation defaults
	v.SetDefault("validation.debounce", "300ms")
	v.SetDefault("validation.salary_ceiling", "10000000")
	v.SetDefault("validation.cache_size", 1024)

	// Rate defaults
	v.SetDefault("rates.sheet_path", "")
	setSchemeDefaults(v, "rates.pf", domain.DefaultPFConfig())
	setSchemeDefaults(v, "rates.esi", domain.DefaultESIConfig())

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "SALARYENGINE_SERVER_PORT",
		"server.read_timeout":            "SALARYENGINE_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "SALARYENGINE_SERVER_WRITE_TIMEOUT",
		"server.environment":             "SALARYENGINE_SERVER_ENVIRONMENT",
		"server.allowed_origins":         "SALARYENGINE_SERVER_ALLOWED_ORIGINS",
		"log.level":                      "SALARYENGINE_LOG_LEVEL",
		"log.format":                     "SALARYENGINE_LOG_FORMAT",
		"validation.debounce":            "SALARYENGINE_VALIDATION_DEBOUNCE",
		"validation.salary_ceiling":      "SALARYENGINE_VALIDATION_SALARY_CEILING",
		"validation.cache_size":          "SALARYENGINE_VALIDATION_CACHE_SIZE",
		"rates.sheet_path":               "SALARYENGINE_RATES_SHEET_PATH",
		"rates.pf.employer_rate":         "SALARYENGINE_RATES_PF_EMPLOYER_RATE",
		"rates.pf.min_employee_rate":     "SALARYENGINE_RATES_PF_MIN_EMPLOYEE_RATE",
		"rates.pf.max_employee_rate":     "SALARYENGINE_RATES_PF_MAX_EMPLOYEE_RATE",
		"rates.pf.min_additional_rate":   "SALARYENGINE_RATES_PF_MIN_ADDITIONAL_RATE",
		"rates.pf.max_additional_rate":   "SALARYENGINE_RATES_PF_MAX_ADDITIONAL_RATE",
		"rates.pf.max_total_rate":        "SALARYENGINE_RATES_PF_MAX_TOTAL_RATE",
		"rates.pf.number_pattern":        "SALARYENGINE_RATES_PF_NUMBER_PATTERN",
		"rates.pf.number_example":        "SALARYENGINE_RATES_PF_NUMBER_EXAMPLE",
		"rates.pf.min_salary_threshold":  "SALARYENGINE_RATES_PF_MIN_SALARY_THRESHOLD",
		"rates.pf.salary_threshold":      "SALARYENGINE_RATES_PF_SALARY_THRESHOLD",
		"rates.esi.employer_rate":        "SALARYENGINE_RATES_ESI_EMPLOYER_RATE",
		"rates.esi.min_employee_rate":    "SALARYENGINE_RATES_ESI_MIN_EMPLOYEE_RATE",
		"rates.esi.max_employee_rate":    "SALARYENGINE_RATES_ESI_MAX_EMPLOYEE_RATE",
		"rates.esi.min_additional_rate":  "SALARYENGINE_RATES_ESI_MIN_ADDITIONAL_RATE",
		"rates.esi.max_additional_rate":  "SALARYENGINE_RATES_ESI_MAX_ADDITIONAL_RATE",
		"rates.esi.max_total_rate":       "SALARYENGINE_RATES_ESI_MAX_TOTAL_RATE",
		"rates.esi.number_pattern":       "SALARYENGINE_RATES_ESI_NUMBER_PATTERN",
		"rates.esi.number_example":       "SALARYENGINE_RATES_ESI_NUMBER_EXAMPLE",
		"rates.esi.min_salary_threshold": "SALARYENGINE_RATES_ESI_MIN_SALARY_THRESHOLD",
		"rates.esi.salary_threshold":     "SALARYENGINE_RATES_ESI_SALARY_THRESHOLD",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{}

	// Container platforms set a PORT env var. Use it if SALARYENGINE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SALARYENGINE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:           serverPort,
		ReadTimeout:    v.GetDuration("server.read_timeout"),
		WriteTimeout:   v.GetDuration("server.write_timeout"),
		Environment:    v.GetString("server.environment"),
		AllowedOrigins: splitList(v.GetString("server.allowed_origins")),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Validation = ValidationConfig{
		Debounce:      v.GetDuration("validation.debounce"),
		SalaryCeiling: v.GetString("validation.salary_ceiling"),
		CacheSize:     v.GetInt("validation.cache_size"),
	}
	cfg.Rates = RatesConfig{
		SheetPath: v.GetString("rates.sheet_path"),
		PF:        schemeConfig(v, "rates.pf"),
		ESI:       schemeConfig(v, "rates.esi"),
	}

	return cfg, nil
}

func setSchemeDefaults(v *viper.Viper, prefix string, cfg *domain.RateConfiguration) {
	v.SetDefault(prefix+".employer_rate", cfg.EmployerRate.String())
	v.SetDefault(prefix+".min_employee_rate", cfg.MinEmployeeRate.String())
	v.SetDefault(prefix+".max_employee_rate", cfg.MaxEmployeeRate.String())
	v.SetDefault(prefix+".min_additional_rate", cfg.MinAdditionalRate.String())
	v.SetDefault(prefix+".max_additional_rate", cfg.MaxAdditionalRate.String())
	v.SetDefault(prefix+".max_total_rate", cfg.MaxTotalRate.String())
	v.SetDefault(prefix+".number_pattern", cfg.NumberPattern)
	v.SetDefault(prefix+".number_example", cfg.NumberExample)
	v.SetDefault(prefix+".min_salary_threshold", optional(cfg.MinSalaryThreshold))
	v.SetDefault(prefix+".salary_threshold", optional(cfg.SalaryThreshold))
}

func schemeConfig(v *viper.Viper, prefix string) SchemeRatesConfig {
	return SchemeRatesConfig{
		EmployerRate:       v.GetString(prefix + ".employer_rate"),
		MinEmployeeRate:    v.GetString(prefix + ".min_employee_rate"),
		MaxEmployeeRate:    v.GetString(prefix + ".max_employee_rate"),
		MinAdditionalRate:  v.GetString(prefix + ".min_additional_rate"),
		MaxAdditionalRate:  v.GetString(prefix + ".max_additional_rate"),
		MaxTotalRate:       v.GetString(prefix + ".max_total_rate"),
		NumberPattern:      v.GetString(prefix + ".number_pattern"),
		NumberExample:      v.GetString(prefix + ".number_example"),
		MinSalaryThreshold: v.GetString(prefix + ".min_salary_threshold"),
		SalaryThreshold:    v.GetString(prefix + ".salary_threshold"),
	}
}

func optional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// splitList parses a comma-separated list, dropping blank entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
