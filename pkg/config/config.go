package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Log         LogConfig
	Dashboard   DashboardConfig
	Reporting   ReportingConfig
	Operational OperationalConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs response caching for the dashboard endpoints.
type DashboardConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ReportingConfig externalizes the business thresholds the aggregation
// formulas depend on. Defaults mirror current school policy; they are
// configuration, not code.
type ReportingConfig struct {
	ApprovalGradeMin      float64
	ApprovalAttendanceMin float64
	ClassSeatCapacity     int
	GrowthFallbackDisplay string
	DropoutTargetPct      float64
	EvolutionMonths       int
	RecentTransactions    int
}

// OperationalConfig carries the open-ticket state set plus the constant
// values served for indicators that are not yet instrumented.
type OperationalConfig struct {
	OpenTicketStates []string

	SecretariatSLADays    float64
	TeacherAbsenteeismPct float64
	ITUptimePct           float64
	PrintingCostPerPage   float64
	CafeteriaWastePct     float64
	SecurityStatus        string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheEnabled: v.GetBool("DASHBOARD_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Reporting = ReportingConfig{
		ApprovalGradeMin:      v.GetFloat64("REPORTING_APPROVAL_GRADE_MIN"),
		ApprovalAttendanceMin: v.GetFloat64("REPORTING_APPROVAL_ATTENDANCE_MIN"),
		ClassSeatCapacity:     v.GetInt("REPORTING_CLASS_SEAT_CAPACITY"),
		GrowthFallbackDisplay: v.GetString("REPORTING_GROWTH_FALLBACK"),
		DropoutTargetPct:      v.GetFloat64("REPORTING_DROPOUT_TARGET_PCT"),
		EvolutionMonths:       v.GetInt("REPORTING_EVOLUTION_MONTHS"),
		RecentTransactions:    v.GetInt("REPORTING_RECENT_TRANSACTIONS"),
	}

	cfg.Operational = OperationalConfig{
		OpenTicketStates:      splitAndTrim(v.GetString("OPERATIONAL_OPEN_TICKET_STATES")),
		SecretariatSLADays:    v.GetFloat64("OPERATIONAL_SECRETARIAT_SLA_DAYS"),
		TeacherAbsenteeismPct: v.GetFloat64("OPERATIONAL_TEACHER_ABSENTEEISM_PCT"),
		ITUptimePct:           v.GetFloat64("OPERATIONAL_IT_UPTIME_PCT"),
		PrintingCostPerPage:   v.GetFloat64("OPERATIONAL_PRINTING_COST"),
		CafeteriaWastePct:     v.GetFloat64("OPERATIONAL_CAFETERIA_WASTE_PCT"),
		SecurityStatus:        v.GetString("OPERATIONAL_SECURITY_STATUS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "school_bi")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "school-bi-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_CACHE_ENABLED", false)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")

	v.SetDefault("REPORTING_APPROVAL_GRADE_MIN", 6.0)
	v.SetDefault("REPORTING_APPROVAL_ATTENDANCE_MIN", 75.0)
	v.SetDefault("REPORTING_CLASS_SEAT_CAPACITY", 40)
	v.SetDefault("REPORTING_GROWTH_FALLBACK", "+0.2%")
	v.SetDefault("REPORTING_DROPOUT_TARGET_PCT", 5.0)
	v.SetDefault("REPORTING_EVOLUTION_MONTHS", 12)
	v.SetDefault("REPORTING_RECENT_TRANSACTIONS", 5)

	v.SetDefault("OPERATIONAL_OPEN_TICKET_STATES", "Open,In Progress,Pending")
	v.SetDefault("OPERATIONAL_SECRETARIAT_SLA_DAYS", 1.8)
	v.SetDefault("OPERATIONAL_TEACHER_ABSENTEEISM_PCT", 2.4)
	v.SetDefault("OPERATIONAL_IT_UPTIME_PCT", 99.8)
	v.SetDefault("OPERATIONAL_PRINTING_COST", 12.5)
	v.SetDefault("OPERATIONAL_CAFETERIA_WASTE_PCT", 4.2)
	v.SetDefault("OPERATIONAL_SECURITY_STATUS", "Normal")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
