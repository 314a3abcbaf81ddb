package configs

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"surveyhub_backend/internals/logger"
)

type DBConfig struct {
	Host             string
	Port             string
	User             string
	Password         string
	Name             string
	SSLMode          string
	StatementTimeout time.Duration
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxIdleTime  time.Duration
	ConnMaxLifetime  time.Duration
	SlowThreshold    time.Duration
	AutoMigrate      bool
	Seed             bool
}

// DSN keeps statement_timeout in line with the HTTP request timeout.
func (d DBConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   d.Host + ":" + d.Port,
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	q.Set("application_name", "surveyhub")
	if d.StatementTimeout > 0 {
		q.Set("options", fmt.Sprintf("-c statement_timeout=%d", d.StatementTimeout.Milliseconds()))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

type Config struct {
	AppName string
	AppEnv  string
	Port    string
	Build   string

	LogLevel       string
	LogJSON        bool
	RequestTimeout time.Duration

	DB DBConfig

	JWTSecret      string
	JWTTTL         time.Duration
	GoogleClientID string

	SendgridAPIKey string
	MailFrom       string
	MailFromName   string
	FrontendURL    string

	RollbarToken string

	UploadDir     string
	MaxLogoPixels int

	CORSOrigins     string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

func (c Config) IsProduction() bool { return c.AppEnv == "production" }

// LoadEnv reads .env.<APP_ENV> and then .env. Neither file is required and
// variables already set in the environment win.
func LoadEnv() {
	env := GetEnv("APP_ENV", "development")
	for _, f := range []string{".env." + env, ".env"} {
		if err := godotenv.Load(f); err == nil {
			logger.Infof("loaded %s", f)
		}
	}
}

func Load() (*Config, error) {
	LoadEnv()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		Port:           v.GetString("port"),
		Build:          v.GetString("app.build"),
		LogLevel:       v.GetString("log.level"),
		LogJSON:        v.GetBool("log.json"),
		RequestTimeout: v.GetDuration("request.timeout"),
		DB: DBConfig{
			Host:             v.GetString("db.host"),
			Port:             v.GetString("db.port"),
			User:             v.GetString("db.user"),
			Password:         v.GetString("db.password"),
			Name:             v.GetString("db.name"),
			SSLMode:          v.GetString("db.sslmode"),
			StatementTimeout: v.GetDuration("db.statement_timeout"),
			MaxOpenConns:     v.GetInt("db.max_open_conns"),
			MaxIdleConns:     v.GetInt("db.max_idle_conns"),
			ConnMaxIdleTime:  v.GetDuration("db.conn_max_idle_time"),
			ConnMaxLifetime:  v.GetDuration("db.conn_max_lifetime"),
			SlowThreshold:    v.GetDuration("db.slow_threshold"),
			AutoMigrate:      v.GetBool("db.auto_migrate"),
			Seed:             v.GetBool("db.seed"),
		},
		JWTSecret:       v.GetString("jwt.secret"),
		JWTTTL:          v.GetDuration("jwt.ttl"),
		GoogleClientID:  v.GetString("google.client_id"),
		SendgridAPIKey:  v.GetString("sendgrid.api_key"),
		MailFrom:        v.GetString("mail.from"),
		MailFromName:    v.GetString("mail.from_name"),
		FrontendURL:     strings.TrimRight(v.GetString("frontend.url"), "/"),
		RollbarToken:    v.GetString("rollbar.token"),
		UploadDir:       v.GetString("upload.dir"),
		MaxLogoPixels:   v.GetInt("upload.max_logo_pixels"),
		CORSOrigins:     v.GetString("cors.origins"),
		RateLimitMax:    v.GetInt("rate_limit.max"),
		RateLimitWindow: v.GetDuration("rate_limit.window"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.GoogleClientID == "" {
		logger.Warnf("GOOGLE_CLIENT_ID is not set, Google sign-in will reject every token")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "SurveyHub")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.build", "dev")
	v.SetDefault("port", "3000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("request.timeout", 5*time.Second)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.name", "surveyhub")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.statement_timeout", 3*time.Second)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_idle_time", 60*time.Second)
	v.SetDefault("db.conn_max_lifetime", 10*time.Minute)
	v.SetDefault("db.slow_threshold", 200*time.Millisecond)
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("db.seed", false)

	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("mail.from", "no-reply@surveyhub.local")
	v.SetDefault("mail.from_name", "SurveyHub")
	v.SetDefault("frontend.url", "http://localhost:3001")
	v.SetDefault("upload.dir", "./uploads")
	v.SetDefault("upload.max_logo_pixels", 512)
	v.SetDefault("cors.origins", "*")
	v.SetDefault("rate_limit.max", 120)
	v.SetDefault("rate_limit.window", time.Minute)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
