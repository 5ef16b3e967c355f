package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type (
	APP struct {
		Name         string
		Host         string
		Port         string
		Env          string
		AuthRequired bool
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
		SSLMode  string
		MaxConns int
	}
	Auth struct {
		JWTSecret        string
		TokenTTL         time.Duration
		BcryptCost       int
		MaxLoginFailures int
		LoginWindow      time.Duration
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	CORS struct {
		AllowedOrigins []string
	}

	Config struct {
		App   APP
		DB    DB
		Auth  Auth
		Redis Redis
		MQ    MQ
		CORS  CORS
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvList(key string, def []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() Config {
	app := APP{
		Name:         getEnv("SERVICE_NAME", "hotelusers"),
		Host:         getEnv("SERVICE_HOST", ""),
		Port:         getEnv("SERVICE_PORT", "3000"),
		Env:          getEnv("SERVICE_ENV", "production"),
		AuthRequired: getEnvBool("SERVICE_AUTH_REQUIRED", false),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", "5432"),
		SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxConns: getEnvInt("POSTGRES_MAX_CONNS", 10),
	}
	auth := Auth{
		JWTSecret:        getEnv("SERVICE_JWT_SECRET", ""),
		TokenTTL:         getEnvDuration("SERVICE_TOKEN_TTL", 24*time.Hour),
		BcryptCost:       getEnvInt("SERVICE_BCRYPT_COST", 10),
		MaxLoginFailures: getEnvInt("SERVICE_MAX_LOGIN_FAILURES", 5),
		LoginWindow:      getEnvDuration("SERVICE_LOGIN_WINDOW", 15*time.Minute),
	}
	rds := Redis{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", "5672"),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "usuarios"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "topic"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "usuarios.audit"),
	}
	cors := CORS{
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	return Config{
		App:   app,
		DB:    db,
		Auth:  auth,
		Redis: rds,
		MQ:    mq,
		CORS:  cors,
	}
}

// Validate fails fast on settings the service cannot start without.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.DBDSN(); err != nil {
		errs = append(errs, err)
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("SERVICE_JWT_SECRET is required"))
	}
	if c.App.Port == "" {
		errs = append(errs, errors.New("SERVICE_PORT is required"))
	}

	return errors.Join(errs...)
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config: POSTGRES_USER, POSTGRES_DB, POSTGRES_HOST and POSTGRES_PORT are required")
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   c.DB.Host + ":" + c.DB.Port,
		User:   url.UserPassword(c.DB.User, c.DB.Password),
		Path:   c.DB.Name,
	}
	q := u.Query()
	q.Set("sslmode", c.DB.SSLMode)
	if c.DB.MaxConns > 0 {
		q.Set("pool_max_conns", strconv.Itoa(c.DB.MaxConns))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
