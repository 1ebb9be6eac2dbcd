package config

import (
	"os"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string `envconfig:"PORT" default:"8080"`
	AWSRegion        string `envconfig:"AWS_REGION" default:"us-east-1"`
	OrderTableName   string `envconfig:"ORDER_TABLE_NAME" default:"orders"`
	KafkaBrokers     string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT" default:""` // DynamoDB Local endpoint
	UsersServiceURL  string `envconfig:"USERS_SERVICE_URL" default:"http://localhost"`
	AdminEmail       string `envconfig:"ADMIN_EMAIL" default:"admin@app.com"`
	SMTPHost         string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort         int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername     string `envconfig:"SMTP_USERNAME" default:""`
	SMTPPassword     string `envconfig:"SMTP_PASSWORD" default:""`
	SMTPFrom         string `envconfig:"SMTP_FROM" default:"orders@app.com"`
	OTELEndpoint     string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4318"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

const defaultVerifyTimeout = 2000 * time.Millisecond

// SendMailsEnabled reports whether admin notification mails should be sent.
// Read from the environment on every call, not cached at startup, so each
// order creation observes the current value.
func SendMailsEnabled() bool {
	return os.Getenv("SEND_MAILS") == "true"
}

// VerifyTimeout returns the user-verification call timeout. HTTP_TIMEOUT is
// in milliseconds; invalid or missing values fall back to 2000ms.
func VerifyTimeout() time.Duration {
	raw := os.Getenv("HTTP_TIMEOUT")
	if raw == "" {
		return defaultVerifyTimeout
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return defaultVerifyTimeout
	}
	return time.Duration(ms) * time.Millisecond
}
