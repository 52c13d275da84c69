package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type PostgreSQLConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUsername string
	DBPassword string
}

type KafkaConfig struct {
	BrokerAddress          string
	ConsumerGroupID        string
	ResellerApprovedTopic  string
	ResellerRejectedTopic  string
	ResellerDeletedTopic   string
	ResellerRestoredTopic  string
	NotificationEmailTopic string
}

type TracingConfig struct {
	CollectorHost string
}

type SMTPConfig struct {
	Server   string
	Port     int
	Sender   string
	Password string
}

type AdminBootstrapConfig struct {
	Username string
	Password string
}

type Config struct {
	ServicePort       string
	MetricsPort       string
	Environment       string
	PostgreSQLConfig  PostgreSQLConfig
	JWTSecret         string
	KafkaConfig       KafkaConfig
	TracingConfig     TracingConfig
	SMTPConfig        SMTPConfig
	AdminBootstrap    AdminBootstrapConfig
	AuthServiceHost   string
	ServiceAPIKey     string
	AuthClientTimeout time.Duration
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: os.Getenv("SERVICE_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		Environment: os.Getenv("ENVIRONMENT"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		KafkaConfig: KafkaConfig{
			BrokerAddress:          os.Getenv("BROKER_ADDRESS"),
			ConsumerGroupID:        getEnv("BROKER_CONSUMER_GROUP_ID", "auth-service-group"),
			ResellerApprovedTopic:  getEnv("RESELLER_APPROVED_TOPIC", "reseller-approved"),
			ResellerRejectedTopic:  getEnv("RESELLER_REJECTED_TOPIC", "reseller-rejected"),
			ResellerDeletedTopic:   getEnv("RESELLER_DELETED_TOPIC", "reseller-deleted"),
			ResellerRestoredTopic:  getEnv("RESELLER_RESTORED_TOPIC", "reseller-restored"),
			NotificationEmailTopic: getEnv("NOTIFICATION_EMAIL_TOPIC", "notification-email"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		SMTPConfig: SMTPConfig{
			Server:   os.Getenv("SMTP_SERVER"),
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		AdminBootstrap: AdminBootstrapConfig{
			Username: os.Getenv("ADMIN_USERNAME"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		AuthServiceHost: os.Getenv("AUTH_SERVICE_HOST"),
		ServiceAPIKey:   os.Getenv("SERVICE_API_KEY"),
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}
	conf.SMTPConfig.Port = smtpPort

	timeoutSeconds, err := strconv.Atoi(os.Getenv("AUTH_CLIENT_TIMEOUT_SECONDS"))
	if err != nil || timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}
	conf.AuthClientTimeout = time.Duration(timeoutSeconds) * time.Second

	return &conf
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
