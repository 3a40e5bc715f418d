package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config представляет конфигурацию приложения
type Config struct {
	Server struct {
		Port           int
		MonitoringPort int
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	JWT struct {
		SecretKey string
		ExpiresIn int // в часах
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Redis struct {
		Addr     string
		Password string
	}
	S3 struct {
		Endpoint  string
		Region    string
		AccessKey string
		SecretKey string
		Bucket    string
	}
	// Строгий режим таблиц переходов. По умолчанию выключен,
	// исходная система проверяла только принадлежность перечню.
	LeaseStrictTransitions   bool
	PaymentStrictTransitions bool
	// Ключи PGP для шифрования документов в хранилище
	DocumentPublicKey  string
	DocumentPrivateKey string
	DelayCheckInterval int // в минутах
}

// NewConfig создает новый экземпляр конфигурации
func NewConfig() (*Config, error) {
	// .env не обязателен, в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	// Настройки сервера
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("MONITORING_PORT", 9090)

	// Настройки базы данных
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "glik_db")

	// Настройки JWT
	v.SetDefault("JWT_SECRET_KEY", "your-secret-key-here")
	v.SetDefault("JWT_EXPIRES_IN", 24)

	// Настройки SMTP
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "your-email@gmail.com")
	v.SetDefault("SMTP_PASSWORD", "your-app-password")
	v.SetDefault("SMTP_FROM", "your-email@gmail.com")

	// Настройки Redis
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")

	// Настройки хранилища документов
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("S3_BUCKET", "glik-documents")

	v.SetDefault("LEASE_STRICT_TRANSITIONS", false)
	v.SetDefault("PAYMENT_STRICT_TRANSITIONS", false)

	v.SetDefault("DOCUMENT_PUBLIC_KEY", "")
	v.SetDefault("DOCUMENT_PRIVATE_KEY", "")
	v.SetDefault("DELAY_CHECK_INTERVAL", 60)

	cfg := &Config{}
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	cfg.Server.MonitoringPort = v.GetInt("MONITORING_PORT")
	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetInt("DB_PORT")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.DBName = v.GetString("DB_NAME")
	cfg.JWT.SecretKey = v.GetString("JWT_SECRET_KEY")
	cfg.JWT.ExpiresIn = v.GetInt("JWT_EXPIRES_IN")
	cfg.SMTP.Host = v.GetString("SMTP_HOST")
	cfg.SMTP.Port = v.GetInt("SMTP_PORT")
	cfg.SMTP.Username = v.GetString("SMTP_USERNAME")
	cfg.SMTP.Password = v.GetString("SMTP_PASSWORD")
	cfg.SMTP.From = v.GetString("SMTP_FROM")
	cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.S3.Endpoint = v.GetString("S3_ENDPOINT")
	cfg.S3.Region = v.GetString("S3_REGION")
	cfg.S3.AccessKey = v.GetString("S3_ACCESS_KEY")
	cfg.S3.SecretKey = v.GetString("S3_SECRET_KEY")
	cfg.S3.Bucket = v.GetString("S3_BUCKET")
	cfg.LeaseStrictTransitions = v.GetBool("LEASE_STRICT_TRANSITIONS")
	cfg.PaymentStrictTransitions = v.GetBool("PAYMENT_STRICT_TRANSITIONS")
	cfg.DocumentPublicKey = v.GetString("DOCUMENT_PUBLIC_KEY")
	cfg.DocumentPrivateKey = v.GetString("DOCUMENT_PRIVATE_KEY")
	cfg.DelayCheckInterval = v.GetInt("DELAY_CHECK_INTERVAL")

	return cfg, nil
}
