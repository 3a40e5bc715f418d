package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"glik/config"
	"glik/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect устанавливает соединение с базой данных и выполняет миграции
func Connect(cfg *config.Config) (*gorm.DB, error) {
	// Формируем строку подключения
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.DBName,
	)

	// Настраиваем логгер
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// Устанавливаем соединение
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %v", err)
	}

	// Настраиваем пул соединений
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пула соединений: %v", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Выполняем SQL миграции
	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("ошибка выполнения SQL миграций: %v", err)
	}

	// Выполняем автоматическую миграцию моделей
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("ошибка автоматической миграции моделей: %v", err)
	}

	return db, nil
}

// runMigrations выполняет SQL миграции
func runMigrations(cfg *config.Config) error {
	// Формируем URL для миграций
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.DBName,
	)

	m, err := migrate.New(
		"file://migrations",
		dsn,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания миграции: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("ошибка выполнения миграций: %v", err)
	}

	return nil
}

// autoMigrate выполняет автоматическую миграцию моделей
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Group{},
		&models.User{},
		&models.Address{},
		&models.UserContact{},
		&models.Company{},
		&models.UserDocument{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.LoanGrantor{},
		&models.Lease{},
		&models.Payment{},
		&models.PaymentDelay{},
	)
	if err != nil {
		return fmt.Errorf("ошибка автоматической миграции: %v", err)
	}

	return nil
}

// SeedGroups создает стандартные группы пользователей, если их нет
func SeedGroups(db *gorm.DB) error {
	for _, name := range []string{models.GroupAdmin, models.GroupCustomer, models.GroupRider} {
		var group models.Group
		if err := db.Where("name = ?", name).
			FirstOrCreate(&group, models.Group{Name: name}).Error; err != nil {
			return fmt.Errorf("ошибка создания группы %s: %v", name, err)
		}
	}
	return nil
}

// IsHealthy проверяет живость соединения с базой данных
func IsHealthy(db *gorm.DB) bool {
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}
