package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/config"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/entity"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/qrcode"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Product{},
		&entity.Customer{},
		&entity.Transaction{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the staff account and, on an empty database, a
// small set of demo products and customers.
func SeedDefaultData(db *gorm.DB, cfg *config.Config) error {
	log.Println("Seeding default data...")

	var existingUser entity.User
	if err := db.Where("username = ?", cfg.Admin.Username).First(&existingUser).Error; err != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		adminUser := entity.User{
			Username:     cfg.Admin.Username,
			PasswordHash: string(hashedPassword),
		}
		if err := db.Create(&adminUser).Error; err != nil {
			log.Printf("Warning: failed to create admin user: %v", err)
		} else {
			log.Printf("Admin user created: %s", cfg.Admin.Username)
		}
	}

	var productCount int64
	db.Model(&entity.Product{}).Count(&productCount)
	if productCount == 0 {
		demoProducts := []entity.Product{
			{Name: "Red T-Shirt", Price: 25000, Stock: 50},
			{Name: "Blue Jeans", Price: 120000, Stock: 30},
			{Name: "Leather Wallet", Price: 45000, Stock: 10},
		}
		for i := range demoProducts {
			if err := db.Create(&demoProducts[i]).Error; err != nil {
				log.Printf("Warning: failed to seed product %s: %v", demoProducts[i].Name, err)
				continue
			}
			if encoded, err := qrcode.GenerateBase64(qrcode.ProductPayload(demoProducts[i].ID), qrcode.DefaultSize); err == nil {
				db.Model(&demoProducts[i]).Update("qr_code", encoded)
			}
		}
	}

	var customerCount int64
	db.Model(&entity.Customer{}).Count(&customerCount)
	if customerCount == 0 {
		karanEmail := "karan@example.com"
		priyaEmail := "priya@example.com"
		demoCustomers := []entity.Customer{
			{Name: "Karan", Phone: "9876543210", Email: &karanEmail},
			{Name: "Priya Sharma", Phone: "9988776655", Email: &priyaEmail},
		}
		for i := range demoCustomers {
			if err := db.Create(&demoCustomers[i]).Error; err != nil {
				log.Printf("Warning: failed to seed customer %s: %v", demoCustomers[i].Name, err)
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
