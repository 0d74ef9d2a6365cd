package database

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/turtlemeow87-design/tradscendence-site/internal/models"
)

type Client struct {
	DB *gorm.DB
}

// New connects to Postgres using a DATABASE_URL style DSN.
func New(dsn string, log *zap.Logger) (*Client, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Connection Pool Settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("database connected")

	return &Client{DB: db}, nil
}

// AutoMigrate creates/updates tables based on struct definitions.
func (c *Client) AutoMigrate() error {
	return c.DB.AutoMigrate(
		&models.Instrument{},
		&models.InstrumentVideo{},
		&models.InstrumentMood{},
		&models.ContactSubmission{},
	)
}

// SaveSubmission appends one validated contact submission.
func (c *Client) SaveSubmission(ctx context.Context, sub *models.ContactSubmission) error {
	return c.DB.WithContext(ctx).Create(sub).Error
}
