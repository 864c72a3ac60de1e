package db

import (
	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Unp{},
		&model.User{},
		&model.Declaration{},
		&model.Payment{},
		&model.Vehicle{},
		&model.Activity{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial reference data to the database (optional)
func Seed() error {
	return seedUnps()
}

// seedUnps fills the UNP company-registry reference with a starter set so a
// fresh instance can register clients. Real registries are imported with
// cmd/seed.
func seedUnps() error {
	var count int64
	if err := DB.Model(&model.Unp{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("UNP reference already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding UNP reference data...")

	unps := []model.Unp{
		{Unp: "123456789", CompanyName: "Acme Ltd"},
		{Unp: "987654321", CompanyName: "BelTrans Logistics"},
		{Unp: "192837465", CompanyName: "Global Freight LLC"},
	}

	for _, unp := range unps {
		if err := DB.Create(&unp).Error; err != nil {
			logger.Error("Failed to create UNP reference row", err, map[string]interface{}{
				"unp": unp.Unp,
			})
			return err
		}
	}

	logger.Info("UNP reference seeded successfully", map[string]interface{}{
		"total_rows": len(unps),
	})
	return nil
}
