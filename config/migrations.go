package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/rmx-ops/concrete/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250301_create_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.Project{}, &models.MaterialPrice{}, &models.Mix{},
					&models.PriceBand{}, &models.Truck{}, &models.Setting{},
					&models.Dispatch{}, &models.DailySummary{},
				)
			},
		},
		{
			// Volume-banded pricing: the first schema carried one price per
			// (project, mix, effective_from); the load window came later.
			ID: "20250510_add_price_load_window",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.PriceBand{})
			},
		},
		{
			// Shared-payroll driver costing needs the day's head count.
			ID: "20250607_add_driver_attendance",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.DriverAttendance{})
			},
		},
	})

	return m.Migrate()
}
