package config

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rmx-ops/concrete/models"
)

// SeedDefaultSettings inserts the engine's setting keys with their
// conventional defaults, skipping keys that already exist.
func SeedDefaultSettings() error {
	defaults := []models.Setting{
		{Key: models.SettingFuelPrice, Value: "32.5", Description: "current fuel price $/L"},
		{Key: models.SettingDefaultPSI, Value: "3000", Description: "default mix strength"},
		{Key: models.SettingDefaultLoadM3, Value: "8", Description: "default load m³"},
		{Key: models.SettingDriverDailySalary, Value: "0", Description: "driver daily salary"},
		{Key: models.SettingDriverCount, Value: "0", Description: "driver head count"},
	}

	for _, s := range defaults {
		var existing models.Setting
		err := DB.Where("key = ?", s.Key).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := DB.Create(&s).Error; err != nil {
			return err
		}
		log.Info().Str("key", s.Key).Str("value", s.Value).Msg("seeded setting")
	}
	return nil
}
