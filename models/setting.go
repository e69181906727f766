package models

import (
	"time"

	"github.com/google/uuid"
)

// Setting is a keyed system parameter editable at runtime (fuel price,
// default strength, driver payroll figures).
type Setting struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Key         string    `gorm:"size:50;uniqueIndex;not null" json:"key"`
	Value       string    `gorm:"size:200;not null" json:"value"`
	Description string    `gorm:"size:200" json:"description,omitempty"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Setting keys used by the dispatch engine.
const (
	SettingFuelPrice         = "fuel_price"
	SettingDefaultPSI        = "default_psi"
	SettingDefaultLoadM3     = "default_load_m3"
	SettingDriverDailySalary = "driver_daily_salary"
	SettingDriverCount       = "driver_count"
)
