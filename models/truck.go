package models

import (
	"time"

	"github.com/google/uuid"
)

// Truck is a mixer truck together with its regular driver.
type Truck struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code    string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	PlateNo string    `gorm:"size:20;not null" json:"plateNo"`

	DriverName  string `gorm:"size:50" json:"driverName,omitempty"`
	DriverPhone string `gorm:"size:20" json:"driverPhone,omitempty"`

	DefaultLoadM3 float64 `gorm:"default:8" json:"defaultLoadM3"`
	FuelLPerKm    float64 `gorm:"default:0.5" json:"fuelLPerKm"`
	// Flat per-trip driver pay, used when no daily payroll pool applies.
	DriverPayPerTrip float64 `gorm:"default:800" json:"driverPayPerTrip"`

	IsActive  bool      `gorm:"default:true" json:"isActive"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
