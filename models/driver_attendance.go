package models

import (
	"time"

	"github.com/google/uuid"
)

// DriverAttendance records how many drivers were on duty on a date. It
// sizes the daily payroll pool; when absent the driver_count setting is
// used instead.
type DriverAttendance struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Date        time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	DriverCount int       `gorm:"not null" json:"driverCount"`
	Note        string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
