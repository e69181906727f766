package models

import (
	"time"

	"github.com/google/uuid"
)

// DailySummary is a manually entered bulk shipment total for one day,
// project and strength, used when individual trips were not recorded.
// Its trip count still participates in the shared-payroll allocation.
type DailySummary struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Date      time.Time `gorm:"type:date;not null;index:ix_summary_date_project,priority:1" json:"date"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:ix_summary_date_project,priority:2" json:"projectId"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	PSI     *int    `json:"psi,omitempty"`
	TotalM3 float64 `gorm:"not null" json:"totalM3"`
	Trips   int     `gorm:"not null;default:0" json:"trips"`

	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
