package models

import (
	"time"

	"github.com/google/uuid"
)

// PriceBand is the agreed unit price for one (project, mix) pair. A pair
// may carry several bands distinguished by an optional effective-date
// window and an optional load-volume window; band selection for a given
// trip happens in the calculator package.
type PriceBand struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:ix_price_lookup,priority:1;uniqueIndex:uq_project_mix_from,priority:1" json:"projectId"`
	MixID     uuid.UUID `gorm:"type:uuid;not null;index:ix_price_lookup,priority:2;uniqueIndex:uq_project_mix_from,priority:2" json:"mixId"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Mix       *Mix      `gorm:"foreignKey:MixID" json:"mix,omitempty"`

	PricePerM3 float64 `gorm:"not null" json:"pricePerM3"`

	EffectiveFrom *time.Time `gorm:"type:date;uniqueIndex:uq_project_mix_from,priority:3" json:"effectiveFrom,omitempty"`
	EffectiveTo   *time.Time `gorm:"type:date" json:"effectiveTo,omitempty"`

	// Optional volume window; a band with bounds set beats a catch-all
	// band when both qualify.
	LoadMinM3 *float64 `json:"loadMinM3,omitempty"`
	LoadMaxM3 *float64 `json:"loadMaxM3,omitempty"`

	IsActive  bool      `gorm:"default:true;index:ix_price_lookup,priority:3" json:"isActive"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName keeps the historical table name from the first schema version.
func (PriceBand) TableName() string { return "project_prices" }
