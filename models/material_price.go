package models

import (
	"time"

	"github.com/google/uuid"
)

// MaterialPrice is a named snapshot of raw-material unit prices ($/kg),
// usually one per supplier contract year. Mixes reference a snapshot to
// derive their material cost per cubic meter.
type MaterialPrice struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PriceID string    `gorm:"size:20;uniqueIndex;not null" json:"priceId"`
	Name    string    `gorm:"size:50" json:"name,omitempty"`

	SandPrice      float64 `gorm:"default:0" json:"sandPrice"`
	StonePrice     float64 `gorm:"default:0" json:"stonePrice"`
	CementPrice    float64 `gorm:"default:0" json:"cementPrice"`
	SlagPrice      float64 `gorm:"default:0" json:"slagPrice"`
	FlyashPrice    float64 `gorm:"default:0" json:"flyashPrice"`
	AdmixturePrice float64 `gorm:"default:0" json:"admixturePrice"`

	EffectiveFrom *time.Time `gorm:"type:date" json:"effectiveFrom,omitempty"`
	EffectiveTo   *time.Time `gorm:"type:date" json:"effectiveTo,omitempty"`

	IsActive  bool      `gorm:"default:true" json:"isActive"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
