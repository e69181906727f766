package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a construction site the plant delivers to.
//
// Per-project defaults (distance, mix) are stored here so dispatch entry
// only needs the values that actually vary per trip. The short-load subsidy
// is configured per project as well.
type Project struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name string    `gorm:"size:100;not null" json:"name"`

	Address      string `gorm:"size:200" json:"address,omitempty"`
	ContactName  string `gorm:"size:50" json:"contactName,omitempty"`
	ContactPhone string `gorm:"size:20" json:"contactPhone,omitempty"`

	// Defaults applied when a dispatch row leaves them blank.
	DefaultDistanceKm float64    `gorm:"default:10" json:"defaultDistanceKm"`
	DefaultMixID      *uuid.UUID `gorm:"type:uuid" json:"defaultMixId,omitempty"`
	DefaultMix        *Mix       `gorm:"foreignKey:DefaultMixID" json:"defaultMix,omitempty"`

	// Short-load subsidy: paid in full when a trip carries less than the
	// threshold volume.
	SubsidyThresholdM3 float64 `gorm:"default:6" json:"subsidyThresholdM3"`
	SubsidyAmount      float64 `gorm:"default:500" json:"subsidyAmount"`

	IsActive  bool      `gorm:"default:true" json:"isActive"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
