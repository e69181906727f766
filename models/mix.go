package models

import (
	"time"

	"github.com/google/uuid"
)

// Mix is a concrete mix design: a strength class (PSI) plus the recipe
// quantities per cubic meter. The material cost per m³ is derived from the
// linked MaterialPrice snapshot and cached on the row; it is recomputed
// whenever the recipe or the snapshot changes.
type Mix struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	PSI  int       `gorm:"index;not null" json:"psi"`
	Name string    `gorm:"size:50" json:"name,omitempty"`

	MaterialPriceID *uuid.UUID     `gorm:"type:uuid" json:"materialPriceId,omitempty"`
	MaterialPrice   *MaterialPrice `gorm:"foreignKey:MaterialPriceID" json:"materialPrice,omitempty"`

	// Recipe quantities, kg per m³.
	Sand1Kg     float64 `gorm:"default:0" json:"sand1Kg"`
	Sand2Kg     float64 `gorm:"default:0" json:"sand2Kg"`
	Stone1Kg    float64 `gorm:"default:0" json:"stone1Kg"`
	Stone2Kg    float64 `gorm:"default:0" json:"stone2Kg"`
	CementKg    float64 `gorm:"default:0" json:"cementKg"`
	SlagKg      float64 `gorm:"default:0" json:"slagKg"`
	FlyashKg    float64 `gorm:"default:0" json:"flyashKg"`
	AdmixtureKg float64 `gorm:"default:0" json:"admixtureKg"`

	MaterialCostPerM3 float64 `gorm:"default:0" json:"materialCostPerM3"`

	IsActive  bool      `gorm:"default:true" json:"isActive"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// MaterialCostComponent is one line of a mix cost breakdown.
type MaterialCostComponent struct {
	Material   string  `json:"material"`
	QuantityKg float64 `json:"quantityKg"`
	UnitPrice  float64 `json:"unitPrice"`
	Subtotal   float64 `json:"subtotal"`
}

// CalcMaterialCost derives the material cost per m³ from a price snapshot.
// When mp is nil the cached value on the row is kept as-is.
func (m *Mix) CalcMaterialCost(mp *MaterialPrice) float64 {
	if mp == nil {
		mp = m.MaterialPrice
	}
	if mp == nil {
		return m.MaterialCostPerM3
	}

	sand := (m.Sand1Kg + m.Sand2Kg) * mp.SandPrice
	stone := (m.Stone1Kg + m.Stone2Kg) * mp.StonePrice
	cement := m.CementKg * mp.CementPrice
	slag := m.SlagKg * mp.SlagPrice
	flyash := m.FlyashKg * mp.FlyashPrice
	admixture := m.AdmixtureKg * mp.AdmixturePrice

	return sand + stone + cement + slag + flyash + admixture
}

// MaterialBreakdown returns the per-material cost lines for display.
func (m *Mix) MaterialBreakdown(mp *MaterialPrice) []MaterialCostComponent {
	if mp == nil {
		mp = m.MaterialPrice
	}
	if mp == nil {
		return nil
	}

	lines := []MaterialCostComponent{
		{Material: "sand", QuantityKg: m.Sand1Kg + m.Sand2Kg, UnitPrice: mp.SandPrice},
		{Material: "stone", QuantityKg: m.Stone1Kg + m.Stone2Kg, UnitPrice: mp.StonePrice},
		{Material: "cement", QuantityKg: m.CementKg, UnitPrice: mp.CementPrice},
		{Material: "slag", QuantityKg: m.SlagKg, UnitPrice: mp.SlagPrice},
		{Material: "flyash", QuantityKg: m.FlyashKg, UnitPrice: mp.FlyashPrice},
		{Material: "admixture", QuantityKg: m.AdmixtureKg, UnitPrice: mp.AdmixturePrice},
	}
	for i := range lines {
		lines[i].Subtotal = lines[i].QuantityKg * lines[i].UnitPrice
	}
	return lines
}
