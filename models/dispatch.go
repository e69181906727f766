package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Dispatch statuses. A cancelled record stays in the table for audit but is
// excluded from payroll sharing, duplicate detection and every report.
const (
	DispatchCompleted = "completed"
	DispatchCancelled = "cancelled"
)

// Dispatch is one truck-load delivery. Every monetary field is computed and
// frozen at commit time so reports never recalculate; the two JSON columns
// keep the exact operands and formulas used, for audit display. Rows are
// immutable once created apart from the status transition to cancelled.
type Dispatch struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	// MMDD + project code + 2-digit sequence, e.g. 0115BIG0101. The unique
	// index is the authoritative collision guard under concurrent writers.
	DispatchNo string `gorm:"size:20;uniqueIndex;not null" json:"dispatchNo"`

	Date      time.Time `gorm:"type:date;not null;index:ix_dispatch_date_project,priority:1" json:"date"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:ix_dispatch_date_project,priority:2" json:"projectId"`
	MixID     uuid.UUID `gorm:"type:uuid;not null" json:"mixId"`
	TruckID   uuid.UUID `gorm:"type:uuid;not null;index" json:"truckId"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Mix       *Mix      `gorm:"foreignKey:MixID" json:"mix,omitempty"`
	Truck     *Truck    `gorm:"foreignKey:TruckID" json:"truck,omitempty"`

	LoadM3     float64 `gorm:"not null" json:"loadM3"`
	DistanceKm float64 `gorm:"not null" json:"distanceKm"`

	PricePerM3 float64 `json:"pricePerM3"`

	Revenue      float64 `gorm:"default:0" json:"revenue"`
	Subsidy      float64 `gorm:"default:0" json:"subsidy"`
	TotalRevenue float64 `gorm:"default:0" json:"totalRevenue"`

	MaterialCost float64 `gorm:"default:0" json:"materialCost"`
	FuelCost     float64 `gorm:"default:0" json:"fuelCost"`
	DriverCost   float64 `gorm:"default:0" json:"driverCost"`
	TotalCost    float64 `gorm:"default:0" json:"totalCost"`

	GrossProfit  float64 `gorm:"default:0" json:"grossProfit"`
	ProfitMargin float64 `gorm:"default:0" json:"profitMargin"`

	// Fuel price in force when the trip was costed.
	FuelPrice float64 `json:"fuelPrice"`

	RevenueDetails datatypes.JSON `json:"revenueDetails,omitempty"`
	CostDetails    datatypes.JSON `json:"costDetails,omitempty"`

	Status    string    `gorm:"size:20;default:completed" json:"status"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Dispatch) TableName() string { return "dispatches" }
