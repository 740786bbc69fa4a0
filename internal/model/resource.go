package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resource availability constants
const (
	ResourceAvailable = "Available"
	ResourceAssigned  = "Assigned"
	ResourceOnLeave   = "On Leave"
)

// Resource is a person or crew that can be assigned to tasks, either in-house
// or through a subcontractor.
type Resource struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Role          string          `gorm:"type:varchar(100);index" json:"role"`
	Subcontractor string          `gorm:"type:varchar(255)" json:"subcontractor"`
	Rate          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"rate"`
	Availability  string          `gorm:"type:varchar(30);not null;default:'Available';index" json:"availability"`
	AssignedTasks string          `gorm:"type:text" json:"assigned_tasks"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
