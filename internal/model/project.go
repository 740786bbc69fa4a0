package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project status constants
const (
	ProjectNotStarted = "Not Started"
	ProjectInProgress = "In Progress"
	ProjectOnHold     = "On Hold"
	ProjectCompleted  = "Completed"
)

// Priority constants shared by projects and tasks
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Project is the root entity everything else hangs off.
type Project struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Client      string          `gorm:"type:varchar(255);not null" json:"client"`
	Description string          `gorm:"type:text" json:"description"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	Budget      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"budget"`
	Status      string          `gorm:"type:varchar(30);not null;default:'Not Started';index" json:"status"`
	Priority    string          `gorm:"type:varchar(20);not null;default:'Medium';index" json:"priority"`
	ManagerID   *uint           `gorm:"index" json:"manager_id"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Milestone is a dated checkpoint within a project.
type Milestone struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProjectID   uint       `gorm:"not null;index" json:"project_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	PlannedDate *time.Time `json:"planned_date"`
	ActualDate  *time.Time `json:"actual_date"`
	Status      string     `gorm:"type:varchar(30);not null;default:'Pending';index" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
