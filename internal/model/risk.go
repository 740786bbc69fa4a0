package model

import "time"

// Risk level/impact constants
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Risk status constants
const (
	RiskOpen      = "Open"
	RiskMitigated = "Mitigated"
	RiskClosed    = "Closed"
)

// Risk is an identified project risk with its mitigation plan.
type Risk struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RiskID         string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"risk_id"`
	ProjectID      *uint     `gorm:"index" json:"project_id"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	Level          string    `gorm:"type:varchar(20);not null;default:'Medium';index" json:"level"`
	Impact         string    `gorm:"type:varchar(20);not null;default:'Medium';index" json:"impact"`
	MitigationPlan string    `gorm:"type:text" json:"mitigation_plan"`
	Owner          string    `gorm:"type:varchar(255)" json:"owner"`
	Probability    string    `gorm:"type:varchar(20)" json:"probability"`
	Status         string    `gorm:"type:varchar(30);not null;default:'Open';index" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// QualityInspection is a site inspection record tied to a task.
type QualityInspection struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	InspectionID string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"inspection_id"`
	TaskID       *uint      `gorm:"index" json:"task_id"`
	Date         *time.Time `json:"date"`
	Inspector    string     `gorm:"type:varchar(255)" json:"inspector"`
	Snags        string     `gorm:"type:text" json:"snags"`
	Status       string     `gorm:"type:varchar(30);not null;default:'Open';index" json:"status"`
	HSEIssues    string     `gorm:"type:varchar(255);index" json:"hse_issues"`
	Project      string     `gorm:"type:varchar(255)" json:"project"`
	Description  string     `gorm:"type:text" json:"description"`
	Severity     string     `gorm:"type:varchar(20)" json:"severity"`
	PhotoURL     string     `gorm:"type:varchar(500)" json:"photo_url"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
