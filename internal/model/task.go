package model

import "time"

// Task status constants
const (
	TaskPending    = "Pending"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
	TaskBlocked    = "Blocked"
)

// Task is a unit of project work assigned to a user.
// TaskID is the human-readable business identifier ("TSK-001"), distinct from
// the numeric row key.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TaskID      string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"task_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	ProjectID   *uint      `gorm:"index" json:"project_id"`
	AssigneeID  *uint      `gorm:"index" json:"assignee_id"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `gorm:"type:varchar(20);not null;default:'Medium';index" json:"priority"`
	Status      string     `gorm:"type:varchar(30);not null;default:'Pending';index" json:"status"`
	Progress    int        `gorm:"not null;default:0" json:"progress"` // 0-100
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
