package model

import (
	"time"

	"github.com/google/uuid"
)

// User role constants
const (
	RoleAdmin       = "Admin"
	RoleManager     = "ProjectManager"
	RoleFinance     = "Finance"
	RoleProcurement = "ProcurementOfficer"
	RoleQuality     = "Quality"
	RoleDesigner    = "Designer"
	RoleViewer      = "Viewer"
)

// User status constants
const (
	UserActive   = "Active"
	UserInactive = "Inactive"
)

// User is the central account entity.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	Role      string    `gorm:"type:varchar(50);not null;index" json:"role"`
	Status    string    `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
