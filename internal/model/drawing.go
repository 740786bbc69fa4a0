package model

import "time"

// Drawing stage constants
const (
	StageConcept      = "Concept"
	StageDetailed     = "Detailed"
	StageConstruction = "Construction"
	StageAsBuilt      = "As-Built"
)

// Drawing is a design document stored in the blob store; StorageID is the
// store's opaque identifier used for later removal.
type Drawing struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	DrawingID      string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"drawing_id"`
	ProjectID      *uint      `gorm:"index" json:"project_id"`
	ContractID     *uint      `gorm:"index" json:"contract_id"`
	Stage          string     `gorm:"type:varchar(30);index" json:"stage"`
	FileName       string     `gorm:"type:varchar(255);not null" json:"file_name"`
	FileURL        string     `gorm:"type:varchar(500);not null" json:"file_url"`
	FileSize       int64      `gorm:"not null;default:0" json:"file_size"`
	SubmissionDate *time.Time `json:"submission_date"`
	Status         string     `gorm:"type:varchar(30);not null;default:'Submitted';index" json:"status"`
	StorageID      string     `gorm:"type:varchar(100)" json:"-"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
