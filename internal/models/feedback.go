package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is one of the known priorities. Matching is case-sensitive.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type Feedback struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     *string   `gorm:"type:varchar(255)" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Priority  *Priority `gorm:"type:varchar(10);index" json:"priority"`
	Category  *string   `gorm:"type:varchar(100);index" json:"category"`
	SubTabID  uint64    `gorm:"not null;index" json:"sub_tab_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the table name singular; "feedback" has no plural.
func (Feedback) TableName() string {
	return "feedback"
}
