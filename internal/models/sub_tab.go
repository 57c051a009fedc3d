package models

import "time"

type SubTab struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_sub_tabs_tab_name" json:"name"`
	TabID     uint64    `gorm:"not null;uniqueIndex:idx_sub_tabs_tab_name" json:"tab_id"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Feedback []Feedback `gorm:"foreignKey:SubTabID;constraint:OnDelete:CASCADE" json:"-"`
}
