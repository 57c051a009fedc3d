package models

import "time"

type Tab struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_tabs_owner_name" json:"name"`
	OwnerAccountID uint64    `gorm:"not null;uniqueIndex:idx_tabs_owner_name" json:"owner_account_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	SubTabs []SubTab `gorm:"foreignKey:TabID;constraint:OnDelete:CASCADE" json:"-"`
}
