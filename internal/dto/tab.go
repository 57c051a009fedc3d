package dto

import (
	"time"

	"github.com/sonit/feedbacksite/internal/models"
)

// TabDTO represents a tab in API responses
type TabDTO struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	OwnerAccountID uint64    `json:"owner_account_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SubTabDTO represents a sub-tab in API responses
type SubTabDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	TabID     uint64    `json:"tab_id"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TabListResponse represents the caller's tabs
type TabListResponse struct {
	Tabs []TabDTO `json:"tabs"`
}

// SubTabListResponse represents the sub-tabs of a tab
type SubTabListResponse struct {
	SubTabs []SubTabDTO `json:"subtabs"`
}

// ToTabDTO converts a Tab model to TabDTO
func ToTabDTO(tab models.Tab) TabDTO {
	return TabDTO{
		ID:             tab.ID,
		Name:           tab.Name,
		OwnerAccountID: tab.OwnerAccountID,
		CreatedAt:      tab.CreatedAt,
		UpdatedAt:      tab.UpdatedAt,
	}
}

// ToSubTabDTO converts a SubTab model to SubTabDTO
func ToSubTabDTO(subTab models.SubTab) SubTabDTO {
	return SubTabDTO{
		ID:        subTab.ID,
		Name:      subTab.Name,
		TabID:     subTab.TabID,
		IsDefault: subTab.IsDefault,
		CreatedAt: subTab.CreatedAt,
		UpdatedAt: subTab.UpdatedAt,
	}
}

// ToTabListResponse converts tabs to a list response
func ToTabListResponse(tabs []models.Tab) TabListResponse {
	items := make([]TabDTO, len(tabs))
	for i, tab := range tabs {
		items[i] = ToTabDTO(tab)
	}
	return TabListResponse{Tabs: items}
}

// ToSubTabListResponse converts sub-tabs to a list response
func ToSubTabListResponse(subTabs []models.SubTab) SubTabListResponse {
	items := make([]SubTabDTO, len(subTabs))
	for i, subTab := range subTabs {
		items[i] = ToSubTabDTO(subTab)
	}
	return SubTabListResponse{SubTabs: items}
}
