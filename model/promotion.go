package model

import "time"

type Promotion struct {
	DTO
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	BannerUrl   *string   `json:"bannerUrl"`
	StartDate   time.Time `gorm:"not null" json:"startDate"`
	EndDate     time.Time `gorm:"not null" json:"endDate"`
	Status      string    `gorm:"default:'active';not null" json:"status"` // active, inactive, expired

	EventId *uint  `json:"eventId"`
	Event   *Event `gorm:"foreignKey:EventId" json:"event,omitempty"`
}

type Promotions []Promotion

type CreatePromotionInput struct {
	Title       string    `validate:"required" json:"title"`
	Description string    `json:"description"`
	BannerUrl   *string   `json:"bannerUrl"`
	StartDate   time.Time `validate:"required" json:"startDate"`
	EndDate     time.Time `validate:"required,gtfield=StartDate" json:"endDate"`
	EventId     *uint     `json:"eventId"`
}

type EditPromotionInput struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	BannerUrl   *string    `json:"bannerUrl,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=active inactive expired"`
	EventId     *uint      `json:"eventId,omitempty"`
}
