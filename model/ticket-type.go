package model

import "time"

type TicketType struct {
	DTO
	EventId uint  `gorm:"not null;index" json:"eventId"`
	Event   Event `gorm:"foreignKey:EventId" json:"-"`

	Name     string  `gorm:"not null" json:"name"` // VIP, GA, Early Bird...
	Price    float64 `gorm:"not null" json:"price"`
	Capacity int     `gorm:"not null" json:"capacity"`
	// Remaining chỉ được giảm qua helper.ReserveInventory, không bao giờ cộng lại
	Remaining int `gorm:"not null" json:"remaining"`

	SaleStart time.Time `json:"saleStart"`
	SaleEnd   time.Time `json:"saleEnd"`

	MinPerOrder int `gorm:"default:1" json:"minPerOrder"`
	MaxPerOrder int `gorm:"default:10" json:"maxPerOrder"`
}

type TicketTypes []TicketType

type CreateTicketTypeInput struct {
	Name        string    `validate:"required" json:"name"`
	Price       float64   `validate:"required,gte=0" json:"price"`
	Capacity    int       `validate:"required,gt=0" json:"capacity"`
	SaleStart   time.Time `validate:"required" json:"saleStart"`
	SaleEnd     time.Time `validate:"required,gtfield=SaleStart" json:"saleEnd"`
	MinPerOrder int       `validate:"omitempty,gte=1" json:"minPerOrder"`
	MaxPerOrder int       `validate:"omitempty,gte=1" json:"maxPerOrder"`
}

type EditTicketTypeInput struct {
	Name        *string    `json:"name,omitempty"`
	Price       *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	SaleStart   *time.Time `json:"saleStart,omitempty"`
	SaleEnd     *time.Time `json:"saleEnd,omitempty"`
	MinPerOrder *int       `json:"minPerOrder,omitempty" validate:"omitempty,gte=1"`
	MaxPerOrder *int       `json:"maxPerOrder,omitempty" validate:"omitempty,gte=1"`
}
