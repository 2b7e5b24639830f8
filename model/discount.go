package model

import "time"

type Discount struct {
	DTO
	Code              string     `gorm:"unique;not null" json:"code"` // luôn lưu chữ hoa
	Percentage        float64    `gorm:"not null" json:"percentage"`
	MaxDiscountAmount *float64   `json:"maxDiscountAmount"`
	MinOrderAmount    *float64   `json:"minOrderAmount"`
	ExpiresAt         *time.Time `json:"expiresAt"`
	UsageLimit        *int       `json:"usageLimit"`
	UsageCount        int        `gorm:"default:0" json:"usageCount"`
	IsActive          bool       `gorm:"default:true" json:"isActive"`
}

type Discounts []Discount

type CreateDiscountInput struct {
	Code              string     `validate:"required,min=3,max=30" json:"code"`
	Percentage        float64    `validate:"required,gt=0,lte=100" json:"percentage"`
	MaxDiscountAmount *float64   `validate:"omitempty,gt=0" json:"maxDiscountAmount"`
	MinOrderAmount    *float64   `validate:"omitempty,gte=0" json:"minOrderAmount"`
	ExpiresAt         *time.Time `json:"expiresAt"`
	UsageLimit        *int       `validate:"omitempty,gt=0" json:"usageLimit"`
}

type EditDiscountInput struct {
	Percentage        *float64   `validate:"omitempty,gt=0,lte=100" json:"percentage,omitempty"`
	MaxDiscountAmount *float64   `validate:"omitempty,gt=0" json:"maxDiscountAmount,omitempty"`
	MinOrderAmount    *float64   `validate:"omitempty,gte=0" json:"minOrderAmount,omitempty"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
	UsageLimit        *int       `validate:"omitempty,gt=0" json:"usageLimit,omitempty"`
	IsActive          *bool      `json:"isActive,omitempty"`
}

type PreviewDiscountInput struct {
	Code        string  `validate:"required" json:"code"`
	OrderAmount float64 `validate:"required,gt=0" json:"orderAmount"`
}
