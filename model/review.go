package model

type Review struct {
	DTO
	EventId    uint     `gorm:"not null;index:idx_review_event_customer,unique" json:"eventId"`
	CustomerId uint     `gorm:"not null;index:idx_review_event_customer,unique" json:"customerId"`
	Rating     int      `gorm:"not null" json:"rating"` // 1..5
	Comment    string   `gorm:"type:text" json:"comment"`
	Event      Event    `gorm:"foreignKey:EventId" json:"-"`
	Customer   Customer `gorm:"foreignKey:CustomerId" json:"-"`
}

type Reviews []Review

type CreateReviewInput struct {
	EventId uint   `validate:"required,gt=0" json:"eventId"`
	Rating  int    `validate:"required,gte=1,lte=5" json:"rating"`
	Comment string `validate:"max=2000" json:"comment"`
}

type Favorite struct {
	DTO
	CustomerId uint  `gorm:"not null;index:idx_favorite_pair,unique" json:"customerId"`
	EventId    uint  `gorm:"not null;index:idx_favorite_pair,unique" json:"eventId"`
	Event      Event `gorm:"foreignKey:EventId" json:"event,omitempty"`
}

type Notification struct {
	DTO
	CustomerId uint   `gorm:"not null;index" json:"customerId"`
	Title      string `gorm:"not null" json:"title"`
	Content    string `gorm:"type:text" json:"content"`
	IsRead     bool   `gorm:"default:false" json:"isRead"`
}
