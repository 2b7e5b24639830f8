package model

import "time"

const (
	TicketIssued    = "ISSUED"    // Đã phát hành, chưa soát
	TicketUsed      = "USED"      // Đã check-in
	TicketCancelled = "CANCELLED" // Đơn bị hủy
)

// Ticket là một đơn vị vào cửa: mỗi vé mang một mã soát vé riêng,
// số lượng N trên một hạng vé sinh ra N dòng Ticket
type Ticket struct {
	DTO
	OrderId      uint       `gorm:"not null;index" json:"orderId"`
	TicketTypeId uint       `gorm:"not null;index" json:"ticketTypeId"`
	EventId      uint       `gorm:"not null;index" json:"eventId"`
	TicketCode   string     `gorm:"size:64;uniqueIndex" json:"ticketCode"` // mã soát vé, in ra QR
	Price        float64    `gorm:"not null" json:"price"`                 // giá chốt tại thời điểm mua
	Status       string     `gorm:"not null;default:'ISSUED'" json:"status"`
	CheckedIn    bool       `gorm:"default:false" json:"checkedIn"`
	Used         bool       `gorm:"default:false" json:"used"`
	UsedAt       *time.Time `json:"usedAt,omitempty"`
	CheckedInBy  *uint      `json:"checkedInBy,omitempty"` // account nhân viên soát vé

	// Relationship – không expose vào JSON mặc định
	Order      Order      `gorm:"foreignKey:OrderId" json:"-"`
	TicketType TicketType `gorm:"foreignKey:TicketTypeId" json:"-"`
	Event      Event      `gorm:"foreignKey:EventId" json:"-"`
}

type Tickets []Ticket

type FilterTicketInput struct {
	Pagination
	EventId   uint   `json:"eventId" validate:"omitempty,gt=0"`
	Status    string `json:"status" validate:"omitempty,oneof=ISSUED USED CANCELLED"`
	CheckedIn *bool  `json:"checkedIn"`
}
