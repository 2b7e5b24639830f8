package model

import "time"

const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderCancelled = "CANCELLED"

	PaymentUnpaid  = "UNPAID"
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

type Order struct {
	DTO
	PublicCode string `gorm:"unique;size:20" json:"publicCode"` // Mã đơn hàng công khai (ORD-XXXXXX)
	// OrderCode là mã số gửi sang cổng thanh toán, cổng trả lại mã này ở callback
	OrderCode int64 `gorm:"uniqueIndex" json:"orderCode"`

	CustomerID *uint     `json:"customerId,omitempty"` // null nếu khách vãng lai
	Customer   *Customer `json:"customer,omitempty"`
	EventID    uint      `json:"eventId"`
	Event      Event     `json:"event"`

	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Email        string `gorm:"not null" json:"email"`

	TotalAmount    float64 `json:"totalAmount"` // Tổng tiền sau giảm giá, bất biến sau khi tạo
	DiscountAmount float64 `json:"discountAmount"`
	DiscountCode   string  `json:"discountCode"`

	Status        string     `gorm:"default:'PENDING'" json:"status"`       // PENDING, CONFIRMED, CANCELLED
	PaymentStatus string     `gorm:"default:'UNPAID'" json:"paymentStatus"` // UNPAID, PENDING, PAID
	PaymentMethod string     `json:"paymentMethod"`                         // PAYOS
	PaymentCode   string     `json:"paymentCode"` // mã phiên thanh toán bên cổng
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`

	Tickets []Ticket `gorm:"foreignKey:OrderId" json:"tickets,omitempty"`
}

type Orders []Order

type OrderLineRequest struct {
	TicketTypeId uint `validate:"required,gt=0" json:"ticketTypeId"`
	Quantity     int  `validate:"required,gte=1" json:"quantity"`
}

type CreateOrderInput struct {
	EventId      uint               `validate:"required,gt=0" json:"eventId"`
	Lines        []OrderLineRequest `validate:"required,min=1,dive" json:"lines"`
	CustomerName string             `json:"customerName"`
	Phone        string             `json:"phone"`
	Email        string             `validate:"required,email" json:"email"`
	DiscountCode string             `json:"discountCode"`
}

type FilterOrderInput struct {
	Pagination
	EventId       uint       `json:"eventId" validate:"omitempty,gt=0"`
	Status        string     `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	PaymentStatus string     `json:"paymentStatus" validate:"omitempty,oneof=UNPAID PENDING PAID"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
}
