package helper

import (
	"concert_hub/model"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound         = errors.New("sự kiện không tồn tại")
	ErrEventNotOnSale        = errors.New("sự kiện không còn mở bán")
	ErrTicketTypeNotFound    = errors.New("hạng vé không tồn tại")
	ErrSaleWindowClosed      = errors.New("hạng vé chưa mở bán hoặc đã đóng bán")
	ErrQuantityNotAllowed    = errors.New("số lượng vé không nằm trong giới hạn cho phép")
	ErrInsufficientInventory = errors.New("hạng vé không còn đủ số lượng")
)

// ReserveInventory trừ tồn kho của một hạng vé bằng một câu UPDATE có điều kiện.
// Hai đơn cùng tranh N vé cuối chỉ có một đơn trừ được: điều kiện remaining >= qty
// nằm ngay trong câu lệnh, RowsAffected == 0 nghĩa là không còn đủ vé.
func ReserveInventory(tx *gorm.DB, ticketTypeId uint, qty int) error {
	result := tx.Model(&model.TicketType{}).
		Where("id = ? AND remaining >= ?", ticketTypeId, qty).
		Update("remaining", gorm.Expr("remaining - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientInventory
	}
	return nil
}

// CreateOrder tạo đơn hàng trong một transaction duy nhất: kiểm tra cửa sổ bán,
// trừ tồn kho, chốt giá từng vé, sinh mã soát vé cho từng vé, áp mã giảm giá.
// Bất kỳ bước nào lỗi thì rollback toàn bộ, tồn kho không bị trừ lửng.
// customerId truyền tường minh, nil nếu khách vãng lai.
func CreateOrder(db *gorm.DB, input model.CreateOrderInput, customerId *uint, now time.Time) (*model.Order, error) {
	var order *model.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var event model.Event
		if err := tx.First(&event, input.EventId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if event.Status == model.EventEnded || event.Status == model.EventCancelled {
			return ErrEventNotOnSale
		}

		totalAmount := float64(0)
		var tickets []model.Ticket

		for _, line := range input.Lines {
			var ticketType model.TicketType
			if err := tx.Where("id = ? AND event_id = ?", line.TicketTypeId, event.ID).
				First(&ticketType).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTicketTypeNotFound
				}
				return err
			}

			if now.Before(ticketType.SaleStart) || now.After(ticketType.SaleEnd) {
				return ErrSaleWindowClosed
			}
			if line.Quantity < ticketType.MinPerOrder || line.Quantity > ticketType.MaxPerOrder {
				return ErrQuantityNotAllowed
			}

			if err := ReserveInventory(tx, ticketType.ID, line.Quantity); err != nil {
				return err
			}

			// Mỗi vé là một dòng riêng với mã soát vé riêng, giá chốt tại thời điểm mua
			for i := 0; i < line.Quantity; i++ {
				tickets = append(tickets, model.Ticket{
					TicketTypeId: ticketType.ID,
					EventId:      event.ID,
					TicketCode:   "TKT-" + uuid.NewString(),
					Price:        ticketType.Price,
					Status:       model.TicketIssued,
				})
			}
			totalAmount += ticketType.Price * float64(line.Quantity)
		}

		discountAmount := float64(0)
		discountCode := ""
		if input.DiscountCode != "" {
			code := strings.ToUpper(strings.TrimSpace(input.DiscountCode))
			amount, err := applyDiscount(tx, code, totalAmount, now)
			if err != nil {
				return err
			}
			discountAmount = amount
			discountCode = code
			totalAmount -= amount
		}

		order = &model.Order{
			PublicCode:     "ORD-" + strings.ToUpper(uuid.NewString()[:8]),
			OrderCode:      newOrderCode(now),
			CustomerID:     customerId,
			EventID:        event.ID,
			CustomerName:   input.CustomerName,
			Phone:          input.Phone,
			Email:          input.Email,
			TotalAmount:    totalAmount,
			DiscountAmount: discountAmount,
			DiscountCode:   discountCode,
			Status:         model.OrderPending,
			PaymentStatus:  model.PaymentUnpaid,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range tickets {
			tickets[i].OrderId = order.ID
		}
		if err := tx.Create(&tickets).Error; err != nil {
			return err
		}
		order.Tickets = tickets
		order.Event = event

		return nil
	})

	if err != nil {
		return nil, err
	}
	return order, nil
}

// newOrderCode sinh mã số cho cổng thanh toán, cổng trả lại mã này ở callback
func newOrderCode(now time.Time) int64 {
	return now.UnixMilli()*1000 + rand.Int63n(1000)
}
