package helper

import (
	"concert_hub/model"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTokenNotFound     = errors.New("vé không tồn tại")
	ErrAlreadyRedeemed   = errors.New("vé đã được sử dụng")
	ErrOrderNotPaid      = errors.New("đơn hàng của vé chưa được thanh toán")
	ErrEventWindowClosed = errors.New("sự kiện đã diễn ra quá lâu, không thể soát vé")
	ErrTicketCancelled   = errors.New("vé đã bị hủy")
)

// CheckInGraceWindow: vẫn cho soát vé trong 2 giờ sau giờ mở màn
const CheckInGraceWindow = 2 * time.Hour

// RedeemTicket soát một mã vé: kiểm tra trạng thái rồi đánh dấu đã dùng bằng
// một câu UPDATE điều kiện used = false. Hai máy quét cùng một QR chỉ có một
// máy nhận RowsAffected == 1, máy còn lại nhận ErrAlreadyRedeemed.
// staffId truyền tường minh từ handler, không đọc từ context.
func RedeemTicket(db *gorm.DB, ticketCode string, staffId uint, now time.Time) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := db.Preload("Order").Preload("TicketType").Preload("Event").
		Where("ticket_code = ?", ticketCode).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	if ticket.Used {
		return nil, ErrAlreadyRedeemed
	}
	if ticket.Status == model.TicketCancelled {
		return nil, ErrTicketCancelled
	}
	if ticket.Order.PaymentStatus != model.PaymentPaid {
		return nil, ErrOrderNotPaid
	}
	if now.After(ticket.Event.StartTime.Add(CheckInGraceWindow)) {
		return nil, ErrEventWindowClosed
	}

	result := db.Model(&model.Ticket{}).
		Where("id = ? AND used = ?", ticket.ID, false).
		Updates(map[string]interface{}{
			"used":          true,
			"checked_in":    true,
			"used_at":       now,
			"checked_in_by": staffId,
			"status":        model.TicketUsed,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// thua cuộc đua với một máy quét khác
		return nil, ErrAlreadyRedeemed
	}

	ticket.Used = true
	ticket.CheckedIn = true
	ticket.UsedAt = &now
	ticket.CheckedInBy = &staffId
	ticket.Status = model.TicketUsed
	return &ticket, nil
}
