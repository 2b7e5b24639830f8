package helper

import (
	"concert_hub/model"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("đơn hàng không tồn tại")

// ConfirmOrderPaid chuyển đơn sang PAID đúng một lần. Cổng thanh toán được phép
// gửi lại callback nên câu UPDATE mang điều kiện payment_status <> PAID:
// lần gửi lại nhận RowsAffected == 0 và transitioned = false, caller dựa vào đó
// để chỉ gửi email vé một lần.
func ConfirmOrderPaid(db *gorm.DB, orderCode int64, now time.Time) (*model.Order, bool, error) {
	var order model.Order
	if err := db.Preload("Tickets").Preload("Event").
		Where("order_code = ?", orderCode).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrOrderNotFound
		}
		return nil, false, err
	}

	result := db.Model(&model.Order{}).
		Where("id = ? AND payment_status <> ?", order.ID, model.PaymentPaid).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentPaid,
			"status":         model.OrderConfirmed,
			"paid_at":        now,
		})
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		// callback gửi lại, đơn đã PAID từ trước
		return &order, false, nil
	}

	order.PaymentStatus = model.PaymentPaid
	order.Status = model.OrderConfirmed
	order.PaidAt = &now

	// Ghi notification cho khách đã đăng nhập, cùng nhịp với email vé
	if order.CustomerID != nil {
		notification := model.Notification{
			CustomerId: *order.CustomerID,
			Title:      "Thanh toán thành công",
			Content:    fmt.Sprintf("Đơn hàng %s đã được thanh toán. Vé đã gửi về email %s.", order.PublicCode, order.Email),
		}
		if err := db.Create(&notification).Error; err != nil {
			// không chặn luồng thanh toán vì lỗi notification
			log.Printf("Lỗi tạo notification cho đơn %s: %v", order.PublicCode, err)
		}
	}

	return &order, true, nil
}

// CancelExpiredOrders hủy các đơn PENDING chưa thanh toán quá hạn giữ chỗ.
// Tồn kho không được cộng lại: remaining chỉ đi một chiều.
func CancelExpiredOrders(db *gorm.DB, olderThan time.Duration, now time.Time) (int64, error) {
	cutoff := now.Add(-olderThan)

	var expired []model.Order
	if err := db.Where("status = ? AND payment_status <> ? AND created_at < ?",
		model.OrderPending, model.PaymentPaid, cutoff).Find(&expired).Error; err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	var cancelled int64
	for _, order := range expired {
		err := db.Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&model.Order{}).
				Where("id = ? AND status = ? AND payment_status <> ?", order.ID, model.OrderPending, model.PaymentPaid).
				Updates(map[string]interface{}{
					"status":       model.OrderCancelled,
					"cancelled_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// đơn vừa được thanh toán trong lúc quét, bỏ qua
				return nil
			}
			cancelled++
			return tx.Model(&model.Ticket{}).
				Where("order_id = ?", order.ID).
				Update("status", model.TicketCancelled).Error
		})
		if err != nil {
			return cancelled, err
		}
	}
	return cancelled, nil
}
