package helper

import (
	"concert_hub/model"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrDiscountInvalid      = errors.New("mã giảm giá không hợp lệ")
	ErrDiscountExpired      = errors.New("mã giảm giá đã hết hạn")
	ErrDiscountExhausted    = errors.New("mã giảm giá đã hết lượt sử dụng")
	ErrDiscountBelowMinimum = errors.New("đơn hàng chưa đạt giá trị tối thiểu để dùng mã")
)

// CalculateDiscount tính số tiền giảm cho một mã đã load sẵn. Hàm thuần,
// không chạm DB: phần trăm trên tổng đơn, chặn trần MaxDiscountAmount nếu có.
func CalculateDiscount(discount *model.Discount, orderAmount float64, now time.Time) (float64, error) {
	if discount == nil || !discount.IsActive {
		return 0, ErrDiscountInvalid
	}
	if discount.ExpiresAt != nil && now.After(*discount.ExpiresAt) {
		return 0, ErrDiscountExpired
	}
	if discount.UsageLimit != nil && discount.UsageCount >= *discount.UsageLimit {
		return 0, ErrDiscountExhausted
	}
	if discount.MinOrderAmount != nil && orderAmount < *discount.MinOrderAmount {
		return 0, ErrDiscountBelowMinimum
	}

	amount := orderAmount * discount.Percentage / 100
	if discount.MaxDiscountAmount != nil && amount > *discount.MaxDiscountAmount {
		amount = *discount.MaxDiscountAmount
	}
	return amount, nil
}

// applyDiscount tính tiền giảm rồi tăng usage_count ngay trong transaction tạo đơn.
// Câu UPDATE mang điều kiện usage_count < usage_limit nên hai đơn cùng tranh
// lượt cuối chỉ có một đơn áp được mã.
func applyDiscount(tx *gorm.DB, code string, orderAmount float64, now time.Time) (float64, error) {
	var discount model.Discount
	if err := tx.Where("code = ?", code).First(&discount).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrDiscountInvalid
		}
		return 0, err
	}

	amount, err := CalculateDiscount(&discount, orderAmount, now)
	if err != nil {
		return 0, err
	}

	result := tx.Model(&model.Discount{}).
		Where("id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", discount.ID).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrDiscountExhausted
	}

	return amount, nil
}
