package helper_test

import (
	"testing"
	"time"

	"concert_hub/helper"
	"concert_hub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDiscountPercentage(t *testing.T) {
	now := time.Now()
	discount := &model.Discount{Code: "SUMMER10", Percentage: 10, IsActive: true}

	amount, err := helper.CalculateDiscount(discount, 500000, now)
	require.NoError(t, err)
	assert.Equal(t, float64(50000), amount)
}

func TestCalculateDiscountCappedAtMax(t *testing.T) {
	now := time.Now()
	maxAmount := float64(100000)
	discount := &model.Discount{Code: "SUMMER10", Percentage: 10, MaxDiscountAmount: &maxAmount, IsActive: true}

	amount, err := helper.CalculateDiscount(discount, 2000000, now)
	require.NoError(t, err)
	assert.Equal(t, float64(100000), amount, "10%% của 2 triệu là 200 nghìn nhưng bị chặn trần")

	amount, err = helper.CalculateDiscount(discount, 500000, now)
	require.NoError(t, err)
	assert.Equal(t, float64(50000), amount, "dưới trần thì giữ nguyên phần trăm")
}

func TestCalculateDiscountExpired(t *testing.T) {
	now := time.Now()
	expired := now.Add(-time.Hour)
	discount := &model.Discount{Code: "OLD", Percentage: 10, ExpiresAt: &expired, IsActive: true}

	_, err := helper.CalculateDiscount(discount, 500000, now)
	assert.ErrorIs(t, err, helper.ErrDiscountExpired)
}

func TestCalculateDiscountExhausted(t *testing.T) {
	now := time.Now()
	limit := 3
	discount := &model.Discount{Code: "FULL", Percentage: 10, UsageLimit: &limit, UsageCount: 3, IsActive: true}

	_, err := helper.CalculateDiscount(discount, 500000, now)
	assert.ErrorIs(t, err, helper.ErrDiscountExhausted)
}

func TestCalculateDiscountBelowMinimum(t *testing.T) {
	now := time.Now()
	minAmount := float64(1000000)
	discount := &model.Discount{Code: "BIG", Percentage: 15, MinOrderAmount: &minAmount, IsActive: true}

	_, err := helper.CalculateDiscount(discount, 500000, now)
	assert.ErrorIs(t, err, helper.ErrDiscountBelowMinimum)

	amount, err := helper.CalculateDiscount(discount, 1000000, now)
	require.NoError(t, err)
	assert.Equal(t, float64(150000), amount, "đúng ngưỡng tối thiểu thì áp được")
}

func TestCalculateDiscountInactive(t *testing.T) {
	now := time.Now()
	discount := &model.Discount{Code: "OFF", Percentage: 10, IsActive: false}

	_, err := helper.CalculateDiscount(discount, 500000, now)
	assert.ErrorIs(t, err, helper.ErrDiscountInvalid)

	_, err = helper.CalculateDiscount(nil, 500000, now)
	assert.ErrorIs(t, err, helper.ErrDiscountInvalid)
}

func TestCreateOrderUnknownDiscountCode(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 10, now)

	input := orderInput(event.ID, ticketType.ID, 1)
	input.DiscountCode = "KHONGTONTAI"

	_, err := helper.CreateOrder(db, input, nil, now)
	assert.ErrorIs(t, err, helper.ErrDiscountInvalid)

	var reloaded model.TicketType
	require.NoError(t, db.First(&reloaded, ticketType.ID).Error)
	assert.Equal(t, 10, reloaded.Remaining, "đơn fail vì mã sai thì tồn kho phải được trả lại")
}
