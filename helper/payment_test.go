package helper_test

import (
	"testing"
	"time"

	"concert_hub/helper"
	"concert_hub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmOrderPaid(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 10, now)

	order, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 2), nil, now)
	require.NoError(t, err)

	paidAt := now.Add(5 * time.Minute)
	confirmed, transitioned, err := helper.ConfirmOrderPaid(db, order.OrderCode, paidAt)
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.Equal(t, model.PaymentPaid, confirmed.PaymentStatus)
	assert.Equal(t, model.OrderConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.PaidAt)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.PaymentPaid, reloaded.PaymentStatus)
	assert.Equal(t, model.OrderConfirmed, reloaded.Status)
	require.NotNil(t, reloaded.PaidAt)
}

func TestConfirmOrderPaidIdempotent(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 10, now)

	order, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 1), nil, now)
	require.NoError(t, err)

	_, transitioned, err := helper.ConfirmOrderPaid(db, order.OrderCode, now)
	require.NoError(t, err)
	assert.True(t, transitioned)

	// cổng thanh toán gửi lại webhook
	_, transitioned, err = helper.ConfirmOrderPaid(db, order.OrderCode, now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, transitioned, "callback lặp lại không được chuyển trạng thái lần hai")
}

func TestConfirmOrderPaidUnknownCode(t *testing.T) {
	db := setupTestDB(t)

	_, _, err := helper.ConfirmOrderPaid(db, 123456789, time.Now())
	assert.ErrorIs(t, err, helper.ErrOrderNotFound)
}

func TestConfirmOrderPaidCreatesNotification(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	customer := model.Customer{Email: "thanhvien@example.com", Phone: "0912345678", Password: "x"}
	require.NoError(t, db.Create(&customer).Error)

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 10, now)

	order, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 1), &customer.ID, now)
	require.NoError(t, err)

	_, _, err = helper.ConfirmOrderPaid(db, order.OrderCode, now)
	require.NoError(t, err)

	var notifications []model.Notification
	require.NoError(t, db.Where("customer_id = ?", customer.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Content, order.PublicCode)
	assert.False(t, notifications[0].IsRead)

	// khách vãng lai không có notification
	guestOrder, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 1), nil, now)
	require.NoError(t, err)
	_, _, err = helper.ConfirmOrderPaid(db, guestOrder.OrderCode, now)
	require.NoError(t, err)

	var total int64
	db.Model(&model.Notification{}).Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestCancelExpiredOrders(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 10, now)

	stale, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 2), nil, now)
	require.NoError(t, err)
	fresh, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 1), nil, now)
	require.NoError(t, err)

	// đẩy created_at của đơn stale ra ngoài hạn giữ chỗ
	require.NoError(t, db.Model(&model.Order{}).Where("id = ?", stale.ID).
		Update("created_at", now.Add(-time.Hour)).Error)

	cancelled, err := helper.CancelExpiredOrders(db, 15*time.Minute, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelled)

	var reloadedStale, reloadedFresh model.Order
	require.NoError(t, db.First(&reloadedStale, stale.ID).Error)
	require.NoError(t, db.First(&reloadedFresh, fresh.ID).Error)
	assert.Equal(t, model.OrderCancelled, reloadedStale.Status)
	require.NotNil(t, reloadedStale.CancelledAt)
	assert.Equal(t, model.OrderPending, reloadedFresh.Status)

	var staleTickets []model.Ticket
	require.NoError(t, db.Where("order_id = ?", stale.ID).Find(&staleTickets).Error)
	for _, ticket := range staleTickets {
		assert.Equal(t, model.TicketCancelled, ticket.Status)
	}

	// tồn kho chỉ đi một chiều, hủy đơn không cộng lại
	var reloadedType model.TicketType
	require.NoError(t, db.First(&reloadedType, ticketType.ID).Error)
	assert.Equal(t, 7, reloadedType.Remaining)
}

func TestCancelExpiredOrdersSkipsPaid(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 10, now)

	order, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 1), nil, now)
	require.NoError(t, err)

	_, _, err = helper.ConfirmOrderPaid(db, order.OrderCode, now)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.Order{}).Where("id = ?", order.ID).
		Update("created_at", now.Add(-time.Hour)).Error)

	cancelled, err := helper.CancelExpiredOrders(db, 15*time.Minute, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cancelled)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderConfirmed, reloaded.Status)
}
