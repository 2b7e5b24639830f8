package helper_test

import (
	"strings"
	"testing"
	"time"

	"concert_hub/helper"
	"concert_hub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderHappyPath(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 100, now)

	order, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 3), nil, now)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, float64(1500000), order.TotalAmount)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, model.PaymentUnpaid, order.PaymentStatus)
	assert.True(t, strings.HasPrefix(order.PublicCode, "ORD-"))
	assert.Len(t, order.Tickets, 3)

	codes := map[string]bool{}
	for _, ticket := range order.Tickets {
		assert.True(t, strings.HasPrefix(ticket.TicketCode, "TKT-"))
		assert.Equal(t, float64(500000), ticket.Price)
		assert.Equal(t, model.TicketIssued, ticket.Status)
		codes[ticket.TicketCode] = true
	}
	assert.Len(t, codes, 3, "mỗi vé phải có mã soát vé riêng")

	var reloaded model.TicketType
	require.NoError(t, db.First(&reloaded, ticketType.ID).Error)
	assert.Equal(t, 97, reloaded.Remaining)
}

func TestCreateOrderInsufficientInventory(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 300000, 2, now)

	_, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 3), nil, now)
	assert.ErrorIs(t, err, helper.ErrInsufficientInventory)

	var reloaded model.TicketType
	require.NoError(t, db.First(&reloaded, ticketType.ID).Error)
	assert.Equal(t, 2, reloaded.Remaining, "tồn kho không được trừ khi đơn thất bại")
}

func TestCreateOrderLastTicketsOnlyOneWinner(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 300000, 2, now)

	first, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 2), nil, now)
	require.NoError(t, err)
	assert.Len(t, first.Tickets, 2)

	_, err = helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 2), nil, now)
	assert.ErrorIs(t, err, helper.ErrInsufficientInventory)

	var reloaded model.TicketType
	require.NoError(t, db.First(&reloaded, ticketType.ID).Error)
	assert.Equal(t, 0, reloaded.Remaining)
}

func TestCreateOrderMultiLineRollback(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	plenty := seedTicketType(t, db, event.ID, 500000, 50, now)
	scarce := seedTicketType(t, db, event.ID, 1200000, 1, now)

	input := model.CreateOrderInput{
		EventId: event.ID,
		Lines: []model.OrderLineRequest{
			{TicketTypeId: plenty.ID, Quantity: 2},
			{TicketTypeId: scarce.ID, Quantity: 2},
		},
		Email: "khach@example.com",
	}
	_, err := helper.CreateOrder(db, input, nil, now)
	assert.ErrorIs(t, err, helper.ErrInsufficientInventory)

	var reloadedPlenty, reloadedScarce model.TicketType
	require.NoError(t, db.First(&reloadedPlenty, plenty.ID).Error)
	require.NoError(t, db.First(&reloadedScarce, scarce.ID).Error)
	assert.Equal(t, 50, reloadedPlenty.Remaining, "dòng đã trừ phải được rollback")
	assert.Equal(t, 1, reloadedScarce.Remaining)

	var orderCount int64
	db.Model(&model.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
}

func TestCreateOrderSaleWindowClosed(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 10, now)
	require.NoError(t, db.Model(&ticketType).Update("sale_end", now.Add(-time.Hour)).Error)

	_, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 1), nil, now)
	assert.ErrorIs(t, err, helper.ErrSaleWindowClosed)
}

func TestCreateOrderEventNotOnSale(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	for _, status := range []string{model.EventEnded, model.EventCancelled} {
		event := seedEvent(t, db, status, now.Add(-72*time.Hour))
		ticketType := seedTicketType(t, db, event.ID, 500000, 10, now)

		_, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 1), nil, now)
		assert.ErrorIs(t, err, helper.ErrEventNotOnSale, "status %s", status)
	}
}

func TestCreateOrderQuantityLimits(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 100, now)
	require.NoError(t, db.Model(&ticketType).Updates(map[string]interface{}{
		"min_per_order": 2,
		"max_per_order": 4,
	}).Error)

	_, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 1), nil, now)
	assert.ErrorIs(t, err, helper.ErrQuantityNotAllowed)

	_, err = helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 5), nil, now)
	assert.ErrorIs(t, err, helper.ErrQuantityNotAllowed)

	order, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 4), nil, now)
	require.NoError(t, err)
	assert.Len(t, order.Tickets, 4)
}

func TestCreateOrderUnknownTicketType(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	other := seedEvent(t, db, model.EventUpcoming, now.Add(96*time.Hour))
	foreign := seedTicketType(t, db, other.ID, 500000, 10, now)

	_, err := helper.CreateOrder(db, orderInput(event.ID, foreign.ID, 1), nil, now)
	assert.ErrorIs(t, err, helper.ErrTicketTypeNotFound, "hạng vé của sự kiện khác không dùng được")

	_, err = helper.CreateOrder(db, orderInput(event.ID, 9999, 1), nil, now)
	assert.ErrorIs(t, err, helper.ErrTicketTypeNotFound)
}

func TestCreateOrderWithDiscount(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 100, now)

	limit := 5
	discount := model.Discount{Code: "SUMMER10", Percentage: 10, UsageLimit: &limit, IsActive: true}
	require.NoError(t, db.Create(&discount).Error)

	input := orderInput(event.ID, ticketType.ID, 1)
	input.DiscountCode = "summer10"

	order, err := helper.CreateOrder(db, input, nil, now)
	require.NoError(t, err)
	assert.Equal(t, float64(50000), order.DiscountAmount)
	assert.Equal(t, float64(450000), order.TotalAmount)
	assert.Equal(t, "SUMMER10", order.DiscountCode, "mã được chuẩn hóa về chữ hoa")

	var reloaded model.Discount
	require.NoError(t, db.First(&reloaded, discount.ID).Error)
	assert.Equal(t, 1, reloaded.UsageCount)
}

func TestCreateOrderDiscountLastUseOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 100, now)

	limit := 1
	discount := model.Discount{Code: "LAST1", Percentage: 10, UsageLimit: &limit, IsActive: true}
	require.NoError(t, db.Create(&discount).Error)

	input := orderInput(event.ID, ticketType.ID, 1)
	input.DiscountCode = "LAST1"

	_, err := helper.CreateOrder(db, input, nil, now)
	require.NoError(t, err)

	_, err = helper.CreateOrder(db, input, nil, now)
	assert.ErrorIs(t, err, helper.ErrDiscountExhausted)
}

func TestCreateOrderPriceFrozenAfterCreation(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 100, now)

	order, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 2), nil, now)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.TicketType{}).
		Where("id = ?", ticketType.ID).Update("price", 800000).Error)

	var tickets []model.Ticket
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&tickets).Error)
	for _, ticket := range tickets {
		assert.Equal(t, float64(500000), ticket.Price, "giá vé chốt tại thời điểm mua")
	}

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, float64(1000000), reloaded.TotalAmount)
}

func TestCreateOrderWithLoggedInCustomer(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	customer := model.Customer{Email: "thanhvien@example.com", Phone: "0912345678", Password: "x"}
	require.NoError(t, db.Create(&customer).Error)

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 100, now)

	order, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 1), &customer.ID, now)
	require.NoError(t, err)
	require.NotNil(t, order.CustomerID)
	assert.Equal(t, customer.ID, *order.CustomerID)
}

func TestReserveInventoryConditionalUpdate(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(72*time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 3, now)

	require.NoError(t, helper.ReserveInventory(db, ticketType.ID, 2))
	assert.ErrorIs(t, helper.ReserveInventory(db, ticketType.ID, 2), helper.ErrInsufficientInventory)
	require.NoError(t, helper.ReserveInventory(db, ticketType.ID, 1))

	var reloaded model.TicketType
	require.NoError(t, db.First(&reloaded, ticketType.ID).Error)
	assert.Equal(t, 0, reloaded.Remaining)
}
