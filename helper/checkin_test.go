package helper_test

import (
	"testing"
	"time"

	"concert_hub/helper"
	"concert_hub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedPaidTicket tạo một đơn đã thanh toán cho sự kiện mở màn lúc eventStart
// và trả về vé đầu tiên của đơn.
func seedPaidTicket(t *testing.T, db *gorm.DB, now, eventStart time.Time) model.Ticket {
	t.Helper()

	event := seedEvent(t, db, model.EventUpcoming, eventStart)
	ticketType := seedTicketType(t, db, event.ID, 500000, 10, now)

	order, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 1), nil, now)
	require.NoError(t, err)

	_, _, err = helper.ConfirmOrderPaid(db, order.OrderCode, now)
	require.NoError(t, err)

	return order.Tickets[0]
}

func TestRedeemTicket(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()
	staffId := uint(7)

	ticket := seedPaidTicket(t, db, now, now.Add(time.Hour))

	redeemed, err := helper.RedeemTicket(db, ticket.TicketCode, staffId, now)
	require.NoError(t, err)
	assert.True(t, redeemed.Used)
	assert.True(t, redeemed.CheckedIn)
	assert.Equal(t, model.TicketUsed, redeemed.Status)
	require.NotNil(t, redeemed.UsedAt)
	require.NotNil(t, redeemed.CheckedInBy)
	assert.Equal(t, staffId, *redeemed.CheckedInBy)

	var reloaded model.Ticket
	require.NoError(t, db.First(&reloaded, ticket.ID).Error)
	assert.True(t, reloaded.Used)
	assert.Equal(t, model.TicketUsed, reloaded.Status)
}

func TestRedeemTicketOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	ticket := seedPaidTicket(t, db, now, now.Add(time.Hour))

	_, err := helper.RedeemTicket(db, ticket.TicketCode, 7, now)
	require.NoError(t, err)

	_, err = helper.RedeemTicket(db, ticket.TicketCode, 8, now.Add(time.Minute))
	assert.ErrorIs(t, err, helper.ErrAlreadyRedeemed, "cùng một QR quét lần hai phải bị từ chối")
}

func TestRedeemTicketUnknownCode(t *testing.T) {
	db := setupTestDB(t)

	_, err := helper.RedeemTicket(db, "TKT-khong-ton-tai", 7, time.Now())
	assert.ErrorIs(t, err, helper.ErrTokenNotFound)
}

func TestRedeemTicketUnpaidOrder(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	event := seedEvent(t, db, model.EventUpcoming, now.Add(time.Hour))
	ticketType := seedTicketType(t, db, event.ID, 500000, 10, now)

	order, err := helper.CreateOrder(db, orderInput(event.ID, ticketType.ID, 1), nil, now)
	require.NoError(t, err)

	_, err = helper.RedeemTicket(db, order.Tickets[0].TicketCode, 7, now)
	assert.ErrorIs(t, err, helper.ErrOrderNotPaid)
}

func TestRedeemTicketCancelled(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	ticket := seedPaidTicket(t, db, now, now.Add(time.Hour))
	require.NoError(t, db.Model(&model.Ticket{}).Where("id = ?", ticket.ID).
		Update("status", model.TicketCancelled).Error)

	_, err := helper.RedeemTicket(db, ticket.TicketCode, 7, now)
	assert.ErrorIs(t, err, helper.ErrTicketCancelled)
}

func TestRedeemTicketEventWindow(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	// trong khung gia hạn sau giờ mở màn vẫn soát được
	inside := seedPaidTicket(t, db, now, now.Add(-90*time.Minute))
	_, err := helper.RedeemTicket(db, inside.TicketCode, 7, now)
	assert.NoError(t, err)

	// quá khung gia hạn thì từ chối
	outside := seedPaidTicket(t, db, now, now.Add(-3*time.Hour))
	_, err = helper.RedeemTicket(db, outside.TicketCode, 7, now)
	assert.ErrorIs(t, err, helper.ErrEventWindowClosed)
}
