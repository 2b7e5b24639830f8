package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"concert_hub/database"
	"concert_hub/helper"
	"concert_hub/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupHandlerDB trỏ database.DB vào một SQLite in-memory riêng cho test
func setupHandlerDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Không mở được database test: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Không lấy được sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Customer{},
		&model.Event{},
		&model.TicketType{},
		&model.Order{},
		&model.Ticket{},
		&model.Discount{},
		&model.Notification{},
	)
	if err != nil {
		t.Fatalf("Không migrate được schema test: %v", err)
	}

	database.DB = db
	return db
}

func seedPendingOrder(t *testing.T, db *gorm.DB, now time.Time) *model.Order {
	t.Helper()

	event := model.Event{
		Name:      "Đêm nhạc thử nghiệm",
		Slug:      "dem-nhac-" + uuid.NewString()[:8],
		Venue:     "Nhà hát Hòa Bình",
		StartTime: now.Add(72 * time.Hour),
		EndTime:   now.Add(75 * time.Hour),
		Status:    model.EventUpcoming,
	}
	require.NoError(t, db.Create(&event).Error)

	ticketType := model.TicketType{
		EventId:     event.ID,
		Name:        "GA",
		Price:       500000,
		Capacity:    10,
		Remaining:   10,
		SaleStart:   now.Add(-24 * time.Hour),
		SaleEnd:     now.Add(24 * time.Hour),
		MinPerOrder: 1,
		MaxPerOrder: 10,
	}
	require.NoError(t, db.Create(&ticketType).Error)

	input := model.CreateOrderInput{
		EventId: event.ID,
		Lines:   []model.OrderLineRequest{{TicketTypeId: ticketType.ID, Quantity: 1}},
		Email:   "khach@example.com",
	}
	order, err := helper.CreateOrder(db, input, nil, now)
	require.NoError(t, err)
	return order
}

func TestPayOSReturnDoesNotConfirmOrder(t *testing.T) {
	db := setupHandlerDB(t)
	now := time.Now()
	order := seedPendingOrder(t, db, now)

	app := fiber.New()
	app.Get("/payments/payos-return", PayOSReturn)

	// query giả mạo: status và code tự điền được, không có chữ ký nào đi kèm
	target := fmt.Sprintf("/payments/payos-return?orderCode=%d&status=PAID&code=00", order.OrderCode)
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "thanh-toan-dang-xu-ly",
		"đơn chưa có webhook xác nhận thì chỉ được báo đang xử lý")

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.PaymentUnpaid, reloaded.PaymentStatus, "return URL không được chuyển đơn sang PAID")
	assert.Equal(t, model.OrderPending, reloaded.Status)
	assert.Nil(t, reloaded.PaidAt)

	var notifications int64
	db.Model(&model.Notification{}).Count(&notifications)
	assert.Equal(t, int64(0), notifications)
}

func TestPayOSReturnReflectsPaidOrder(t *testing.T) {
	db := setupHandlerDB(t)
	now := time.Now()
	order := seedPendingOrder(t, db, now)

	_, _, err := helper.ConfirmOrderPaid(db, order.OrderCode, now)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/payments/payos-return", PayOSReturn)

	target := fmt.Sprintf("/payments/payos-return?orderCode=%d&status=PAID&code=00", order.OrderCode)
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "thanh-toan-thanh-cong")
}

func TestPayOSReturnUnknownOrder(t *testing.T) {
	setupHandlerDB(t)

	app := fiber.New()
	app.Get("/payments/payos-return", PayOSReturn)

	resp, err := app.Test(httptest.NewRequest("GET", "/payments/payos-return?orderCode=999999999&status=PAID&code=00", nil))
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get("Location"), "thanh-toan-that-bai")
}

func TestPayOSWebhookRejectsBadSignature(t *testing.T) {
	db := setupHandlerDB(t)
	now := time.Now()
	order := seedPendingOrder(t, db, now)

	app := fiber.New()
	app.Post("/payments/payos-webhook", PayOSWebhook)

	payload := model.WebhookPayload{
		Code:      "00",
		Success:   true,
		Data:      model.WebhookData{OrderCode: order.OrderCode, Amount: 500000, Code: "00"},
		Signature: "chu-ky-gia-mao",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/payments/payos-webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.PaymentUnpaid, reloaded.PaymentStatus, "webhook sai chữ ký không được chuyển đơn sang PAID")
	assert.Nil(t, reloaded.PaidAt)
}
