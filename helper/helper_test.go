package helper_test

import (
	"fmt"
	"testing"
	"time"

	"concert_hub/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB mở một database SQLite in-memory riêng cho từng test.
// MaxOpenConns(1) để mọi transaction dùng chung một connection.
func setupTestDB(t *testing.T) *gorm.DB {
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
		&model.Account{},
		&model.Customer{},
		&model.Event{},
		&model.TicketType{},
		&model.Order{},
		&model.Ticket{},
		&model.Discount{},
		&model.Notification{},
		&model.Review{},
	)
	if err != nil {
		t.Fatalf("Không migrate được schema test: %v", err)
	}
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, status string, startTime time.Time) model.Event {
	event := model.Event{
		Name:      "Đêm nhạc thử nghiệm",
		Slug:      "dem-nhac-" + uuid.NewString()[:8],
		Venue:     "Nhà hát Hòa Bình",
		StartTime: startTime,
		EndTime:   startTime.Add(3 * time.Hour),
		Status:    status,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("Không seed được event: %v", err)
	}
	return event
}

func seedTicketType(t *testing.T, db *gorm.DB, eventId uint, price float64, remaining int, now time.Time) model.TicketType {
	ticketType := model.TicketType{
		EventId:     eventId,
		Name:        "GA",
		Price:       price,
		Capacity:    remaining,
		Remaining:   remaining,
		SaleStart:   now.Add(-24 * time.Hour),
		SaleEnd:     now.Add(24 * time.Hour),
		MinPerOrder: 1,
		MaxPerOrder: 10,
	}
	if err := db.Create(&ticketType).Error; err != nil {
		t.Fatalf("Không seed được hạng vé: %v", err)
	}
	return ticketType
}

func orderInput(eventId, ticketTypeId uint, qty int) model.CreateOrderInput {
	return model.CreateOrderInput{
		EventId: eventId,
		Lines: []model.OrderLineRequest{
			{TicketTypeId: ticketTypeId, Quantity: qty},
		},
		CustomerName: "Nguyễn Văn A",
		Phone:        "0901234567",
		Email:        "khach@example.com",
	}
}
