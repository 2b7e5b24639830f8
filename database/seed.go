package database

import (
	"concert_hub/constants"
	"concert_hub/model"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04", dateStr)
	return t
}

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456ch"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456ch"
	}
	accounts := []model.Account{
		{Username: "Administration", Password: HashPassword, Active: true, Role: constants.ROLE_ADMIN},
		{Username: "GateStaff01", Password: HashPassword, Active: true, Role: constants.ROLE_STAFF},
	}

	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}

	events := []model.Event{
		{
			Name:      "Đêm nhạc Mùa Thu Hà Nội",
			Slug:      "dem-nhac-mua-thu-ha-noi",
			Venue:     "Cung Văn hóa Hữu nghị Việt Xô",
			Province:  "Hà Nội",
			Artist:    "Nhiều nghệ sĩ",
			StartTime: parseDate("2026-10-24 20:00"),
			EndTime:   parseDate("2026-10-24 23:00"),
			Status:    model.EventUpcoming,
		},
	}
	for _, event := range events {
		if err := db.Where(model.Event{Slug: event.Slug}).FirstOrCreate(&event).Error; err != nil {
			log.Println("failed to seed data for event:", event.Name, "error:", err)
			continue
		}
		ticketTypes := []model.TicketType{
			{EventId: event.ID, Name: "GA", Price: 500000, Capacity: 800, Remaining: 800,
				SaleStart: parseDate("2026-08-01 09:00"), SaleEnd: parseDate("2026-10-24 18:00"), MinPerOrder: 1, MaxPerOrder: 10},
			{EventId: event.ID, Name: "VIP", Price: 1200000, Capacity: 200, Remaining: 200,
				SaleStart: parseDate("2026-08-01 09:00"), SaleEnd: parseDate("2026-10-24 18:00"), MinPerOrder: 1, MaxPerOrder: 4},
		}
		for _, tt := range ticketTypes {
			if err := db.Where(model.TicketType{EventId: tt.EventId, Name: tt.Name}).FirstOrCreate(&tt).Error; err != nil {
				log.Println("failed to seed ticket type:", tt.Name, "error:", err)
			}
		}
	}

	expires := parseDate("2026-12-31 23:59")
	discounts := []model.Discount{
		{Code: "SAVE10", Percentage: 10, MaxDiscountAmount: ptrFloat(100000), MinOrderAmount: ptrFloat(100000),
			ExpiresAt: &expires, UsageLimit: ptrInt(1000), IsActive: true},
	}
	for _, discount := range discounts {
		if err := db.Where(model.Discount{Code: discount.Code}).FirstOrCreate(&discount).Error; err != nil {
			log.Println("failed to seed discount:", discount.Code, "error:", err)
		}
	}
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }
