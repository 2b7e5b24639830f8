package handler

import (
	"concert_hub/constants"
	"concert_hub/database"
	"concert_hub/helper"
	"concert_hub/model"
	"concert_hub/utils"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetAdminStats tổng quan dashboard: doanh thu, vé bán, tăng trưởng so với hôm qua
func GetAdminStats(c *fiber.Ctx) error {
	_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOrganizer {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	db := database.DB

	type Stats struct {
		Events    int64 `json:"events"`
		Customers int64 `json:"customers"`
		Orders    int64 `json:"orders"`

		TodayRevenue   float64 `json:"todayRevenue"`
		TodayTickets   int64   `json:"todayTickets"`
		UpcomingEvents int64   `json:"upcomingEvents"`
		RevenueGrowth  float64 `json:"revenueGrowth"` // %
		TicketsGrowth  float64 `json:"ticketsGrowth"` // %
	}

	var stats Stats
	today := time.Now().In(time.Local)
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	todayEnd := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, today.Location())

	db.Model(&model.Event{}).Where("status <> ?", model.EventCancelled).Count(&stats.Events)
	db.Model(&model.Customer{}).Count(&stats.Customers)
	db.Model(&model.Order{}).Where("payment_status = ?", model.PaymentPaid).Count(&stats.Orders)

	db.Raw(`
        SELECT COALESCE(SUM(total_amount), 0)
        FROM orders
        WHERE payment_status = 'PAID'
          AND paid_at BETWEEN ? AND ?
    `, todayStart, todayEnd).Scan(&stats.TodayRevenue)

	db.Raw(`
        SELECT COUNT(*)
        FROM tickets t
        JOIN orders o ON o.id = t.order_id
        WHERE o.payment_status = 'PAID'
          AND o.paid_at BETWEEN ? AND ?
    `, todayStart, todayEnd).Scan(&stats.TodayTickets)

	db.Model(&model.Event{}).
		Where("status = ? AND start_time > ?", model.EventUpcoming, time.Now()).
		Count(&stats.UpcomingEvents)

	yesterdayStart := todayStart.AddDate(0, 0, -1)
	yesterdayEnd := todayEnd.AddDate(0, 0, -1)

	var yesterdayRevenue float64
	var yesterdayTickets int64

	db.Raw(`
        SELECT COALESCE(SUM(total_amount), 0)
        FROM orders
        WHERE payment_status = 'PAID'
          AND paid_at BETWEEN ? AND ?
    `, yesterdayStart, yesterdayEnd).Scan(&yesterdayRevenue)

	db.Raw(`
        SELECT COUNT(*)
        FROM tickets t
        JOIN orders o ON o.id = t.order_id
        WHERE o.payment_status = 'PAID'
          AND o.paid_at BETWEEN ? AND ?
    `, yesterdayStart, yesterdayEnd).Scan(&yesterdayTickets)

	stats.RevenueGrowth = utils.CalculateGrowth(stats.TodayRevenue, yesterdayRevenue)
	stats.TicketsGrowth = utils.CalculateGrowth(float64(stats.TodayTickets), float64(yesterdayTickets))

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

// GetEventStats doanh thu và tồn vé theo từng hạng của một sự kiện
func GetEventStats(c *fiber.Ctx) error {
	_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOrganizer {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	eventId, err := c.ParamsInt("id")
	if err != nil || eventId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	db := database.DB

	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	type TypeStats struct {
		Name      string  `json:"name"`
		Capacity  int     `json:"capacity"`
		Remaining int     `json:"remaining"`
		Sold      int64   `json:"sold"`
		Revenue   float64 `json:"revenue"`
	}

	var ticketTypes []model.TicketType
	db.Where("event_id = ?", eventId).Find(&ticketTypes)

	byType := []TypeStats{}
	var totalRevenue float64
	var totalSold int64

	for _, tt := range ticketTypes {
		var sold int64
		var revenue float64
		db.Raw(`
            SELECT COUNT(*), COALESCE(SUM(t.price), 0)
            FROM tickets t
            JOIN orders o ON o.id = t.order_id
            WHERE t.ticket_type_id = ?
              AND o.payment_status = 'PAID'
              AND t.status <> 'CANCELLED'
        `, tt.ID).Row().Scan(&sold, &revenue)

		byType = append(byType, TypeStats{
			Name:      tt.Name,
			Capacity:  tt.Capacity,
			Remaining: tt.Remaining,
			Sold:      sold,
			Revenue:   revenue,
		})
		totalRevenue += revenue
		totalSold += sold
	}

	var checkedIn int64
	db.Model(&model.Ticket{}).
		Where("event_id = ? AND checked_in = ?", eventId, true).
		Count(&checkedIn)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"eventName":    event.Name,
		"status":       event.Status,
		"totalRevenue": totalRevenue,
		"totalSold":    totalSold,
		"checkedIn":    checkedIn,
		"byTicketType": byType,
	})
}
