package handler

import (
	"concert_hub/database"
	"concert_hub/helper"
	"concert_hub/model"
	"concert_hub/utils"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

type checkInInput struct {
	TicketCode string `json:"ticketCode" validate:"required"`
}

// CheckInTicket soát vé tại cổng: mỗi mã vé chỉ dùng được đúng một lần
func CheckInTicket(c *fiber.Ctx) error {
	claim, isAdmin, _, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Bạn không có quyền soát vé", errors.New("not permission"))
	}

	input := new(checkInInput)
	if err := c.BodyParser(input); err != nil || input.TicketCode == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu mã vé", err)
	}

	ticket, err := helper.RedeemTicket(database.DB, input.TicketCode, claim.AccountId, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrTokenNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Mã vé không tồn tại", err)
		case errors.Is(err, helper.ErrAlreadyRedeemed):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Vé đã được sử dụng", err)
		case errors.Is(err, helper.ErrTicketCancelled):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Vé đã bị hủy", err)
		case errors.Is(err, helper.ErrOrderNotPaid):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Đơn hàng chưa thanh toán", err)
		case errors.Is(err, helper.ErrEventWindowClosed):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Sự kiện đã kết thúc, không thể soát vé", err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi soát vé", err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"ticketCode":     ticket.TicketCode,
		"eventName":      ticket.Event.Name,
		"ticketTypeName": ticket.TicketType.Name,
		"customerName":   ticket.Order.CustomerName,
		"usedAt":         ticket.UsedAt.Format("15:04:05 02/01/2006"),
		"message":        "Soát vé thành công",
	})
}

// GetCheckInStats thống kê soát vé theo sự kiện cho nhân viên tại cổng
func GetCheckInStats(c *fiber.Ctx) error {
	_, isAdmin, isOrganizer, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOrganizer && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Bạn không có quyền thực hiện thao tác này", errors.New("not permission"))
	}

	eventId, err := c.ParamsInt("id")
	if err != nil || eventId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mã sự kiện không hợp lệ", err)
	}

	var event model.Event
	if err := database.DB.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy sự kiện", err)
	}

	var issued, checkedIn int64
	database.DB.Model(&model.Ticket{}).
		Where("event_id = ? AND status <> ?", eventId, model.TicketCancelled).
		Count(&issued)
	database.DB.Model(&model.Ticket{}).
		Where("event_id = ? AND checked_in = ?", eventId, true).
		Count(&checkedIn)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"eventName": event.Name,
		"issued":    issued,
		"checkedIn": checkedIn,
		"remaining": issued - checkedIn,
	})
}
