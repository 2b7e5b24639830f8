package handler

import (
	"concert_hub/constants"
	"concert_hub/database"
	"concert_hub/model"
	"concert_hub/utils"

	"github.com/gofiber/fiber/v2"
)

func GetMyNotifications(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var notifications []model.Notification
	if err := database.DB.
		Where("customer_id = ?", customer.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var unreadCount int64
	database.DB.Model(&model.Notification{}).
		Where("customer_id = ? AND is_read = ?", customer.ID, false).
		Count(&unreadCount)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"notifications": notifications,
		"unreadCount":   unreadCount,
	})
}

func MarkNotificationRead(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	notificationId, err := c.ParamsInt("id")
	if err != nil || notificationId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	result := database.DB.Model(&model.Notification{}).
		Where("id = ? AND customer_id = ?", notificationId, customer.ID).
		Update("is_read", true)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"read": true})
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	if err := database.DB.Model(&model.Notification{}).
		Where("customer_id = ? AND is_read = ?", customer.ID, false).
		Update("is_read", true).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"read": true})
}
