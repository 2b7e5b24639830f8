package handler

import (
	"concert_hub/constants"
	"concert_hub/database"
	"concert_hub/model"
	"concert_hub/utils"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateReview chỉ cho khách đã mua vé và sự kiện đã diễn ra
func CreateReview(c *fiber.Ctx) error {
	db := database.DB

	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	input, ok := c.Locals("input").(model.CreateReviewInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var event model.Event
	if err := db.First(&event, input.EventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if event.Status != model.EventEnded && event.Status != model.EventOngoing {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Chỉ đánh giá được sự kiện đã diễn ra", nil)
	}

	var paidOrders int64
	db.Model(&model.Order{}).
		Where("customer_id = ? AND event_id = ? AND payment_status = ?", customer.ID, input.EventId, model.PaymentPaid).
		Count(&paidOrders)
	if paidOrders == 0 {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Chỉ khách đã mua vé mới được đánh giá", nil)
	}

	review := model.Review{
		EventId:    input.EventId,
		CustomerId: customer.ID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	if err := db.Create(&review).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Bạn đã đánh giá sự kiện này rồi", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, review)
}

func GetReviewsByEvent(c *fiber.Ctx) error {
	eventId, err := c.ParamsInt("id")
	if err != nil || eventId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	db := database.DB

	var reviews model.Reviews
	if err := db.Preload("Customer").
		Where("event_id = ?", eventId).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var avgRating float64
	db.Model(&model.Review{}).Where("event_id = ?", eventId).
		Select("COALESCE(AVG(rating), 0)").Scan(&avgRating)

	response := []map[string]interface{}{}
	for _, review := range reviews {
		name := review.Customer.UserName
		if name == "" {
			name = review.Customer.Email
		}
		response = append(response, map[string]interface{}{
			"id":           review.ID,
			"rating":       review.Rating,
			"comment":      review.Comment,
			"customerName": name,
			"createdAt":    review.CreatedAt,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"avgRating": avgRating,
		"total":     len(reviews),
		"reviews":   response,
	})
}

// ToggleFavorite thêm/bỏ sự kiện yêu thích
func ToggleFavorite(c *fiber.Ctx) error {
	db := database.DB

	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	eventId, err := c.ParamsInt("id")
	if err != nil || eventId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	var favorite model.Favorite
	if err := db.Where("customer_id = ? AND event_id = ?", customer.ID, eventId).First(&favorite).Error; err == nil {
		db.Unscoped().Delete(&favorite)
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"favorited": false})
	}

	favorite = model.Favorite{
		CustomerId: customer.ID,
		EventId:    uint(eventId),
	}
	if err := db.Create(&favorite).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"favorited": true})
}

func GetMyFavorites(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var favorites []model.Favorite
	if err := database.DB.Preload("Event.TicketTypes").
		Where("customer_id = ?", customer.ID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, favorites)
}
