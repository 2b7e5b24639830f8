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

// GetActivePromotions banner khuyến mãi đang chạy cho trang chủ
func GetActivePromotions(c *fiber.Ctx) error {
	db := database.DB
	now := time.Now()

	var promotions model.Promotions
	if err := db.Preload("Event").
		Where("status = ? AND start_date <= ? AND end_date >= ?", "active", now, now).
		Order("start_date DESC").
		Find(&promotions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, promotions)
}

func GetPromotions(c *fiber.Ctx) error {
	_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOrganizer {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	type FilterPromotion struct {
		model.Pagination
		Status  string `json:"status"`
		EventId uint   `json:"eventId"`
	}

	filterInput := new(FilterPromotion)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Promotion{})
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.EventId > 0 {
		condition = condition.Where("event_id = ?", filterInput.EventId)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var promotions model.Promotions
	condition.Preload("Event").Order("id DESC").Find(&promotions)

	response := &model.ResponseCustom{
		Rows:       promotions,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func CreatePromotion(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("input").(model.CreatePromotionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	if input.EventId != nil {
		var event model.Event
		if err := db.First(&event, *input.EventId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Sự kiện không tồn tại", err, "eventId")
		}
	}

	promotion := model.Promotion{
		Title:       input.Title,
		Description: input.Description,
		BannerUrl:   input.BannerUrl,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      "active",
		EventId:     input.EventId,
	}

	if err := db.Create(&promotion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, promotion)
}

func EditPromotion(c *fiber.Ctx) error {
	db := database.DB

	promotionId, ok := c.Locals("promotionId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse promotionId fail"))
	}
	input, ok := c.Locals("input").(model.EditPromotionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var promotion model.Promotion
	if err := db.First(&promotion, promotionId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	updateMap := map[string]interface{}{}
	if input.Title != nil {
		updateMap["title"] = *input.Title
	}
	if input.Description != nil {
		updateMap["description"] = *input.Description
	}
	if input.BannerUrl != nil {
		updateMap["banner_url"] = *input.BannerUrl
	}
	if input.StartDate != nil {
		updateMap["start_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		updateMap["end_date"] = *input.EndDate
	}
	if input.Status != nil {
		updateMap["status"] = *input.Status
	}
	if input.EventId != nil {
		updateMap["event_id"] = *input.EventId
	}

	if len(updateMap) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, promotion)
	}

	if err := db.Model(&promotion).Updates(updateMap).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	db.Preload("Event").First(&promotion, promotionId)

	return utils.SuccessResponse(c, fiber.StatusOK, promotion)
}

func DeletePromotion(c *fiber.Ctx) error {
	_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOrganizer {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	promotionId, err := c.ParamsInt("id")
	if err != nil || promotionId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	db := database.DB
	var promotion model.Promotion
	if err := db.First(&promotion, promotionId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if err := db.Delete(&promotion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xóa thất bại", err)
	}

	return utils.SuccessResponseWithMessage(c, fiber.StatusOK, "Đã xóa khuyến mãi", nil)
}
