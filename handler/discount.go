package handler

import (
	"concert_hub/constants"
	"concert_hub/database"
	"concert_hub/helper"
	"concert_hub/model"
	"concert_hub/utils"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

func GetDiscounts(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	type FilterDiscount struct {
		model.Pagination
		SearchKey string `json:"searchKey"`
		IsActive  *bool  `json:"isActive"`
	}

	filterInput := new(FilterDiscount)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Discount{})
	if filterInput.SearchKey != "" {
		condition = condition.Where("code LIKE ?", "%"+strings.ToUpper(filterInput.SearchKey)+"%")
	}
	if filterInput.IsActive != nil {
		condition = condition.Where("is_active = ?", filterInput.IsActive)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var discounts model.Discounts
	condition.Order("id DESC").Find(&discounts)

	response := &model.ResponseCustom{
		Rows:       discounts,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func CreateDiscount(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("input").(model.CreateDiscountInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	discount := model.Discount{
		Code:              strings.ToUpper(strings.TrimSpace(input.Code)),
		Percentage:        input.Percentage,
		MaxDiscountAmount: input.MaxDiscountAmount,
		MinOrderAmount:    input.MinOrderAmount,
		ExpiresAt:         input.ExpiresAt,
		UsageLimit:        input.UsageLimit,
		IsActive:          true,
	}

	if err := db.Create(&discount).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Mã giảm giá đã tồn tại", nil, "code")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, discount)
}

func EditDiscount(c *fiber.Ctx) error {
	db := database.DB

	discountId, ok := c.Locals("discountId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse discountId fail"))
	}
	input, ok := c.Locals("input").(model.EditDiscountInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var discount model.Discount
	if err := db.First(&discount, discountId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	updateMap := map[string]interface{}{}
	if input.Percentage != nil {
		updateMap["percentage"] = *input.Percentage
	}
	if input.MaxDiscountAmount != nil {
		updateMap["max_discount_amount"] = *input.MaxDiscountAmount
	}
	if input.MinOrderAmount != nil {
		updateMap["min_order_amount"] = *input.MinOrderAmount
	}
	if input.ExpiresAt != nil {
		updateMap["expires_at"] = *input.ExpiresAt
	}
	if input.UsageLimit != nil {
		updateMap["usage_limit"] = *input.UsageLimit
	}
	if input.IsActive != nil {
		updateMap["is_active"] = *input.IsActive
	}

	if len(updateMap) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, discount)
	}

	if err := db.Model(&discount).Updates(updateMap).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	db.First(&discount, discountId)

	return utils.SuccessResponse(c, fiber.StatusOK, discount)
}

// PreviewDiscount tính thử số tiền giảm trước khi đặt vé, KHÔNG tăng usage_count
func PreviewDiscount(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.PreviewDiscountInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))

	var discount model.Discount
	if err := database.DB.Where("code = ?", code).First(&discount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Mã giảm giá không tồn tại", err)
	}

	amount, err := helper.CalculateDiscount(&discount, input.OrderAmount, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrDiscountExpired):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mã giảm giá đã hết hạn", err)
		case errors.Is(err, helper.ErrDiscountExhausted):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mã giảm giá đã hết lượt sử dụng", err)
		case errors.Is(err, helper.ErrDiscountBelowMinimum):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn hàng chưa đạt giá trị tối thiểu", err)
		default:
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mã giảm giá không hợp lệ", err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"code":           discount.Code,
		"percentage":     discount.Percentage,
		"discountAmount": amount,
		"finalAmount":    input.OrderAmount - amount,
	})
}
