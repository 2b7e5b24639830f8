package handler

import (
	"concert_hub/constants"
	"concert_hub/database"
	"concert_hub/model"
	"concert_hub/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

func GetTicketTypesByEvent(c *fiber.Ctx) error {
	eventId, err := c.ParamsInt("id")
	if err != nil || eventId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var ticketTypes model.TicketTypes
	if err := database.DB.Where("event_id = ?", eventId).Order("price ASC").Find(&ticketTypes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ticketTypes)
}

func CreateTicketType(c *fiber.Ctx) error {
	db := database.DB

	eventId, ok := c.Locals("eventId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse eventId fail"))
	}
	input, ok := c.Locals("input").(model.CreateTicketTypeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if event.Status == model.EventEnded || event.Status == model.EventCancelled {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Sự kiện đã kết thúc hoặc đã hủy", nil)
	}

	minPerOrder := input.MinPerOrder
	if minPerOrder == 0 {
		minPerOrder = 1
	}
	maxPerOrder := input.MaxPerOrder
	if maxPerOrder == 0 {
		maxPerOrder = 10
	}

	ticketType := model.TicketType{
		EventId:     event.ID,
		Name:        input.Name,
		Price:       input.Price,
		Capacity:    input.Capacity,
		Remaining:   input.Capacity,
		SaleStart:   input.SaleStart,
		SaleEnd:     input.SaleEnd,
		MinPerOrder: minPerOrder,
		MaxPerOrder: maxPerOrder,
	}

	if err := db.Create(&ticketType).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, ticketType)
}

// EditTicketType không cho sửa capacity/remaining, tồn kho chỉ thay đổi qua luồng đặt vé
func EditTicketType(c *fiber.Ctx) error {
	db := database.DB

	ticketTypeId, ok := c.Locals("ticketTypeId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse ticketTypeId fail"))
	}
	input, ok := c.Locals("input").(model.EditTicketTypeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var ticketType model.TicketType
	if err := db.First(&ticketType, ticketTypeId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	updateMap := map[string]interface{}{}
	if input.Name != nil {
		updateMap["name"] = *input.Name
	}
	if input.Price != nil {
		updateMap["price"] = *input.Price
	}
	if input.SaleStart != nil {
		updateMap["sale_start"] = *input.SaleStart
	}
	if input.SaleEnd != nil {
		updateMap["sale_end"] = *input.SaleEnd
	}
	if input.MinPerOrder != nil {
		updateMap["min_per_order"] = *input.MinPerOrder
	}
	if input.MaxPerOrder != nil {
		updateMap["max_per_order"] = *input.MaxPerOrder
	}

	if len(updateMap) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, ticketType)
	}

	if err := db.Model(&ticketType).Updates(updateMap).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	db.First(&ticketType, ticketTypeId)

	return utils.SuccessResponse(c, fiber.StatusOK, ticketType)
}
