package validate

import (
	"concert_hub/constants"
	"concert_hub/helper"
	"concert_hub/model"
	"concert_hub/utils"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateEventInput
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
		if !isAdmin && !isOrganizer {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func EditEvent(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		eventId, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.EditEventInput
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
		if !isAdmin && !isOrganizer {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		c.Locals("eventId", eventId)
		c.Locals("input", input)
		return c.Next()
	}
}

func CreateTicketType(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		eventId, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.CreateTicketTypeInput
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if input.MinPerOrder > 0 && input.MaxPerOrder > 0 && input.MinPerOrder > input.MaxPerOrder {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Số vé tối thiểu không được lớn hơn số vé tối đa", nil)
		}

		_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
		if !isAdmin && !isOrganizer {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		c.Locals("eventId", eventId)
		c.Locals("input", input)
		return c.Next()
	}
}

func EditTicketType(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		ticketTypeId, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.EditTicketTypeInput
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
		if !isAdmin && !isOrganizer {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		c.Locals("ticketTypeId", ticketTypeId)
		c.Locals("input", input)
		return c.Next()
	}
}
