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

func CreateDiscount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateDiscountInput
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func EditDiscount(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		discountId, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.EditDiscountInput
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
		}

		c.Locals("discountId", discountId)
		c.Locals("input", input)
		return c.Next()
	}
}

func PreviewDiscount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.PreviewDiscountInput
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func CreatePromotion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePromotionInput
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

func EditPromotion(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		promotionId, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.EditPromotionInput
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
		if !isAdmin && !isOrganizer {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		c.Locals("promotionId", promotionId)
		c.Locals("input", input)
		return c.Next()
	}
}
