package validate

import (
	"concert_hub/constants"
	"concert_hub/helper"
	"concert_hub/model"
	"concert_hub/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterCustomerInput
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if !helper.Valid(input.Email) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_EMAIL, errors.New("invalid email"))
		}

		exists, err := helper.CheckByEmailCustomer(input.Email, nil)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if exists {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.EMAIL_CUSTOMER_EXISTS, errors.New("email exists"))
		}

		exists, err = helper.CheckByPhoneNumberCustomer(input.Phone, nil)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if exists {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PHONE_NUMBER_CUSTOMER_EXISTS, errors.New("phone exists"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func ChangePasswordCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CustomerChangePassword
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if input.NewPassword != input.RepeatPassword {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.NEW_PASSWORD_NOT_SAME_REPEAT_PASSWORD, errors.New("repeat password mismatch"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func CreateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateReviewInput
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		c.Locals("input", input)
		return c.Next()
	}
}
