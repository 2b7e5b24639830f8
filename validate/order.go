package validate

import (
	"concert_hub/model"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateOrderInput
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		// Không cho một hạng vé xuất hiện hai lần trong cùng đơn
		seen := make(map[uint]bool)
		for _, line := range input.Lines {
			if seen[line.TicketTypeId] {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Mỗi hạng vé chỉ được xuất hiện một lần trong đơn",
				})
			}
			seen[line.TicketTypeId] = true
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func CreatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePaymentInput
		if err := parseAndValidate(c, &input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		c.Locals("input", input)
		return c.Next()
	}
}
