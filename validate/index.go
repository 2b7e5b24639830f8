package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseAndValidate dùng chung cho các middleware validate tạo/sửa,
// caller tự trả response 400 khi có lỗi
func parseAndValidate(c *fiber.Ctx, input any) error {
	if err := c.BodyParser(input); err != nil {
		return fmt.Errorf("không thể phân tích yêu cầu: %s", err.Error())
	}
	return validate.Struct(input)
}
