package handler

import (
	"concert_hub/database"
	"concert_hub/helper"
	"concert_hub/model"
	"concert_hub/utils"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePayment tạo phiên thanh toán PayOS cho một đơn PENDING
func CreatePayment(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreatePaymentInput)

	db := database.DB

	var order model.Order
	if err := db.Preload("Event").Where("public_code = ?", input.OrderCode).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Đơn hàng không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi truy vấn đơn hàng", err)
	}

	if order.Status != model.OrderPending || order.PaymentStatus == model.PaymentPaid {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn hàng không hợp lệ hoặc đã thanh toán", nil)
	}

	payos := NewPayOS()
	req := model.CheckoutRequest{
		OrderCode:   order.OrderCode,
		Amount:      int64(order.TotalAmount),
		Description: fmt.Sprintf("Don hang %s - Ve %s", order.PublicCode, order.Event.Name),
		BuyerEmail:  order.Email,
		BuyerName:   order.CustomerName,
	}

	checkout, err := payos.CreatePaymentLink(req)
	if err != nil {
		// Lỗi gọi cổng không được đổi trạng thái đơn
		log.Printf("Lỗi tạo payment link cho đơn %s: %v", order.PublicCode, err)
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Không tạo được phiên thanh toán", err)
	}

	if err := db.Model(&order).Updates(map[string]interface{}{
		"payment_method": input.Method,
		"payment_code":   checkout.PaymentLinkId,
		"payment_status": model.PaymentPending,
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi cập nhật đơn hàng", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":    "Tạo thanh toán thành công",
		"paymentUrl": checkout.CheckoutUrl,
		"orderCode":  order.PublicCode,
		"nextStep":   "Hoàn tất thanh toán",
	})
}

// PayOSReturn: trình duyệt được PayOS redirect về sau khi thanh toán.
// Query string do trình duyệt mang về, không có giá trị xác thực nên
// handler này không được đổi trạng thái đơn: chuyển sang PAID chỉ đi qua
// webhook có chữ ký. Ở đây chỉ đọc trạng thái hiện tại của đơn rồi đưa
// người dùng về trang kết quả của frontend.
func PayOSReturn(c *fiber.Ctx) error {
	frontend := os.Getenv("FRONTEND_URL")

	orderCode, err := strconv.ParseInt(c.Query("orderCode"), 10, 64)
	if err != nil {
		return c.Redirect(fmt.Sprintf("%s/thanh-toan-that-bai?reason=invalid-order", frontend))
	}

	var order model.Order
	if err := database.DB.Where("order_code = ?", orderCode).First(&order).Error; err != nil {
		log.Printf("PayOS return: không tìm thấy đơn %d: %v", orderCode, err)
		return c.Redirect(fmt.Sprintf("%s/thanh-toan-that-bai?reason=order-not-found", frontend))
	}

	if order.PaymentStatus == model.PaymentPaid {
		return c.Redirect(fmt.Sprintf("%s/thanh-toan-thanh-cong?orderCode=%s", frontend, order.PublicCode))
	}
	if order.Status == model.OrderCancelled || c.Query("status") == "CANCELLED" {
		return c.Redirect(fmt.Sprintf("%s/thanh-toan-that-bai?orderCode=%s", frontend, order.PublicCode))
	}

	// webhook có thể về chậm hơn trình duyệt, frontend poll trạng thái đơn
	return c.Redirect(fmt.Sprintf("%s/thanh-toan-dang-xu-ly?orderCode=%s", frontend, order.PublicCode))
}

// PayOSWebhook: server-to-server, PayOS được phép gửi lại nhiều lần
func PayOSWebhook(c *fiber.Ctx) error {
	var payload model.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid payload"})
	}

	payos := NewPayOS()
	result := payos.VerifyWebhook(payload)

	if !result.IsSuccess {
		return c.JSON(fiber.Map{"success": false, "message": result.Message})
	}

	order, transitioned, err := helper.ConfirmOrderPaid(database.DB, result.OrderCode, time.Now())
	if err != nil {
		log.Printf("PayOS webhook: không xác nhận được đơn %d: %v", result.OrderCode, err)
		return c.JSON(fiber.Map{"success": false, "message": "Order not found"})
	}

	// transitioned == false: webhook gửi lại, đơn đã PAID → không gửi lại email
	if transitioned {
		dispatchTicketEmail(order)
		BroadcastEvent(order.EventID)
	}

	return c.JSON(fiber.Map{"success": true})
}

// dispatchTicketEmail gửi email vé async sau khi đơn chuyển PAID.
// Lỗi email không được chặn luồng xác nhận thanh toán.
func dispatchTicketEmail(order *model.Order) {
	data := utils.TicketEmailData{
		OrderCode:   order.PublicCode,
		EventName:   order.Event.Name,
		Venue:       order.Event.Venue,
		StartTime:   order.Event.StartTime.Format("15:04 - 02/01/2006"),
		TotalAmount: order.TotalAmount,
		DetailLink:  fmt.Sprintf("%s/don-hang/%s", os.Getenv("FRONTEND_URL"), order.PublicCode),
	}

	ticketTypeNames := loadTicketTypeNames(order)
	for _, ticket := range order.Tickets {
		data.Tickets = append(data.Tickets, utils.TicketEmailLine{
			TicketCode:     ticket.TicketCode,
			TicketTypeName: ticketTypeNames[ticket.TicketTypeId],
			Price:          ticket.Price,
		})
	}

	go utils.SendTicketEmail(order.Email, data)
}

func loadTicketTypeNames(order *model.Order) map[uint]string {
	names := make(map[uint]string)
	var ticketTypes []model.TicketType
	if err := database.DB.Where("event_id = ?", order.EventID).Find(&ticketTypes).Error; err != nil {
		log.Printf("Lỗi tải hạng vé cho email đơn %s: %v", order.PublicCode, err)
		return names
	}
	for _, tt := range ticketTypes {
		names[tt.ID] = tt.Name
	}
	return names
}
