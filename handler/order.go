package handler

import (
	"concert_hub/database"
	"concert_hub/helper"
	"concert_hub/model"
	"concert_hub/utils"
	"encoding/base64"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateOrder đặt vé: giữ tồn kho + chốt giá + sinh mã vé trong một transaction
func CreateOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateOrderInput)

	// Khách đã đăng nhập thì gắn đơn vào tài khoản, khách vãng lai để trống
	var customerId *uint
	if customer, ok := c.Locals("customer").(*model.Customer); ok && customer != nil {
		customerId = &customer.ID
		if input.Email == "" {
			input.Email = customer.Email
		}
	}

	order, err := helper.CreateOrder(database.DB, input, customerId, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrEventNotFound), errors.Is(err, helper.ErrTicketTypeNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, err.Error(), nil)
		case errors.Is(err, helper.ErrInsufficientInventory),
			errors.Is(err, helper.ErrDiscountExhausted):
			// conflict: caller hiển thị thông báo riêng, không retry
			return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), nil)
		case errors.Is(err, helper.ErrEventNotOnSale),
			errors.Is(err, helper.ErrSaleWindowClosed),
			errors.Is(err, helper.ErrQuantityNotAllowed),
			errors.Is(err, helper.ErrDiscountInvalid),
			errors.Is(err, helper.ErrDiscountExpired),
			errors.Is(err, helper.ErrDiscountBelowMinimum):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		default:
			log.Printf("Lỗi tạo đơn hàng: %v", err)
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo đơn hàng", err)
		}
	}

	BroadcastEvent(order.EventID)

	// Tóm tắt dòng vé theo hạng — mã soát vé KHÔNG trả về ở đây,
	// vé chỉ gửi qua email sau khi thanh toán thành công
	type lineSummary struct {
		TicketTypeName string  `json:"ticketTypeName"`
		Price          float64 `json:"price"`
		Quantity       int     `json:"quantity"`
	}
	summaries := map[uint]*lineSummary{}
	names := loadTicketTypeNames(order)
	for _, ticket := range order.Tickets {
		if s, ok := summaries[ticket.TicketTypeId]; ok {
			s.Quantity++
		} else {
			summaries[ticket.TicketTypeId] = &lineSummary{
				TicketTypeName: names[ticket.TicketTypeId],
				Price:          ticket.Price,
				Quantity:       1,
			}
		}
	}
	lines := []lineSummary{}
	for _, s := range summaries {
		lines = append(lines, *s)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"orderCode":      order.PublicCode,
		"eventName":      order.Event.Name,
		"totalAmount":    order.TotalAmount,
		"discountAmount": order.DiscountAmount,
		"status":         order.Status,
		"paymentStatus":  order.PaymentStatus,
		"lines":          lines,
		"nextStep":       "Tạo thanh toán để giữ vé",
	})
}

func GetMyOrders(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var orders []model.Order
	if err := database.DB.
		Preload("Tickets").
		Preload("Event").
		Where("customer_id = ? AND payment_status = ?", customer.ID, model.PaymentPaid).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải đơn hàng", err)
	}

	response := []map[string]interface{}{}

	for _, order := range orders {
		tickets := []map[string]interface{}{}
		for _, ticket := range order.Tickets {
			tickets = append(tickets, map[string]interface{}{
				"ticketCode": ticket.TicketCode,
				"checkedIn":  ticket.CheckedIn,
			})
		}

		posterUrl := ""
		if order.Event.PosterUrl != nil {
			posterUrl = *order.Event.PosterUrl
		}
		paidAt := ""
		if order.PaidAt != nil {
			paidAt = order.PaidAt.Format("02/01/2006 15:04")
		}

		response = append(response, map[string]interface{}{
			"orderCode":   order.PublicCode,
			"eventName":   order.Event.Name,
			"venue":       order.Event.Venue,
			"startTime":   order.Event.StartTime.Format("02/01/2006 15:04"),
			"totalAmount": order.TotalAmount,
			"paidAt":      paidAt,
			"poster":      posterUrl,
			"ticketCount": len(order.Tickets),
			"tickets":     tickets,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetOrderDetail(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	var order model.Order
	if err := database.DB.
		Preload("Tickets").
		Preload("Event").
		Where("public_code = ?", orderCode).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy đơn hàng", err)
	}

	names := loadTicketTypeNames(&order)

	tickets := []map[string]interface{}{}
	for _, ticket := range order.Tickets {
		// QR cho từng vé, chỉ hiện khi đơn đã thanh toán
		qrBase64 := ""
		if order.PaymentStatus == model.PaymentPaid {
			qrBytes, err := utils.GenerateQRCode(ticket.TicketCode, 400)
			if err != nil {
				log.Printf("Lỗi tạo QR cho vé %s: %v", ticket.TicketCode, err)
			} else {
				qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
			}
		}
		tickets = append(tickets, map[string]interface{}{
			"ticketCode":     ticket.TicketCode,
			"ticketTypeName": names[ticket.TicketTypeId],
			"price":          ticket.Price,
			"status":         ticket.Status,
			"checkedIn":      ticket.CheckedIn,
			"qrCode":         qrBase64,
		})
	}

	paidAt := ""
	if order.PaidAt != nil {
		paidAt = order.PaidAt.Format("15:04 - 02/01/2006")
	}

	response := map[string]interface{}{
		"orderCode":      order.PublicCode,
		"eventName":      order.Event.Name,
		"venue":          order.Event.Venue,
		"startTime":      order.Event.StartTime.Format("15:04 - 02/01/2006"),
		"totalAmount":    order.TotalAmount,
		"discountAmount": order.DiscountAmount,
		"paymentMethod":  order.PaymentMethod,
		"paymentStatus":  order.PaymentStatus,
		"paidAt":         paidAt,
		"customerName":   order.CustomerName,
		"phone":          order.Phone,
		"email":          order.Email,
		"status":         order.Status,
		"tickets":        tickets,
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetOrdersAdmin danh sách đơn cho admin, lọc + phân trang
func GetOrdersAdmin(c *fiber.Ctx) error {
	_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOrganizer {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Bạn không có quyền thực hiện thao tác này", errors.New("not permission"))
	}

	filterInput := new(model.FilterOrderInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu đầu vào không hợp lệ", err)
	}

	db := database.DB
	var orders []model.Order
	condition := db.Preload("Event").Model(&model.Order{})

	if filterInput.EventId > 0 {
		condition = condition.Where("event_id = ?", filterInput.EventId)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.PaymentStatus != "" {
		condition = condition.Where("payment_status = ?", filterInput.PaymentStatus)
	}
	if filterInput.StartDate != nil {
		condition = condition.Where("created_at >= ?", filterInput.StartDate)
	}
	if filterInput.EndDate != nil {
		condition = condition.Where("created_at <= ?", filterInput.EndDate)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	if err := condition.Order("created_at desc").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải đơn hàng", err)
	}

	response := &model.ResponseCustom{
		Rows:       orders,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}
