package router

import (
	"concert_hub/handler"
	"concert_hub/middleware"
	"concert_hub/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)

	account := v1.Group("/account", logger.New())
	account.Get("/", middleware.Protected(), handler.GetAccounts)
	account.Get("/me", middleware.Protected(), handler.Me)
	account.Post("/", middleware.Protected(), validate.CreateAccount(), handler.CreateAccount)
	account.Post("/change-password", middleware.Protected(), validate.AdminChangePassword(), handler.AdminChangePassword)
	account.Patch("/:id/active", middleware.Protected(), handler.ToggleActiveAccount)

	customer := v1.Group("/customer", logger.New())
	customer.Get("/", middleware.Protected(), handler.GetCustomers)

	event := v1.Group("/event", logger.New())
	event.Post("/", middleware.Protected(), validate.CreateEvent(), handler.CreateEvent)
	event.Put("/:eventId", middleware.Protected(), validate.EditEvent("eventId"), handler.EditEvent)
	event.Patch("/:id/cancel", middleware.Protected(), handler.CancelEvent)
	event.Post("/:id/poster", middleware.Protected(), handler.UploadEventPoster)
	event.Post("/:eventId/ticket-type", middleware.Protected(), validate.CreateTicketType("eventId"), handler.CreateTicketType)
	event.Put("/ticket-type/:ticketTypeId", middleware.Protected(), validate.EditTicketType("ticketTypeId"), handler.EditTicketType)
	event.Get("/:id/stats", middleware.Protected(), handler.GetEventStats)
	event.Get("/:id/checkin-stats", middleware.Protected(), handler.GetCheckInStats)

	discount := v1.Group("/discount", logger.New())
	discount.Get("/", middleware.Protected(), handler.GetDiscounts)
	discount.Post("/", middleware.Protected(), validate.CreateDiscount(), handler.CreateDiscount)
	discount.Put("/:discountId", middleware.Protected(), validate.EditDiscount("discountId"), handler.EditDiscount)
	discount.Post("/preview", validate.PreviewDiscount(), handler.PreviewDiscount)

	promotion := v1.Group("/promotion", logger.New())
	promotion.Get("/", middleware.Protected(), handler.GetPromotions)
	promotion.Post("/", middleware.Protected(), validate.CreatePromotion(), handler.CreatePromotion)
	promotion.Put("/:promotionId", middleware.Protected(), validate.EditPromotion("promotionId"), handler.EditPromotion)
	promotion.Delete("/:id", middleware.Protected(), handler.DeletePromotion)

	order := v1.Group("/order", logger.New())
	order.Get("/admin", middleware.Protected(), handler.GetOrdersAdmin)

	checkin := v1.Group("/checkin", logger.New())
	checkin.Post("/", middleware.Protected(), handler.CheckInTicket)

	statistic := v1.Group("/statistic", logger.New())
	statistic.Get("/", middleware.Protected(), handler.GetAdminStats)

	v1.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)

	// Thanh toán: return và webhook do PayOS gọi trực tiếp
	app.Post("/payments", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.CreatePayment(), handler.CreatePayment)
	app.Get("/payments/payos-return", handler.PayOSReturn)
	app.Post("/payments/payos-webhook", handler.PayOSWebhook)

	// Public
	sukien := v1.Group("/su-kien")
	sukien.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetEvents)
	sukien.Get("/khuyen-mai", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetActivePromotions)
	sukien.Get("/:id/hang-ve", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetTicketTypesByEvent)
	sukien.Get("/:id/danh-gia", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetReviewsByEvent)
	sukien.Post("/:id/yeu-thich", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.ToggleFavorite)
	sukien.Get("/:slug", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetEventBySlug)

	sukien.Get("/ton-ve/:id", middleware.OptionalJWT(), websocket.New(handler.AvailabilityWebsocket))

	donhang := v1.Group("/don-hang")
	donhang.Post("/", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.CreateOrder(), handler.CreateOrder)
	donhang.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetMyOrders)
	donhang.Get("/:orderCode", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetOrderDetail)

	khachhang := v1.Group("/khach-hang")
	khachhang.Post("/login", handler.CustomerLogin)
	khachhang.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	khachhang.Get("/me", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetCurrentCustomer)
	khachhang.Put("/me", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.EditCustomer)
	khachhang.Post("/change-password", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.ChangePasswordCustomer(), handler.ChangePasswordCustomer)
	khachhang.Post("/forgot-password", handler.ForgotPassword)
	khachhang.Post("/reset-password", handler.ResetPassword)
	khachhang.Post("/danh-gia", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.CreateReview(), handler.CreateReview)
	khachhang.Get("/yeu-thich", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetMyFavorites)
	khachhang.Get("/thong-bao", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetMyNotifications)
	khachhang.Patch("/thong-bao/:id", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.MarkNotificationRead)
	khachhang.Patch("/thong-bao", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.MarkAllNotificationsRead)
}
