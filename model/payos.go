package model

type PayOSConfig struct {
	ClientId    string
	ApiKey      string
	ChecksumKey string
	BaseURL     string
	ReturnURL   string
	CancelURL   string
}

type CheckoutRequest struct {
	OrderCode   int64   `json:"orderCode"`
	Amount      int64   `json:"amount"`
	Description string  `json:"description"`
	ReturnUrl   string  `json:"returnUrl"`
	CancelUrl   string  `json:"cancelUrl"`
	BuyerEmail  string  `json:"buyerEmail,omitempty"`
	BuyerName   string  `json:"buyerName,omitempty"`
	Signature   string  `json:"signature"`
}

type CheckoutData struct {
	CheckoutUrl   string `json:"checkoutUrl"`
	PaymentLinkId string `json:"paymentLinkId"`
	OrderCode     int64  `json:"orderCode"`
	Status        string `json:"status"`
}

type CheckoutResponse struct {
	Code string        `json:"code"` // 00 = success
	Desc string        `json:"desc"`
	Data *CheckoutData `json:"data"`
}

type PaymentResult struct {
	IsSuccess bool   `json:"isSuccess"`
	OrderCode int64  `json:"orderCode"`
	Status    string `json:"status"` // PAID, CANCELLED
	Message   string `json:"message"`
}

type WebhookData struct {
	OrderCode int64  `json:"orderCode"`
	Amount    int64  `json:"amount"`
	Code      string `json:"code"`
	Desc      string `json:"desc"`
}

type WebhookPayload struct {
	Code      string      `json:"code"`
	Desc      string      `json:"desc"`
	Success   bool        `json:"success"`
	Data      WebhookData `json:"data"`
	Signature string      `json:"signature"`
}

type CreatePaymentInput struct {
	OrderCode string `json:"orderCode" validate:"required"` // PublicCode của đơn hàng
	Method    string `json:"method" validate:"required,oneof=PAYOS"`
}
