package handler

import (
	"bytes"
	"concert_hub/model"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// PayOS Service
type PayOS struct {
	Config model.PayOSConfig
	client *http.Client
}

func NewPayOS() *PayOS {
	if err := godotenv.Load(); err != nil {
		log.Println("Không tìm thấy file .env, dùng biến môi trường hệ thống...")
	}
	baseURL := os.Getenv("PAYOS_URL")
	if baseURL == "" {
		baseURL = "https://api-merchant.payos.vn"
	}
	return &PayOS{
		Config: model.PayOSConfig{
			ClientId:    os.Getenv("PAYOS_CLIENT_ID"),
			ApiKey:      os.Getenv("PAYOS_API_KEY"),
			ChecksumKey: os.Getenv("PAYOS_CHECKSUM_KEY"),
			BaseURL:     baseURL,
			ReturnURL:   os.Getenv("APP_URL") + "/payments/payos-return",
			CancelURL:   os.Getenv("APP_URL") + "/payments/payos-return",
		},
		// Gọi cổng có timeout, không để request treo giữ luồng đặt vé
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreatePaymentLink tạo phiên thanh toán bên PayOS, trả về link redirect
func (p *PayOS) CreatePaymentLink(req model.CheckoutRequest) (*model.CheckoutData, error) {
	req.ReturnUrl = p.Config.ReturnURL
	req.CancelUrl = p.Config.CancelURL
	req.Signature = p.signCheckout(req)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, p.Config.BaseURL+"/v2/payment-requests", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", p.Config.ClientId)
	httpReq.Header.Set("x-api-key", p.Config.ApiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gọi cổng thanh toán thất bại: %w", err)
	}
	defer resp.Body.Close()

	var checkoutResp model.CheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&checkoutResp); err != nil {
		return nil, fmt.Errorf("không đọc được phản hồi cổng thanh toán: %w", err)
	}

	if checkoutResp.Code != "00" || checkoutResp.Data == nil {
		return nil, fmt.Errorf("cổng thanh toán từ chối: %s", checkoutResp.Desc)
	}

	return checkoutResp.Data, nil
}

// signCheckout ký các trường theo thứ tự alphabet bằng HMAC-SHA256
func (p *PayOS) signCheckout(req model.CheckoutRequest) string {
	data := fmt.Sprintf("amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		req.Amount, req.CancelUrl, req.Description, req.OrderCode, req.ReturnUrl)
	return p.generateHash(data)
}

// VerifyWebhook kiểm tra chữ ký webhook (server-to-server).
// Đây là đường duy nhất được phép chuyển đơn sang PAID.
func (p *PayOS) VerifyWebhook(payload model.WebhookPayload) model.PaymentResult {
	data := fmt.Sprintf("amount=%d&code=%s&desc=%s&orderCode=%d",
		payload.Data.Amount, payload.Data.Code, payload.Data.Desc, payload.Data.OrderCode)
	expected := p.generateHash(data)

	if !hmac.Equal([]byte(expected), []byte(payload.Signature)) {
		return model.PaymentResult{IsSuccess: false, Message: "Invalid webhook signature"}
	}

	if payload.Success && payload.Data.Code == "00" {
		return model.PaymentResult{
			IsSuccess: true,
			OrderCode: payload.Data.OrderCode,
			Status:    "PAID",
		}
	}

	return model.PaymentResult{IsSuccess: false, OrderCode: payload.Data.OrderCode, Message: "Webhook failed"}
}

// Helpers
func (p *PayOS) generateHash(data string) string {
	h := hmac.New(sha256.New, []byte(p.Config.ChecksumKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
