package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// TicketEmailData dữ liệu cho template email vé
type TicketEmailData struct {
	OrderCode   string
	EventName   string
	Venue       string
	StartTime   string
	TotalAmount float64
	Tickets     []TicketEmailLine
	DetailLink  string
}

type TicketEmailLine struct {
	TicketCode     string
	TicketTypeName string
	Price          float64
}

// SendTicketEmail gửi email vé kèm QR cho từng vé sau khi thanh toán thành công.
// Gọi async từ handler, lỗi gửi mail chỉ log, không chặn luồng thanh toán.
func SendTicketEmail(to string, data TicketEmailData) {
	tmplPath := "templates/ticket_confirmation.html"
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("Lỗi load template email vé: %v", err)
		return
	}

	var htmlBody bytes.Buffer
	if err := tmpl.Execute(&htmlBody, data); err != nil {
		log.Printf("Lỗi render template email vé: %v", err)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Vé của bạn - Mã đơn: "+data.OrderCode)
	m.SetBody("text/html", htmlBody.String())

	// Đính kèm QR code cho từng vé
	for _, ticket := range data.Tickets {
		qrBytes, err := GenerateQRCode(ticket.TicketCode, 256)
		if err != nil {
			log.Printf("Lỗi tạo QR cho vé %s: %v", ticket.TicketCode, err)
			continue
		}

		filename := fmt.Sprintf("Ve_%s.png", ticket.TicketCode)
		qr := qrBytes
		m.Attach(filename, gomail.Rename(filename), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(qr))
			return err
		}))
	}

	host := os.Getenv("SMTP_HOST")
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Lỗi gửi email vé cho %s: %v", to, err)
	} else {
		log.Printf("Đã gửi email vé + QR đến %s (đơn %s)", to, data.OrderCode)
	}
}
