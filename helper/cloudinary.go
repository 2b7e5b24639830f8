package helper

import (
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
)

// InitCloudinary dựng client Cloudinary từ biến môi trường, dùng cho
// upload poster sự kiện phía server. Thiếu credential thì dừng hẳn:
// route upload không chạy được nếu không có client.
func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("Không khởi tạo được Cloudinary: %v", err)
	}
	return cld
}
