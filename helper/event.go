package helper

import (
	"concert_hub/database"
	"concert_hub/model"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var eventScheduler *cron.Cron
var orderScheduler gocron.Scheduler

// StartEventStatusScheduler cập nhật trạng thái sự kiện theo giờ diễn
func StartEventStatusScheduler() {
	eventScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Chạy mỗi 5 phút
	_, err := eventScheduler.AddFunc("*/5 * * * *", updateEventStatuses)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler sự kiện: %v", err)
		return
	}

	eventScheduler.Start()
	log.Println("Scheduler trạng thái sự kiện đã khởi động (mỗi 5 phút)")
}

func updateEventStatuses() {
	now := time.Now()
	db := database.DB

	result := db.Model(&model.Event{}).
		Where("status = ? AND start_time <= ? AND end_time > ?", model.EventUpcoming, now, now).
		Update("status", model.EventOngoing)
	if result.Error != nil {
		log.Printf("Lỗi cập nhật sự kiện đang diễn ra: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Đã chuyển %d sự kiện sang ONGOING", result.RowsAffected)
	}

	result = db.Model(&model.Event{}).
		Where("status IN ? AND end_time <= ?", []string{model.EventUpcoming, model.EventOngoing}, now).
		Update("status", model.EventEnded)
	if result.Error != nil {
		log.Printf("Lỗi cập nhật sự kiện đã kết thúc: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Đã chuyển %d sự kiện sang ENDED", result.RowsAffected)
	}
}

func StopEventStatusScheduler() {
	if eventScheduler != nil {
		eventScheduler.Stop()
	}
}

// OrderHoldDuration: đơn PENDING chưa thanh toán quá 30 phút sẽ bị hủy
const OrderHoldDuration = 30 * time.Minute

// StartOrderExpiryScheduler quét và hủy đơn chưa thanh toán quá hạn
func StartOrderExpiryScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Fatal(err)
	}

	orderScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			cancelled, err := CancelExpiredOrders(database.DB, OrderHoldDuration, time.Now())
			if err != nil {
				log.Printf("Lỗi hủy đơn quá hạn: %v", err)
				return
			}
			if cancelled > 0 {
				log.Printf("Đã hủy %d đơn chưa thanh toán quá hạn", cancelled)
			}
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Scheduler hủy đơn quá hạn đã khởi động (mỗi 10 phút)")
}

func StopOrderExpiryScheduler() {
	if orderScheduler != nil {
		_ = orderScheduler.Shutdown()
	}
}
