package handler

import (
	"concert_hub/config"
	"concert_hub/database"
	"concert_hub/model"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		addr := config.Config("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	})
	return redisClient
}

type TicketTypeAvailability struct {
	Id        uint    `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Remaining int     `json:"remaining"`
	SoldOut   bool    `json:"soldOut"`
}

// AvailabilityWebsocket đẩy realtime số vé còn lại của sự kiện cho client.
// Mỗi connection tự subscribe kênh Redis của sự kiện và chỉ ghi vào chính
// nó: một lần publish đến mỗi client đúng một lần, kể cả khi publisher
// chạy ở instance khác. Goroutine của connection là writer duy nhất.
func AvailabilityWebsocket(c *websocket.Conn) {
	defer c.Close()

	eventIdStr := c.Params("id")
	id64, err := strconv.ParseUint(eventIdStr, 10, 64)
	if err != nil {
		log.Printf("Invalid eventId: %s", eventIdStr)
		return
	}
	eventId := uint(id64)

	// Gửi trạng thái hiện tại cho client mới connect
	if err := c.WriteJSON(fetchAvailability(eventId)); err != nil {
		return
	}

	pubsub := getRedisClient().Subscribe(
		context.Background(),
		fmt.Sprintf("event:%d", eventId),
	)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			return
		}
	}
}

func fetchAvailability(eventId uint) []TicketTypeAvailability {
	var ticketTypes []model.TicketType
	if err := database.DB.Where("event_id = ?", eventId).Find(&ticketTypes).Error; err != nil {
		log.Printf("Lỗi tải tồn vé sự kiện %d: %v", eventId, err)
		return nil
	}

	result := make([]TicketTypeAvailability, 0, len(ticketTypes))
	for _, tt := range ticketTypes {
		result = append(result, TicketTypeAvailability{
			Id:        tt.ID,
			Name:      tt.Name,
			Price:     tt.Price,
			Remaining: tt.Remaining,
			SoldOut:   tt.Remaining == 0,
		})
	}
	return result
}

// BroadcastEvent publish tồn vé mới nhất lên kênh của sự kiện. Không ghi
// trực tiếp vào connection nào: mọi client nhận qua subscriber của chính nó.
func BroadcastEvent(eventId uint) {
	payload, err := json.Marshal(fetchAvailability(eventId))
	if err != nil {
		return
	}
	if err := getRedisClient().Publish(
		context.Background(),
		fmt.Sprintf("event:%d", eventId),
		payload,
	).Err(); err != nil {
		log.Printf("Lỗi publish tồn vé sự kiện %d: %v", eventId, err)
	}
}
