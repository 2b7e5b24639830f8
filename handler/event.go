package handler

import (
	"concert_hub/config"
	"concert_hub/constants"
	"concert_hub/database"
	"concert_hub/helper"
	"concert_hub/model"
	"concert_hub/utils"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetEvents danh sách sự kiện công khai, lọc + tìm kiếm + phân trang
func GetEvents(c *fiber.Ctx) error {
	filterInput := new(model.FilterEventInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.Event{})
	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(name) LIKE ? OR LOWER(artist) LIKE ? OR LOWER(venue) LIKE ?", key, key, key)
	}
	if filterInput.Status != nil {
		condition = condition.Where("status = ?", *filterInput.Status)
	} else {
		// Mặc định không hiện sự kiện đã hủy cho khách
		condition = condition.Where("status <> ?", model.EventCancelled)
	}
	if filterInput.Province != nil {
		condition = condition.Where("province = ?", *filterInput.Province)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var events model.Events
	condition.Preload("TicketTypes").Order("start_time ASC").Find(&events)

	response := &model.ResponseCustom{
		Rows:       events,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func GetEventBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	db := database.DB

	var event model.Event
	if err := db.Preload("TicketTypes").Where("slug = ?", slug).First(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func GetEventById(c *fiber.Ctx) error {
	eventId, err := c.ParamsInt("id")
	if err != nil || eventId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}
	db := database.DB

	var event model.Event
	if err := db.Preload("TicketTypes").First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func CreateEvent(c *fiber.Ctx) error {
	db := database.DB
	eventInput, ok := c.Locals("input").(model.CreateEventInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	dataInfo, _, _, _ := helper.GetInfoAccountFromToken(c)

	tx := db.Begin()

	event := model.Event{
		Name:        eventInput.Name,
		Slug:        helper.GenerateUniqueEventSlug(tx, eventInput.Name),
		Description: eventInput.Description,
		Venue:       eventInput.Venue,
		Province:    eventInput.Province,
		StartTime:   eventInput.StartTime,
		EndTime:     eventInput.EndTime,
		Status:      model.EventUpcoming,
		PosterUrl:   eventInput.PosterUrl,
		Artist:      eventInput.Artist,
		OrganizerId: dataInfo.AccountId,
	}

	if err := tx.Create(&event).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	tx.Commit()

	return utils.SuccessResponse(c, fiber.StatusCreated, event)
}

func EditEvent(c *fiber.Ctx) error {
	db := database.DB
	eventId, ok := c.Locals("eventId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse eventId fail"))
	}
	eventInput, ok := c.Locals("input").(model.EditEventInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	updateMap := map[string]interface{}{}
	if eventInput.Name != nil {
		updateMap["name"] = *eventInput.Name
	}
	if eventInput.Description != nil {
		updateMap["description"] = *eventInput.Description
	}
	if eventInput.Venue != nil {
		updateMap["venue"] = *eventInput.Venue
	}
	if eventInput.Province != nil {
		updateMap["province"] = *eventInput.Province
	}
	if eventInput.StartTime != nil {
		updateMap["start_time"] = *eventInput.StartTime
	}
	if eventInput.EndTime != nil {
		updateMap["end_time"] = *eventInput.EndTime
	}
	if eventInput.PosterUrl != nil {
		updateMap["poster_url"] = *eventInput.PosterUrl
	}
	if eventInput.Artist != nil {
		updateMap["artist"] = *eventInput.Artist
	}
	if eventInput.Status != nil {
		updateMap["status"] = *eventInput.Status
	}

	if len(updateMap) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, event)
	}

	if err := db.Model(&event).Updates(updateMap).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	db.Preload("TicketTypes").First(&event, eventId)

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

// CancelEvent hủy sự kiện, đơn đã thanh toán giữ nguyên để đối soát hoàn tiền thủ công
func CancelEvent(c *fiber.Ctx) error {
	_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOrganizer {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	eventId, err := c.ParamsInt("id")
	if err != nil || eventId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	db := database.DB
	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if event.Status == model.EventEnded {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Sự kiện đã kết thúc", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&event).Update("status", model.EventCancelled).Error; err != nil {
			return err
		}
		// Đóng các đơn chưa thanh toán của sự kiện
		return tx.Model(&model.Order{}).
			Where("event_id = ? AND status = ? AND payment_status <> ?", eventId, model.OrderPending, model.PaymentPaid).
			Updates(map[string]interface{}{
				"status":       model.OrderCancelled,
				"cancelled_at": time.Now(),
			}).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponseWithMessage(c, fiber.StatusOK, "Đã hủy sự kiện", event)
}

// GenerateSignature ký params để frontend upload poster thẳng lên Cloudinary
func GenerateSignature(c *fiber.Ctx) error {
	_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOrganizer {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
	}

	type SigParams struct {
		Folder   string `json:"folder"`
		PublicID string `json:"public_id"`
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Params không hợp lệ", err)
	}

	timestamp := time.Now().Unix()
	timestampStr := fmt.Sprintf("%d", timestamp)

	paramMap := make(map[string]string)
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}
	paramMap["timestamp"] = timestampStr

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Cloudinary ký trên raw value, không URL encode
	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(config.Config("CLOUDINARY_API_SECRET"))

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    config.Config("CLOUDINARY_API_KEY"),
		"cloudName": config.Config("CLOUDINARY_CLOUD_NAME"),
	})
}

// UploadEventPoster upload poster qua server (multipart), dùng khi frontend không upload trực tiếp
func UploadEventPoster(c *fiber.Ctx) error {
	_, isAdmin, isOrganizer, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOrganizer {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
	}

	eventId, err := c.ParamsInt("id")
	if err != nil || eventId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var event model.Event
	if err := database.DB.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	posterFile, err := c.FormFile("poster")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu file poster", err)
	}
	if posterFile.Size > 5*1024*1024 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File vượt quá 5MB", nil)
	}

	posterReader, err := posterFile.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đọc file poster", err)
	}
	defer posterReader.Close()

	cld := helper.InitCloudinary()
	uploadResult, err := cld.Upload.Upload(context.Background(), posterReader, uploader.UploadParams{
		Folder:       "events/posters",
		PublicID:     fmt.Sprintf("event_%d_poster_%d", eventId, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tải poster lên Cloudinary", err)
	}

	if err := database.DB.Model(&event).Update("poster_url", uploadResult.SecureURL).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	database.DB.First(&event, eventId)

	return utils.SuccessResponseWithMessage(c, fiber.StatusOK, "Upload poster thành công", event)
}
