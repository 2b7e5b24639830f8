package handler

import (
	"concert_hub/config"
	"concert_hub/constants"
	"concert_hub/database"
	"concert_hub/helper"
	"concert_hub/model"
	"concert_hub/utils"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gopkg.in/gomail.v2"
)

func RegisterCustomer(c *fiber.Ctx) error {
	db := database.DB

	customerInput, ok := c.Locals("input").(model.RegisterCustomerInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil, "general")
	}

	hash, err := helper.HashPassword(customerInput.Password)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err, "password")
	}

	newCustomer := new(model.Customer)
	copier.Copy(&newCustomer, &customerInput)
	newCustomer.Password = hash
	newCustomer.IsActive = true

	if err := db.Create(&newCustomer).Error; err != nil {
		// Unique constraint có thể trượt qua bước check ở middleware khi đăng ký đồng thời
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			if strings.Contains(err.Error(), "email") {
				return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.EMAIL_CUSTOMER_EXISTS, nil, "email")
			}
			if strings.Contains(err.Error(), "phone") {
				return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.PHONE_NUMBER_CUSTOMER_EXISTS, nil, "phone")
			}
		}
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err, "general")
	}

	return utils.SuccessResponseWithMessage(c, fiber.StatusCreated, "Đăng ký thành công", newCustomer)
}

func CustomerLogin(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	loginRequest := new(LoginRequest)

	if err := c.BodyParser(loginRequest); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}

	if loginRequest.Email == "" || loginRequest.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("email and password are required"))
	}

	customerModel, err := helper.GetCustomerByEmail(loginRequest.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if customerModel == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_EMAIL, errors.New("customer not exists"))
	}

	if !helper.CheckPasswordHash(loginRequest.Password, customerModel.Password) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INVALID_PASSWORD, errors.New("password does not match email"))
	}

	if !customerModel.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("active false"))
	}

	tokenClaim := model.TokenClaim{
		CustomerId: customerModel.ID,
		Username:   customerModel.Email,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tokenData := model.TokenData{
		AccessToken:  token,
		RefreshToken: refreshToken,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tokenData)
}

func GetCurrentCustomer(c *fiber.Ctx) error {
	if customer, ok := c.Locals("customer").(*model.Customer); ok && customer != nil {
		return utils.SuccessResponse(c, fiber.StatusOK, customer)
	}

	customerId, ok := c.Locals("customerId").(uint)
	if !ok || customerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	var customer model.Customer
	if err := database.DB.First(&customer, customerId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

func EditCustomer(c *fiber.Ctx) error {
	db := database.DB

	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	customerInput := new(model.EditCustomerInput)
	if err := c.BodyParser(customerInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	if customerInput.Phone != nil {
		exists, err := helper.CheckByPhoneNumberCustomer(*customerInput.Phone, &customer.ID)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err, "phone")
		}
		if exists {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.PHONE_NUMBER_CUSTOMER_EXISTS, errors.New("phone exists"), "phone")
		}
	}

	copier.CopyWithOption(customer, customerInput, copier.Option{IgnoreEmpty: true})

	if err := db.Model(&model.Customer{DTO: model.DTO{ID: customer.ID}}).Updates(customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

func ChangePasswordCustomer(c *fiber.Ctx) error {
	db := database.DB
	changePasswordInput, ok := c.Locals("input").(model.CustomerChangePassword)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	customerInfo, _ := helper.GetInfoCustomerFromToken(c)
	if customerInfo.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Chưa đăng nhập", nil)
	}

	var customer model.Customer
	if err := db.First(&customer, customerInfo.CustomerId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if !helper.CheckPasswordHash(changePasswordInput.CurrentPassword, customer.Password) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_PASSWORD, errors.New("currentPassword invalid"), "currentPassword")
	}
	newPasswordHash, err := helper.HashPassword(changePasswordInput.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}
	customer.Password = newPasswordHash
	db.Save(&customer)

	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

func ForgotPassword(c *fiber.Ctx) error {
	db := database.DB

	emailInput := new(model.ForgotPasswordRequest)
	if err := c.BodyParser(emailInput); err != nil || emailInput.Email == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	var customer model.Customer
	if err := db.Where("email = ?", emailInput.Email).First(&customer).Error; err != nil {
		// Không lộ email nào tồn tại trong hệ thống
		return utils.SuccessResponseWithMessage(c, fiber.StatusOK, "Nếu email tồn tại, liên kết khôi phục đã được gửi", nil)
	}

	tokenBytes := make([]byte, 16)
	if _, err := rand.Read(tokenBytes); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo token", err)
	}
	token := hex.EncodeToString(tokenBytes)

	resetToken := model.PasswordResetToken{
		CustomerId: customer.ID,
		Token:      token,
		ExpiresAt:  time.Now().Add(1 * time.Hour).Unix(),
	}
	if err := db.Create(&resetToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lưu token", err)
	}

	resetLink := fmt.Sprintf("%s/dat-lai-mat-khau?token=%s", config.Config("FRONTEND_URL"), token)

	go func() {
		m := gomail.NewMessage()
		m.SetHeader("From", fmt.Sprintf("ConcertHub <%s>", config.Config("SMTP_USERNAME")))
		m.SetHeader("To", emailInput.Email)
		m.SetHeader("Subject", "Khôi phục mật khẩu")
		m.SetBody("text/plain", fmt.Sprintf("Nhấp vào liên kết để đặt lại mật khẩu (hết hạn sau 1 giờ): %s", resetLink))

		d := gomail.NewDialer(config.Config("SMTP_HOST"), 587, config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email khôi phục mật khẩu đến %s: %v", emailInput.Email, err)
		}
	}()

	return utils.SuccessResponseWithMessage(c, fiber.StatusOK, "Nếu email tồn tại, liên kết khôi phục đã được gửi", nil)
}

func ResetPassword(c *fiber.Ctx) error {
	db := database.DB

	resetInput := new(model.ResetPasswordRequest)
	if err := c.BodyParser(resetInput); err != nil || resetInput.Token == "" || len(resetInput.NewPassword) < 6 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	var resetToken model.PasswordResetToken
	if err := db.Where("token = ? AND expires_at > ? AND used = ?", resetInput.Token, time.Now().Unix(), false).
		First(&resetToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Token không hợp lệ hoặc đã hết hạn", err)
	}

	var customer model.Customer
	if err := db.First(&customer, resetToken.CustomerId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy khách hàng", err)
	}

	hash, err := helper.HashPassword(resetInput.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	customer.Password = hash
	if err := db.Save(&customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể cập nhật mật khẩu", err)
	}
	db.Model(&resetToken).Update("used", true)

	return utils.SuccessResponseWithMessage(c, fiber.StatusOK, "Đặt lại mật khẩu thành công", nil)
}

// GetCustomers danh sách khách hàng cho admin
func GetCustomers(c *fiber.Ctx) error {
	db := database.DB

	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	type FilterCustomer struct {
		model.Pagination
		SearchKey string `json:"searchKey"`
		Active    *bool  `json:"active"`
	}

	filterInput := new(FilterCustomer)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := db.Model(&model.Customer{})
	if filterInput.SearchKey != "" {
		key := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where("LOWER(user_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", key, key, key)
	}
	if filterInput.Active != nil {
		condition = condition.Where("is_active = ?", filterInput.Active)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var customers model.Customers
	condition.Order("id ASC").Find(&customers)

	response := &model.ResponseCustom{
		Rows:       customers,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}
