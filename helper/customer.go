package helper

import (
	"concert_hub/database"
	"concert_hub/model"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func CheckByPhoneNumberCustomer(phoneNumber string, id *uint) (bool, error) {
	db := database.DB
	var count int64
	if id == nil {
		if err := db.Model(&model.Customer{}).Where(model.Customer{Phone: phoneNumber}).Count(&count).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
	}
	if id != nil {
		if err := db.Model(&model.Customer{}).Where("phone = ? and id != ?", phoneNumber, *id).Count(&count).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
	}
	return count > 0, nil
}

func CheckByEmailCustomer(email string, id *uint) (bool, error) {
	db := database.DB
	var count int64
	if id == nil {
		if err := db.Model(&model.Customer{}).Where(model.Customer{Email: email}).Count(&count).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
	}
	if id != nil {
		if err := db.Model(&model.Customer{}).Where("email = ? and id != ?", email, *id).Count(&count).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
	}
	return count > 0, nil
}

// GetInfoCustomerFromToken trả claim + customer đã load, claim rỗng nếu là guest
func GetInfoCustomerFromToken(c *fiber.Ctx) (model.TokenClaim, model.Customer) {
	var emptyCustomer model.Customer
	guestClaim := model.TokenClaim{
		CustomerId: 0,
		Username:   "",
	}

	u := c.Locals("user")
	if u == nil {
		return guestClaim, emptyCustomer
	}

	token, ok := u.(*jwt.Token)
	if !ok || token == nil {
		return guestClaim, emptyCustomer
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return guestClaim, emptyCustomer
	}

	customerIdFloat, ok := claims["customerId"].(float64)
	if !ok || customerIdFloat == 0 {
		return guestClaim, emptyCustomer
	}
	customerId := uint(customerIdFloat)
	username, _ := claims["username"].(string)

	claim := model.TokenClaim{
		CustomerId: customerId,
		Username:   username,
	}

	var customer model.Customer
	if err := database.DB.First(&customer, customerId).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Lỗi truy vấn customer %d: %v", customerId, err)
		}
		return claim, emptyCustomer
	}

	return claim, customer
}
