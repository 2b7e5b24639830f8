package model

type Customer struct {
	DTO
	Email    string `gorm:"unique;not null" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`
	Password string `gorm:"not null" json:"-"`
	UserName string `json:"username"`

	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`

	AvatarUrl *string `json:"avatarUrl"`

	IsActive bool `gorm:"default:true" json:"isActive"`
}

type Customers []Customer

type RegisterCustomerInput struct {
	UserName string `validate:"required" json:"username"`
	Email    string `validate:"required,email" json:"email"`
	Phone    string `validate:"required" json:"phone"`
	Password string `validate:"required,min=6" json:"password"`
}

type EditCustomerInput struct {
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Phone     *string `json:"phone"`
	AvatarUrl *string `json:"avatarUrl"`
}

type CustomerChangePassword struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	RepeatPassword  string `json:"repeatPassword"`
}

type ForgotPasswordRequest struct {
	Email string `validate:"required,email" json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `validate:"required" json:"token"`
	NewPassword string `validate:"required,min=6" json:"newPassword"`
}

type PasswordResetToken struct {
	DTO
	CustomerId uint   `gorm:"not null;index" json:"customerId"`
	Token      string `gorm:"uniqueIndex;size:64" json:"-"`
	ExpiresAt  int64  `json:"expiresAt"`
	Used       bool   `gorm:"default:false" json:"used"`
}
