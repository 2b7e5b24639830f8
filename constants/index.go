package constants

// Roles
const (
	ROLE_ADMIN     = "ADMIN"
	ROLE_ORGANIZER = "ORGANIZER"
	ROLE_STAFF     = "STAFF"
)

// Messages
const (
	ERROR_INPUT                           = "Dữ liệu đầu vào không hợp lệ"
	ERROR_INTERNAL_ERROR                  = "Lỗi hệ thống, vui lòng thử lại sau"
	ERROR_CREATE                          = "Tạo mới thất bại"
	ERROR_EDIT                            = "Cập nhật thất bại"
	ERROR_PARSE_DATA_TO_LOCALS            = "Lỗi đọc dữ liệu đã xác thực"
	DATA_INPUT_IS_NOT_NUMBER              = "Tham số phải là số"
	NOT_FOUND_RECORDS                     = "Không tìm thấy bản ghi"
	NOT_ADMIN                             = "Bạn không có quyền thực hiện thao tác này"
	NOT_STAFF                             = "Chỉ nhân viên soát vé mới được thực hiện thao tác này"
	MISSING_LOGIN_INPUT                   = "Thiếu thông tin đăng nhập"
	INVALID_USERNAME                      = "Tên đăng nhập không tồn tại"
	INVALID_PASSWORD                      = "Mật khẩu không đúng"
	INVALID_EMAIL                         = "Email không hợp lệ"
	ACCOUNT_NOT_ACTIVE                    = "Tài khoản đã bị khóa"
	CAN_NOT_HASH_PASSWORD                 = "Không thể mã hóa mật khẩu"
	NEW_PASSWORD_NOT_SAME_REPEAT_PASSWORD = "Mật khẩu nhập lại không khớp"
	EMAIL_CUSTOMER_EXISTS                 = "Email đã được đăng ký"
	PHONE_NUMBER_CUSTOMER_EXISTS          = "Số điện thoại đã được đăng ký"
	ROLE_NOT_EXISTS                       = "Quyền không tồn tại"
)
