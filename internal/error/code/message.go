package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效的认证令牌",
	ErrTooManyRequests: "请求频率过高，请稍后再试",

	// 用户相关错误码
	ErrUserAlreadyExist:   "用户已存在",
	ErrInvalidCredentials: "用户名或密码错误",
	ErrTokenGeneration:    "令牌生成失败",

	// 员工相关错误码
	ErrEmployeeNotFound:      "员工不存在",
	ErrEmployeeFieldsMissing: "所有字段均为必填项",

	// 上传相关错误码
	ErrUploadInvalidType: "只允许上传图片文件",
	ErrUploadTooLarge:    "图片大小不能超过2MB",
	ErrUploadFailed:      "文件保存失败",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// 用户相关错误码
	ErrUserAlreadyExist:   StatusBadRequest,
	ErrInvalidCredentials: StatusBadRequest,
	ErrTokenGeneration:    StatusInternalServerError,

	// 员工相关错误码
	ErrEmployeeNotFound:      StatusNotFound,
	ErrEmployeeFieldsMissing: StatusBadRequest,

	// 上传相关错误码
	ErrUploadInvalidType: StatusBadRequest,
	ErrUploadTooLarge:    StatusBadRequest,
	ErrUploadFailed:      StatusInternalServerError,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
