package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 用户相关错误码 (101xxx).
const (
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist int = iota + 101000
	// ErrInvalidCredentials - 400: 用户名或密码错误.
	ErrInvalidCredentials
	// ErrTokenGeneration - 500: 令牌生成失败.
	ErrTokenGeneration
)

// 员工相关错误码 (102xxx).
const (
	// ErrEmployeeNotFound - 404: 员工不存在.
	ErrEmployeeNotFound int = iota + 102000
	// ErrEmployeeFieldsMissing - 400: 员工必填字段缺失.
	ErrEmployeeFieldsMissing
)

// 上传相关错误码 (103xxx).
const (
	// ErrUploadInvalidType - 400: 文件类型不允许.
	ErrUploadInvalidType int = iota + 103000
	// ErrUploadTooLarge - 400: 文件过大.
	ErrUploadTooLarge
	// ErrUploadFailed - 500: 文件保存失败.
	ErrUploadFailed
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
