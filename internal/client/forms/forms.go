package forms

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"employee-http-service/internal/client/api"
)

// MaxImageSize 提交前检查的图片大小上限（2 MiB），与服务端的上传限制一致
const MaxImageSize = 2 << 20

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// 允许上传的图片扩展名
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Errors 字段名到错误信息的映射
type Errors map[string]string

// Valid 表单是否通过校验
func (e Errors) Valid() bool {
	return len(e) == 0
}

// ValidateCredentials 校验登录和注册表单
func ValidateCredentials(userName, password string) Errors {
	errs := Errors{}
	if strings.TrimSpace(userName) == "" {
		errs["userName"] = "用户名不能为空"
	}
	if password == "" {
		errs["password"] = "密码不能为空"
	} else if len(password) < 6 {
		errs["password"] = "密码长度不能少于6位"
	}
	return errs
}

// ValidateEmployeeForm 在提交前校验员工表单
// requireAll为true时（创建）所有字段必填，为false时（更新）只校验已填写的字段
func ValidateEmployeeForm(form api.EmployeeForm, requireAll bool) Errors {
	errs := Errors{}

	if form.Name == "" {
		if requireAll {
			errs["name"] = "姓名不能为空"
		}
	}

	if form.Email == "" {
		if requireAll {
			errs["email"] = "邮箱不能为空"
		}
	} else if !emailPattern.MatchString(form.Email) {
		errs["email"] = "邮箱格式不正确"
	}

	if form.Mobile == "" {
		if requireAll {
			errs["mobile"] = "手机号不能为空"
		}
	} else if !mobilePattern.MatchString(form.Mobile) {
		errs["mobile"] = "手机号必须是10位数字"
	}

	if form.Designation == "" && requireAll {
		errs["designation"] = "职位不能为空"
	}
	if form.Gender == "" && requireAll {
		errs["gender"] = "性别不能为空"
	}
	if len(form.Course) == 0 && requireAll {
		errs["course"] = "至少选择一门课程"
	}

	if form.ImagePath != "" {
		if msg := checkImage(form.ImagePath); msg != "" {
			errs["image"] = msg
		}
	}

	return errs
}

// checkImage 提交前的本地图片检查，与服务端的限制保持一致
func checkImage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedImageExts[ext] {
		return "只允许上传jpg或png图片"
	}

	info, err := os.Stat(path)
	if err != nil {
		return "无法读取图片文件"
	}
	if info.Size() > MaxImageSize {
		return "图片大小不能超过2MB"
	}

	return ""
}
