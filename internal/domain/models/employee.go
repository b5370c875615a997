package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// 员工职位和性别的可选值
const (
	DesignationDeveloper = "Developer"
	DesignationManager   = "Manager"
	DesignationDesigner  = "Designer"

	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// StringList 以JSON形式存储的字符串列表，用于课程多选字段
type StringList []string

// Value 实现 driver.Valuer 接口
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner 接口
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// Employee 表示员工记录
type Employee struct {
	BaseModel
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Email       string     `gorm:"type:varchar(100);not null" json:"email"`
	Mobile      string     `gorm:"type:varchar(20);not null" json:"mobile"`
	Designation string     `gorm:"type:varchar(50);not null" json:"designation"` // 可选值: Developer, Manager, Designer
	Gender      string     `gorm:"type:varchar(20);not null" json:"gender"`      // 可选值: Male, Female, Other
	Course      StringList `gorm:"type:text" json:"course"`
	Image       string     `gorm:"type:varchar(255)" json:"image"` // 上传图片的文件名，可为空
}
