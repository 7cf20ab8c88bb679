package util

import (
	"github.com/go-playground/validator/v10"
)

// ValidateSnowflake 验证字段是否为 Discord 雪花ID（纯数字字符串）
func ValidateSnowflake(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok || s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
