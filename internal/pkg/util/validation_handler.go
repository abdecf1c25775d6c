package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct 校验带 validate 标签的结构体，只返回第一个失败字段
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		first := vErrs[0]
		return fmt.Errorf("字段 [%s] 校验失败，规则 [%s]", first.Namespace(), first.Tag())
	}
	return err
}
