// Package validation 封裝 go-playground/validator 作為 Echo 的 Validator，
// 並把欄位錯誤轉為使用者可讀的訊息。
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern matches local@domain with a 2–3 letter final label.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// messages maps "<field>.<tag>" to the message returned to clients.
var messages = map[string]string{
	"name.required":   "Name is required",
	"name.min":        "Name is required",
	"name.max":        "Name cannot exceed 50 characters",
	"email.required":  "Email is required",
	"email.useremail": "Please enter a valid email",
	"age.min":         "Age cannot be negative",
	"age.max":         "Age cannot exceed 120",
}

// Errors 以欄位名稱（JSON）對應錯誤訊息
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return strings.Join(parts, ", ")
}

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// New 建立已註冊自訂規則的 Validator
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// RegisterValidation only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("useremail", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate calls the underlying validator and converts field failures to Errors.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := Errors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = Message(fe.Field(), fe.Tag())
	}
	return out
}

// Message 回傳欄位與規則對應的錯誤訊息
func Message(field, tag string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	return fmt.Sprintf("%s is invalid", field)
}

// IsEmail reports whether s is an acceptable user email.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}
