package util

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ValidationError 表示客户端输入错误（HTTP 400），不会触达存储层
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalidf 构造一个 ValidationError
func Invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AsValidation 判断 err 链中是否有 ValidationError
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// maxAmount 金额/电量上限，超过视为输入错误
var maxAmount = decimal.New(1, 10)

// MaxAmountPlaces 小数位上限；金额按原值以文本入库，10 位整数 + 18 位小数放得进 varchar(40)
const MaxAmountPlaces = 18

// ValidateAmount 验证金额或电量（不能为负，不能超过上限，小数位不能过多）
func ValidateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return Invalidf("%s must not be negative", field)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return Invalidf("%s too large", field)
	}
	if -amount.Exponent() > MaxAmountPlaces {
		return Invalidf("%s allows at most %d decimal places", field, MaxAmountPlaces)
	}
	return nil
}

// ValidateText 验证文本长度（按字符计）
func ValidateText(field, s string, max int) error {
	if utf8.RuneCountInString(s) > max {
		return Invalidf("%s too long, max %d characters", field, max)
	}
	return nil
}
