package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moyu-x/desktop-automation/internal"
)

// ParseAmount 解析金额，允许前导 $ 和千分位逗号
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, &internal.ValidationError{Field: "Amount", Value: raw}
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &internal.ValidationError{Field: "Amount", Value: raw, Err: err}
	}
	return amount, nil
}

// ParseDate 解析 YYYY-MM-DD；空输入取 today 的日期
func ParseDate(s string, today time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		y, m, d := today.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	date, err := time.Parse(internal.DateLayout, s)
	if err != nil {
		return time.Time{}, &internal.ValidationError{Field: "Date", Value: s, Err: err}
	}
	return date, nil
}
