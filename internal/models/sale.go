package models

import (
	"time"

	"github.com/bhushanhacker007/solar-burji-app/internal/util"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a sale was settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// ParsePaymentMethod accepts only "cash" or "online".
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentOnline:
		return PaymentMethod(s), nil
	}
	return "", util.Invalidf("payment_method must be cash or online")
}

// Sale is one retail sales transaction.
// Amount is stored as decimal text so every driver keeps it exactly;
// rounding happens only when reporting.
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TxnDate       Date            `gorm:"type:date;index;not null" json:"txn_date"`
	Amount        decimal.Decimal `gorm:"type:varchar(40);not null" json:"amount"`
	PaymentMethod PaymentMethod   `gorm:"size:16;not null" json:"payment_method"`
	Note          *string         `gorm:"size:255" json:"note"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"-"`
}

func (Sale) TableName() string { return "sales" }

func (s *Sale) Validate() error {
	if s.TxnDate == "" {
		return util.Invalidf("txn_date, amount, payment_method required")
	}
	if _, err := ParsePaymentMethod(string(s.PaymentMethod)); err != nil {
		return err
	}
	if err := util.ValidateAmount("amount", s.Amount); err != nil {
		return err
	}
	if s.Note != nil {
		return util.ValidateText("note", *s.Note, 255)
	}
	return nil
}

// SalePatch carries only the fields a client sent; nil means "leave as is".
type SalePatch struct {
	Amount        *decimal.Decimal
	PaymentMethod *PaymentMethod
	Note          *string
}

func (p SalePatch) Validate() error {
	if p.Amount != nil {
		if err := util.ValidateAmount("amount", *p.Amount); err != nil {
			return err
		}
	}
	if p.PaymentMethod != nil {
		if _, err := ParsePaymentMethod(string(*p.PaymentMethod)); err != nil {
			return err
		}
	}
	if p.Note != nil {
		return util.ValidateText("note", *p.Note, 255)
	}
	return nil
}

func (p SalePatch) Changes() map[string]any {
	ch := map[string]any{}
	if p.Amount != nil {
		ch["amount"] = *p.Amount
	}
	if p.PaymentMethod != nil {
		ch["payment_method"] = *p.PaymentMethod
	}
	if p.Note != nil {
		ch["note"] = *p.Note
	}
	return ch
}
