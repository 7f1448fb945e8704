package models

import (
	"strings"
	"time"

	"github.com/bhushanhacker007/solar-burji-app/internal/util"

	"github.com/shopspring/decimal"
)

// Borrowing is one entry in the informal credit book.
// IsRepayment=false raises what the customer owes, true lowers it.
type Borrowing struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	TxnDate      Date            `gorm:"type:date;index;not null" json:"txn_date"`
	CustomerName string          `gorm:"size:128;not null" json:"customer_name"`
	Amount       decimal.Decimal `gorm:"type:varchar(40);not null" json:"amount"`
	IsRepayment  bool            `gorm:"not null;default:false" json:"is_repayment"`
	Note         *string         `gorm:"size:255" json:"note"`
	CreatedAt    time.Time       `json:"-"`
	UpdatedAt    time.Time       `json:"-"`
}

func (Borrowing) TableName() string { return "borrowings" }

func (b *Borrowing) Validate() error {
	if b.TxnDate == "" || strings.TrimSpace(b.CustomerName) == "" {
		return util.Invalidf("txn_date, customer_name, amount required")
	}
	if err := util.ValidateText("customer_name", b.CustomerName, 128); err != nil {
		return err
	}
	if err := util.ValidateAmount("amount", b.Amount); err != nil {
		return err
	}
	if b.Note != nil {
		return util.ValidateText("note", *b.Note, 255)
	}
	return nil
}

// BorrowingPatch is a partial update of a Borrowing.
type BorrowingPatch struct {
	CustomerName *string
	Amount       *decimal.Decimal
	IsRepayment  *bool
	Note         *string
}

func (p BorrowingPatch) Validate() error {
	if p.CustomerName != nil {
		if strings.TrimSpace(*p.CustomerName) == "" {
			return util.Invalidf("customer_name must not be empty")
		}
		if err := util.ValidateText("customer_name", *p.CustomerName, 128); err != nil {
			return err
		}
	}
	if p.Amount != nil {
		if err := util.ValidateAmount("amount", *p.Amount); err != nil {
			return err
		}
	}
	if p.Note != nil {
		return util.ValidateText("note", *p.Note, 255)
	}
	return nil
}

func (p BorrowingPatch) Changes() map[string]any {
	ch := map[string]any{}
	if p.CustomerName != nil {
		ch["customer_name"] = *p.CustomerName
	}
	if p.Amount != nil {
		ch["amount"] = *p.Amount
	}
	if p.IsRepayment != nil {
		ch["is_repayment"] = *p.IsRepayment
	}
	if p.Note != nil {
		ch["note"] = *p.Note
	}
	return ch
}
