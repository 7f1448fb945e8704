package handler

import (
	"github.com/bhushanhacker007/solar-burji-app/internal/models"
	"github.com/bhushanhacker007/solar-burji-app/internal/report"
	"github.com/bhushanhacker007/solar-burji-app/internal/store"
	"github.com/bhushanhacker007/solar-burji-app/internal/util"

	"github.com/gin-gonic/gin"
)

// BorrowingsEntity 赊账/还款记录：is_repayment 为 0 表示赊账，1 表示还款
type BorrowingsEntity struct{}

func (BorrowingsEntity) ParseCreate(p payload) (*models.Borrowing, error) {
	txnDate, err := p.date("txn_date")
	if err != nil {
		return nil, err
	}
	customer, err := p.text("customer_name")
	if err != nil {
		return nil, err
	}
	amount, err := p.amount("amount")
	if err != nil {
		return nil, err
	}
	repayment, err := p.flag("is_repayment")
	if err != nil {
		return nil, err
	}
	note, err := p.text("note")
	if err != nil {
		return nil, err
	}
	if txnDate == nil || customer == nil || *customer == "" || amount == nil {
		return nil, util.Invalidf("txn_date, customer_name, amount required")
	}

	b := &models.Borrowing{
		TxnDate:      *txnDate,
		CustomerName: *customer,
		Amount:       *amount,
		Note:         note,
	}
	if repayment != nil {
		b.IsRepayment = *repayment
	}
	return b, nil
}

func (BorrowingsEntity) ParseUpdate(p payload) (any, store.Patch, error) {
	id := p.id("id")
	if id == 0 {
		return nil, nil, util.Invalidf("id required")
	}
	var patch models.BorrowingPatch
	var err error
	if patch.CustomerName, err = p.text("customer_name"); err != nil {
		return nil, nil, err
	}
	if patch.Amount, err = p.amount("amount"); err != nil {
		return nil, nil, err
	}
	if patch.IsRepayment, err = p.flag("is_repayment"); err != nil {
		return nil, nil, err
	}
	if patch.Note, err = p.text("note"); err != nil {
		return nil, nil, err
	}
	return id, patch, nil
}

func (BorrowingsEntity) DeleteKey(c *gin.Context) (any, error) {
	id := parseID(c.Query("id"))
	if id == 0 {
		return nil, util.Invalidf("id required")
	}
	return id, nil
}

func (BorrowingsEntity) Key(rec *models.Borrowing) any { return rec.ID }

func (BorrowingsEntity) Created(rec *models.Borrowing) util.Response {
	return util.Response{"id": rec.ID}
}

func (BorrowingsEntity) Table(rows []models.Borrowing) *report.Table {
	return report.Borrowings(rows)
}
