package handler

import (
	"github.com/bhushanhacker007/solar-burji-app/internal/models"
	"github.com/bhushanhacker007/solar-burji-app/internal/report"
	"github.com/bhushanhacker007/solar-burji-app/internal/store"
	"github.com/bhushanhacker007/solar-burji-app/internal/util"

	"github.com/gin-gonic/gin"
)

// SalesEntity 销售流水：txn_date, amount, payment_method(cash|online), note
type SalesEntity struct{}

func (SalesEntity) ParseCreate(p payload) (*models.Sale, error) {
	txnDate, err := p.date("txn_date")
	if err != nil {
		return nil, err
	}
	amount, err := p.amount("amount")
	if err != nil {
		return nil, err
	}
	method, err := p.text("payment_method")
	if err != nil {
		return nil, err
	}
	note, err := p.text("note")
	if err != nil {
		return nil, err
	}
	if txnDate == nil || amount == nil || method == nil || *method == "" {
		return nil, util.Invalidf("txn_date, amount, payment_method required")
	}
	return &models.Sale{
		TxnDate:       *txnDate,
		Amount:        *amount,
		PaymentMethod: models.PaymentMethod(*method),
		Note:          note,
	}, nil
}

func (SalesEntity) ParseUpdate(p payload) (any, store.Patch, error) {
	id := p.id("id")
	if id == 0 {
		return nil, nil, util.Invalidf("id required")
	}
	var patch models.SalePatch
	var err error
	if patch.Amount, err = p.amount("amount"); err != nil {
		return nil, nil, err
	}
	method, err := p.text("payment_method")
	if err != nil {
		return nil, nil, err
	}
	if method != nil {
		pm := models.PaymentMethod(*method)
		patch.PaymentMethod = &pm
	}
	if patch.Note, err = p.text("note"); err != nil {
		return nil, nil, err
	}
	return id, patch, nil
}

func (SalesEntity) DeleteKey(c *gin.Context) (any, error) {
	id := parseID(c.Query("id"))
	if id == 0 {
		return nil, util.Invalidf("id required")
	}
	return id, nil
}

func (SalesEntity) Key(rec *models.Sale) any { return rec.ID }

func (SalesEntity) Created(rec *models.Sale) util.Response {
	return util.Response{"id": rec.ID}
}

func (SalesEntity) Table(rows []models.Sale) *report.Table {
	return report.Sales(rows)
}
