package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bhushanhacker007/solar-burji-app/internal/middleware"
	"github.com/bhushanhacker007/solar-burji-app/internal/period"
	"github.com/bhushanhacker007/solar-burji-app/internal/report"
	"github.com/bhushanhacker007/solar-burji-app/internal/store"
	"github.com/bhushanhacker007/solar-burji-app/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Entity adapts one ledger's request fields to its store and report.
type Entity[T any] interface {
	// ParseCreate reads a create body; required-field checks happen here,
	// range/enum checks in the model's Validate.
	ParseCreate(p payload) (*T, error)
	// ParseUpdate reads the identity and the supplied fields from an update body.
	ParseUpdate(p payload) (key any, patch store.Patch, err error)
	// DeleteKey reads the identity from the query string.
	DeleteKey(c *gin.Context) (any, error)
	// Key is the identity of a stored record.
	Key(rec *T) any
	// Created is merged into the {"ok": true} create response.
	Created(rec *T) util.Response
	Table(rows []T) *report.Table
}

// LedgerHandler serves the whole method table for one ledger on a single path.
type LedgerHandler[T any] struct {
	Store  *store.Store[T]
	Entity Entity[T]
	Now    func() time.Time
	Log    *zap.Logger
}

func NewLedgerHandler[T any](s *store.Store[T], e Entity[T], now func() time.Time, log *zap.Logger) *LedgerHandler[T] {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LedgerHandler[T]{Store: s, Entity: e, Now: now, Log: log}
}

// Handle dispatches on the effective method and the ?action= parameter.
// POST ?action=update|delete exist for clients that cannot send PUT/DELETE.
func (h *LedgerHandler[T]) Handle(c *gin.Context) {
	method := effectiveMethod(c.Request)
	action := c.Query("action")

	switch {
	case method == http.MethodOptions:
		c.Status(http.StatusNoContent)
	case method == http.MethodPost && action == "update", method == http.MethodPut:
		h.update(c)
	case method == http.MethodPost && action == "delete", method == http.MethodDelete:
		h.delete(c)
	case method == http.MethodPost:
		h.create(c)
	case method == http.MethodGet:
		h.list(c)
	default:
		util.Error(c, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *LedgerHandler[T]) create(c *gin.Context) {
	rec, err := h.Entity.ParseCreate(readPayload(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Store.Create(c.Request.Context(), rec); err != nil {
		h.fail(c, err)
		return
	}
	// an upsert may have landed on an existing row; answer with what is stored
	if len(h.Store.Descriptor().UpsertColumns) > 0 {
		if rec, err = h.Store.Get(c.Request.Context(), h.Entity.Key(rec)); err != nil {
			h.fail(c, err)
			return
		}
	}
	util.OK(c, h.Entity.Created(rec))
}

func (h *LedgerHandler[T]) update(c *gin.Context) {
	key, patch, err := h.Entity.ParseUpdate(readPayload(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if _, err := h.Store.Update(c.Request.Context(), key, patch); err != nil {
		h.fail(c, err)
		return
	}
	util.OK(c, nil)
}

func (h *LedgerHandler[T]) delete(c *gin.Context) {
	key, err := h.Entity.DeleteKey(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if _, err := h.Store.Delete(c.Request.Context(), key); err != nil {
		h.fail(c, err)
		return
	}
	util.OK(c, nil)
}

func (h *LedgerHandler[T]) list(c *gin.Context) {
	rng, err := period.Resolve(period.Query{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Period:    c.Query("period"),
		Date:      c.Query("date"),
	}, h.Now())
	if err != nil {
		h.fail(c, err)
		return
	}

	rows, err := h.Store.ListByRange(c.Request.Context(), rng)
	if err != nil {
		h.fail(c, err)
		return
	}
	table := h.Entity.Table(rows)

	switch c.Query("format") {
	case "csv":
		var buf bytes.Buffer
		if err := report.WriteCSV(&buf, table); err != nil {
			h.fail(c, err)
			return
		}
		attach(c, table.Filename(rng, "csv"), "text/csv; charset=utf-8", buf.Bytes())
	case "xlsx":
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, table); err != nil {
			h.fail(c, err)
			return
		}
		attach(c, table.Filename(rng, "xlsx"), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		c.JSON(http.StatusOK, table.JSON(rng))
	}
}

// fail 把错误映射为状态码：输入错误 400，严格模式下不存在 404，其余 500 并附带驱动错误信息
func (h *LedgerHandler[T]) fail(c *gin.Context, err error) {
	if ve, ok := util.AsValidation(err); ok {
		util.Error(c, http.StatusBadRequest, ve.Msg)
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		util.Error(c, http.StatusNotFound, "Not found")
		return
	}

	_ = c.Error(err)
	h.Log.Error("storage failure",
		zap.String("ledger", h.Store.Descriptor().Name),
		zap.String("request_id", middleware.RequestID(c)),
		zap.Error(err),
	)
	util.ErrorDetail(c, http.StatusInternalServerError, "DB error", rootCause(err).Error())
}

func attach(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, contentType, body)
}

// effectiveMethod honours X-HTTP-Method-Override or ?_method= for the five known verbs.
// Only POST can be tunnelled; a GET always lists.
func effectiveMethod(r *http.Request) string {
	method := strings.ToUpper(r.Method)
	if method != http.MethodPost {
		return method
	}
	override := r.Header.Get(middleware.MethodOverrideHeader)
	if override == "" {
		override = r.URL.Query().Get("_method")
	}
	if override != "" {
		switch ov := strings.ToUpper(override); ov {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions:
			return ov
		}
	}
	return method
}

// rootCause strips our own wrapping so the driver message reaches the client.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
