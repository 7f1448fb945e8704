package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bhushanhacker007/solar-burji-app/internal/models"
	"github.com/bhushanhacker007/solar-burji-app/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// payload is a JSON object body keyed by field name. A field that is absent or
// explicitly null counts as "not supplied".
type payload map[string]json.RawMessage

// readPayload 读取 JSON 请求体；不是对象或格式错误时按空对象处理
func readPayload(c *gin.Context) payload {
	p := payload{}
	if c.Request.Body == nil {
		return p
	}
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return p
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return payload{}
	}
	return p
}

func (p payload) raw(key string) (json.RawMessage, bool) {
	v, ok := p[key]
	if !ok || string(bytes.TrimSpace(v)) == "null" {
		return nil, false
	}
	return v, true
}

// text accepts a JSON string, or a number taken literally.
func (p payload) text(key string) (*string, error) {
	v, ok := p.raw(key)
	if !ok {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return &s, nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		s = n.String()
		return &s, nil
	}
	return nil, util.Invalidf("%s must be a string", key)
}

// amount accepts 12.5 or "12.5".
func (p payload) amount(key string) (*decimal.Decimal, error) {
	v, ok := p.raw(key)
	if !ok {
		return nil, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(v); err != nil {
		return nil, util.Invalidf("%s must be a number", key)
	}
	return &d, nil
}

func (p payload) date(key string) (*models.Date, error) {
	s, err := p.text(key)
	if err != nil || s == nil || *s == "" {
		return nil, err
	}
	d, err := models.ParseDate(*s)
	if err != nil {
		return nil, util.Invalidf("%s must be YYYY-MM-DD", key)
	}
	return &d, nil
}

// id returns 0 for anything that is not a positive integer.
func (p payload) id(key string) uint {
	v, ok := p.raw(key)
	if !ok {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return 0
	}
	return parseID(n.String())
}

// flag accepts true/false, 0/1 and "0"/"1".
func (p payload) flag(key string) (*bool, error) {
	v, ok := p.raw(key)
	if !ok {
		return nil, nil
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return &b, nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		switch n.String() {
		case "0":
			b = false
			return &b, nil
		case "1":
			b = true
			return &b, nil
		}
	}
	return nil, util.Invalidf("%s must be 0 or 1", key)
}

func parseID(s string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}
